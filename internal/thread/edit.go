// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package thread holds the message thread state for the active chat room.
package thread

import "strings"

// EditSession is the single-slot inline edit state machine:
//
//	Closed --Start--> Open(id, draft)
//	Open --Cancel--> Closed (draft discarded)
//	Open --save success--> Closed
//	Open --save failure--> Open (draft unchanged, user can retry)
//	Open --Start(id2)--> Open(id2, draft2) (previous draft discarded)
//
// The zero value is Closed. Fields are unexported so the machine can only be
// driven through its methods; there is no way to observe a draft for a
// session that is not open.
type EditSession struct {
	open      bool
	messageID string
	draft     string
}

// Start opens an edit for the given message, seeding the draft with the
// message's current text. Starting while another edit is open silently
// discards the prior draft (last-start-wins).
func (e *EditSession) Start(messageID, currentText string) {
	e.open = true
	e.messageID = messageID
	e.draft = currentText
}

// Cancel closes the session and discards the draft, saved or not.
func (e *EditSession) Cancel() {
	*e = EditSession{}
}

// Close closes the session after a successful save.
func (e *EditSession) Close() {
	*e = EditSession{}
}

// IsOpen reports whether an edit is in flight.
func (e *EditSession) IsOpen() bool {
	return e.open
}

// MessageID returns the target message id, or false when closed.
func (e *EditSession) MessageID() (string, bool) {
	return e.messageID, e.open
}

// Draft returns the current draft text. Empty when closed.
func (e *EditSession) Draft() string {
	return e.draft
}

// SetDraft replaces the draft text. No-op when closed.
func (e *EditSession) SetDraft(text string) {
	if e.open {
		e.draft = text
	}
}

// CanSave reports whether a save would do anything: the session must be open
// and the draft must not be empty or whitespace-only.
func (e *EditSession) CanSave() bool {
	return e.open && strings.TrimSpace(e.draft) != ""
}
