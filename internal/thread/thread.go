// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package thread holds the message thread state for the active chat room.
package thread

import (
	"strings"

	"github.com/mandyy1223/chatbot-tui/internal/model"
)

// =============================================================================
// ATTACHMENT
// =============================================================================

// Attachment is a staged image waiting to be sent with the next message.
type Attachment struct {
	// Path is the staged copy on disk, fed to the multipart send.
	Path string
	// Name is the original file name, shown in the preview.
	Name string
	// Size of the staged file in bytes.
	Size int64
}

// =============================================================================
// THREAD
// =============================================================================

// Thread holds the fetched messages for one chat room plus the pending
// send/upload flags, the staged attachment, and the inline edit session.
//
// Mutated only from the update loop; no locking.
type Thread struct {
	roomID   string
	messages []model.Message

	// loading is true exactly while a fetch for roomID is outstanding.
	loading bool

	sending   bool
	uploading bool

	attachment *Attachment

	edit EditSession
}

// New creates an empty thread with no room selected.
func New() *Thread {
	return &Thread{}
}

// =============================================================================
// FETCHING
// =============================================================================

// RoomID returns the room this thread is scoped to. Empty when no room is
// selected.
func (t *Thread) RoomID() string {
	return t.roomID
}

// Messages returns the fetched messages in server order.
func (t *Thread) Messages() []model.Message {
	return t.messages
}

// IsLoading reports whether a fetch for the current room is outstanding.
func (t *Thread) IsLoading() bool {
	return t.loading
}

// BeginFetch starts a fetch for the given room. Switching rooms drops the
// previous room's messages immediately so stale content never renders.
// Returns false (and changes nothing) when roomID is empty: fetching is
// meaningless with no room selected.
func (t *Thread) BeginFetch(roomID string) bool {
	if roomID == "" {
		return false
	}
	if roomID != t.roomID {
		t.roomID = roomID
		t.messages = nil
		// An edit targets a message of the previous room; drop it.
		t.edit.Cancel()
	}
	t.loading = true
	return true
}

// CompleteFetch applies a fetch result. Results for a room that is no longer
// current are discarded, so the loading flag tracks only the active room's
// fetch.
func (t *Thread) CompleteFetch(roomID string, messages []model.Message, err error) {
	if roomID != t.roomID {
		return
	}
	t.loading = false
	if err != nil {
		return
	}
	t.messages = messages
}

// Clear resets the thread to the no-room-selected state.
func (t *Thread) Clear() {
	t.roomID = ""
	t.messages = nil
	t.loading = false
	t.edit.Cancel()
}

// =============================================================================
// SENDING
// =============================================================================

// CanSend reports whether a send would do anything: either non-blank text or
// a staged attachment must be present.
func (t *Thread) CanSend(text string) bool {
	return strings.TrimSpace(text) != "" || t.attachment != nil
}

// IsSending reports whether a send is outstanding.
func (t *Thread) IsSending() bool {
	return t.sending
}

// BeginSend marks a send as outstanding. Returns false without touching any
// state when the payload is empty or a send is already in flight, so the
// sending flag never transitions for a no-op.
func (t *Thread) BeginSend(text string) bool {
	if t.sending || !t.CanSend(text) {
		return false
	}
	t.sending = true
	return true
}

// CompleteSend finishes a send, success or failure alike: the flag resets
// and the staged attachment is discarded. At-most-once semantics; a failed
// send is not retried and its payload is not restored.
func (t *Thread) CompleteSend() {
	t.sending = false
	t.attachment = nil
}

// InputLocked reports whether compose input should be gated: true while a
// send or an attachment preparation is outstanding.
func (t *Thread) InputLocked() bool {
	return t.sending || t.uploading
}

// =============================================================================
// ATTACHMENTS
// =============================================================================

// IsUploading reports whether an attachment preparation is outstanding.
func (t *Thread) IsUploading() bool {
	return t.uploading
}

// Attachment returns the staged attachment, or nil.
func (t *Thread) Attachment() *Attachment {
	return t.attachment
}

// BeginUpload marks an attachment preparation as outstanding. Returns false
// when one is already running.
func (t *Thread) BeginUpload() bool {
	if t.uploading {
		return false
	}
	t.uploading = true
	return true
}

// CompleteUpload stores the prepared attachment and clears the flag. A new
// attachment replaces any previous one. A nil attachment (preparation
// failure) clears the flag and leaves the prior attachment in place.
func (t *Thread) CompleteUpload(a *Attachment) {
	t.uploading = false
	if a != nil {
		t.attachment = a
	}
}

// RemoveAttachment clears the staged attachment unconditionally.
func (t *Thread) RemoveAttachment() {
	t.attachment = nil
}

// =============================================================================
// EDITING
// =============================================================================

// Edit exposes the inline edit session.
func (t *Thread) Edit() *EditSession {
	return &t.edit
}

// StartEdit opens an edit session for a message (last-start-wins).
func (t *Thread) StartEdit(messageID, currentText string) {
	t.edit.Start(messageID, currentText)
}

// CancelEdit closes the edit session, discarding the draft.
func (t *Thread) CancelEdit() {
	t.edit.Cancel()
}

// CompleteEdit applies a save result: success closes the session, failure
// keeps it open with the draft intact so the user can retry.
func (t *Thread) CompleteEdit(err error) {
	if err != nil {
		return
	}
	t.edit.Close()
}
