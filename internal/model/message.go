// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat rooms and messages.
package model

import (
	"strings"

	"github.com/mandyy1223/chatbot-tui/internal/util"
)

// =============================================================================
// SENDER
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single chat message within a room.
//
// A message is immutable once created except for Text, which may be replaced
// by an edit. Room membership is implicit: messages are fetched per room and
// never carry their room id.
type Message struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
	// Image is a server-side path or URL to an attached image, if any.
	Image string `json:"image,omitempty"`
}

// IsUser reports whether the message was sent by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// HasText reports whether the message carries any non-blank text.
func (m Message) HasText() bool {
	return strings.TrimSpace(m.Text) != ""
}

// HasImage reports whether the message carries an image attachment.
func (m Message) HasImage() bool {
	return m.Image != ""
}

// Preview returns the first line of the message text, truncated to maxRunes.
func (m Message) Preview(maxRunes int) string {
	return util.TruncateRunes(util.FirstLine(m.Text), maxRunes)
}

// LastUserMessage returns the most recent user message in a thread, or false
// when there is none. Used to pick the edit target.
func LastUserMessage(messages []Message) (Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsUser() {
			return messages[i], true
		}
	}
	return Message{}, false
}
