// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat rooms and messages.
package model

import (
	"errors"
	"strings"
)

// ErrEmptyRoomName is returned when a room name is empty or whitespace-only.
// Checked client-side, before any network call is made.
var ErrEmptyRoomName = errors.New("chat room name must not be empty")

// ChatRoom is a named container of messages.
//
// The id and message_count are owned by the server. The count shown to the
// user may differ from MessageCount when an optimistic local overlay is in
// effect (see the rooms package).
type ChatRoom struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MessageCount int    `json:"message_count"`
}

// ValidateRoomName rejects empty and whitespace-only room names.
func ValidateRoomName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyRoomName
	}
	return nil
}
