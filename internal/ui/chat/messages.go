// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Rooms: room list fetches, creation, deletion
//   - Thread: message fetches for the active room
//   - Send/Edit: send completion and edit saves
//   - Attachments: staging results
//   - UI State: transient status expiry, config reload
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"github.com/mandyy1223/chatbot-tui/internal/config"
	"github.com/mandyy1223/chatbot-tui/internal/model"
	"github.com/mandyy1223/chatbot-tui/internal/storage"
)

// =============================================================================
// ROOM MESSAGES
// =============================================================================

// RoomsLoadedMsg delivers a room list fetch result.
type RoomsLoadedMsg struct {
	Rooms []model.ChatRoom
	Err   error
}

// RoomCreatedMsg delivers a room creation result. Name is the requested
// name, echoed back so the new room can be activated once the list refetch
// lands.
type RoomCreatedMsg struct {
	Room *model.ChatRoom
	Name string
	Err  error
}

// RoomDeletedMsg delivers a room deletion result.
type RoomDeletedMsg struct {
	ID   string
	Name string
	Err  error
}

// =============================================================================
// THREAD MESSAGES
// =============================================================================

// ThreadLoadedMsg delivers a message fetch for one room. RoomID identifies
// which fetch this answers; results for a room that is no longer active are
// dropped.
type ThreadLoadedMsg struct {
	RoomID   string
	Messages []model.Message
	Err      error
}

// =============================================================================
// SEND AND EDIT MESSAGES
// =============================================================================

// SendCompleteMsg delivers a send result. The backend answers with the AI
// reply once it has stored both messages.
type SendCompleteMsg struct {
	RoomID string
	Reply  *model.Message
	Err    error
}

// EditSavedMsg delivers an edit save result.
type EditSavedMsg struct {
	MessageID string
	Err       error
}

// =============================================================================
// ATTACHMENT MESSAGES
// =============================================================================

// AttachmentStagedMsg delivers an attachment staging result.
type AttachmentStagedMsg struct {
	Staged *storage.Staged
	Err    error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// StatusExpiredMsg clears a transient status line. Seq guards against an
// older expiry wiping a newer message.
type StatusExpiredMsg struct {
	Seq int
}

// ConfigReloadedMsg carries a live-reloaded configuration from the file
// watcher into the update loop.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}
