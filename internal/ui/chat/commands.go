// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the tea.Cmd constructors that call the backend API and
// local stores off the update loop. Each command owns its context and
// timeout and reports back with exactly one message.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mandyy1223/chatbot-tui/internal/api"
	"github.com/mandyy1223/chatbot-tui/internal/history"
	"github.com/mandyy1223/chatbot-tui/internal/storage"
)

// =============================================================================
// ROOM COMMANDS
// =============================================================================

// FetchRoomsCmd fetches the room list.
func FetchRoomsCmd(client *api.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rooms, err := client.ListChatrooms(ctx)
		return RoomsLoadedMsg{Rooms: rooms, Err: err}
	}
}

// CreateRoomCmd creates a room with the given name.
func CreateRoomCmd(client *api.Client, name string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		room, err := client.CreateChatroom(ctx, name)
		return RoomCreatedMsg{Room: room, Name: name, Err: err}
	}
}

// DeleteRoomCmd deletes a room by id.
func DeleteRoomCmd(client *api.Client, id, name string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := client.DeleteChatroom(ctx, id)
		return RoomDeletedMsg{ID: id, Name: name, Err: err}
	}
}

// =============================================================================
// THREAD COMMANDS
// =============================================================================

// FetchThreadCmd fetches the messages of one room. The room id rides along
// in the result so stale answers can be discarded.
func FetchThreadCmd(client *api.Client, roomID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		messages, err := client.ListMessages(ctx, roomID)
		return ThreadLoadedMsg{RoomID: roomID, Messages: messages, Err: err}
	}
}

// SendMessageCmd sends text and/or an image to a room. The backend blocks
// until the AI reply is stored, so this uses the long send timeout.
func SendMessageCmd(client *api.Client, roomID, text, filePath string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := client.SendMessage(ctx, roomID, text, filePath)
		return SendCompleteMsg{RoomID: roomID, Reply: reply, Err: err}
	}
}

// SaveEditCmd saves new text for a message.
func SaveEditCmd(client *api.Client, messageID, text string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err := client.EditMessage(ctx, messageID, text)
		return EditSavedMsg{MessageID: messageID, Err: err}
	}
}

// =============================================================================
// ATTACHMENT COMMANDS
// =============================================================================

// StageAttachmentCmd copies a picked file into the staging area. The
// MinPrepareDelay floor keeps the preparing state visible even for tiny
// files, so the UI never flashes.
func StageAttachmentCmd(store *storage.AttachmentStore, path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		staged, err := store.Stage(path)
		if remaining := storage.MinPrepareDelay - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
		return AttachmentStagedMsg{Staged: staged, Err: err}
	}
}

// =============================================================================
// UI COMMANDS
// =============================================================================

// statusTTL is how long a transient status message stays visible.
const statusTTL = 5 * time.Second

// ExpireStatusCmd schedules the removal of a transient status message.
func ExpireStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}

// RecordHistoryCmd appends an event to the local activity log. Best-effort:
// a nil store or a write failure is silent.
func RecordHistoryCmd(store *history.Store, event history.Event) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Record(ctx, event)
		return nil
	}
}
