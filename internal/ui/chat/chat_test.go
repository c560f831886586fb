// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mandyy1223/chatbot-tui/internal/api"
	"github.com/mandyy1223/chatbot-tui/internal/config"
	"github.com/mandyy1223/chatbot-tui/internal/model"
	"github.com/mandyy1223/chatbot-tui/internal/storage"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	return New(Options{
		Client:      api.NewClient(),
		Attachments: &storage.AttachmentStore{BaseDir: filepath.Join(t.TempDir(), "attachments")},
		History:     nil,
		Config:      config.Default(),
	})
}

func loadRooms(m *Model, roomList ...model.ChatRoom) {
	m.Update(RoomsLoadedMsg{Rooms: roomList})
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// =============================================================================
// ROOM LIST HANDLING
// =============================================================================

func TestRoomsLoaded_AutoSelectsFirstRoomAndFetchesThread(t *testing.T) {
	m := testModel(t)

	loadRooms(m,
		model.ChatRoom{ID: "1", Name: "Default Chatroom", MessageCount: 3},
		model.ChatRoom{ID: "2", Name: "Work", MessageCount: 7},
	)

	id, ok := m.rooms.ActiveID()
	if !ok || id != "1" {
		t.Fatalf("active room = %q (%v), want first room auto-selected", id, ok)
	}
	if m.thread.RoomID() != "1" || !m.thread.IsLoading() {
		t.Error("a thread fetch for the selected room should have begun")
	}
}

func TestRoomsLoaded_SyncsOptimisticCounts(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.rooms.IncrementLocalCount("1", 2)
	if got := m.rooms.DisplayCount("1"); got != 5 {
		t.Fatalf("count = %d, want 5 before refetch", got)
	}

	// Refetch with the handler syncs back to server truth.
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})
	if got := m.rooms.DisplayCount("1"); got != 3 {
		t.Errorf("count = %d, want server count 3 after sync", got)
	}
}

func TestRoomsLoaded_ErrorLeavesStateAlone(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.Update(RoomsLoadedMsg{Err: errors.New("boom")})

	if id, _ := m.rooms.ActiveID(); id != "1" {
		t.Error("a failed refetch should not clear the room list")
	}
	if m.statusMsg == "" {
		t.Error("a failed refetch should surface a status message")
	}
}

// =============================================================================
// SENDING
// =============================================================================

func TestSend_IncrementsCountBeforeDispatch(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.compose.SetValue("hello")
	_, cmd := m.Update(keyMsg(tea.KeyEnter))

	if got := m.rooms.DisplayCount("1"); got != 5 {
		t.Errorf("count = %d, want 3+2=5 immediately on send", got)
	}
	if !m.thread.IsSending() {
		t.Error("sending flag should be set")
	}
	if cmd == nil {
		t.Error("a send command should be dispatched")
	}
}

func TestSend_BlankComposeIsNoOp(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.compose.SetValue("   ")
	_, cmd := m.Update(keyMsg(tea.KeyEnter))

	if m.thread.IsSending() {
		t.Error("sending flag must never transition for a blank send")
	}
	if got := m.rooms.DisplayCount("1"); got != 3 {
		t.Errorf("count = %d, blank send must not bump it", got)
	}
	if cmd != nil {
		t.Error("nothing should be dispatched")
	}
}

func TestSend_RefusedWhileInFlight(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.compose.SetValue("first")
	m.Update(keyMsg(tea.KeyEnter))
	m.compose.SetValue("second")
	_, cmd := m.Update(keyMsg(tea.KeyEnter))

	if cmd != nil {
		t.Error("a second send while one is outstanding should be refused")
	}
	if got := m.rooms.DisplayCount("1"); got != 5 {
		t.Errorf("count = %d, the refused send must not bump again", got)
	}
}

func TestSendComplete_DiscardsComposeEvenOnError(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.compose.SetValue("doomed")
	m.Update(keyMsg(tea.KeyEnter))
	m.Update(SendCompleteMsg{RoomID: "1", Err: errors.New("network down")})

	if m.thread.IsSending() {
		t.Error("sending flag should clear")
	}
	if m.compose.Value() != "" {
		t.Error("compose text is spent on completion, success or not")
	}
	if m.thread.Attachment() != nil {
		t.Error("attachment is spent on completion")
	}
}

// =============================================================================
// EDITING
// =============================================================================

func editableThread(m *Model) {
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 2})
	m.Update(ThreadLoadedMsg{RoomID: "1", Messages: []model.Message{
		{ID: "m1", Text: "hi", Sender: model.SenderUser},
		{ID: "m2", Text: "hello!", Sender: model.SenderAI},
	}})
}

func TestEdit_TargetsLastUserMessage(t *testing.T) {
	m := testModel(t)
	editableThread(m)

	m.Update(keyMsg(tea.KeyCtrlE))

	if m.mode != ModeEdit {
		t.Fatal("ctrl+e should enter edit mode")
	}
	id, _ := m.thread.Edit().MessageID()
	if id != "m1" {
		t.Errorf("edit target = %q, want the last user message m1", id)
	}
	if m.editInput.Value() != "hi" {
		t.Errorf("edit input = %q, want seeded with current text", m.editInput.Value())
	}
}

func TestEdit_NoUserMessageShowsStatus(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 0})
	m.Update(ThreadLoadedMsg{RoomID: "1", Messages: nil})

	m.Update(keyMsg(tea.KeyCtrlE))

	if m.mode == ModeEdit {
		t.Error("edit should not open with no user message")
	}
	if m.statusMsg == "" {
		t.Error("a status message should explain why")
	}
}

func TestEdit_EscapeDiscardsDraft(t *testing.T) {
	m := testModel(t)
	editableThread(m)
	m.Update(keyMsg(tea.KeyCtrlE))

	m.Update(keyMsg(tea.KeyEscape))

	if m.mode != ModeChat {
		t.Error("escape should return to chat mode")
	}
	if m.thread.Edit().IsOpen() {
		t.Error("escape should discard the edit session")
	}
}

func TestEdit_FailedSaveKeepsSessionOpen(t *testing.T) {
	m := testModel(t)
	editableThread(m)
	m.Update(keyMsg(tea.KeyCtrlE))

	m.Update(EditSavedMsg{MessageID: "m1", Err: errors.New("boom")})

	if m.mode != ModeEdit {
		t.Error("failed save should stay in edit mode")
	}
	if !m.thread.Edit().IsOpen() {
		t.Error("failed save should keep the session open")
	}
}

func TestEdit_SuccessfulSaveClosesAndRefetches(t *testing.T) {
	m := testModel(t)
	editableThread(m)
	m.Update(keyMsg(tea.KeyCtrlE))

	_, cmd := m.Update(EditSavedMsg{MessageID: "m1"})

	if m.mode != ModeChat {
		t.Error("successful save should return to chat mode")
	}
	if m.thread.Edit().IsOpen() {
		t.Error("session should close")
	}
	if cmd == nil {
		t.Error("a thread refetch should be dispatched")
	}
}

// =============================================================================
// ROOM DELETE FLOW
// =============================================================================

func TestDelete_IntentThenCancel(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.Update(keyMsg(tea.KeyCtrlD))
	if m.mode != ModeConfirmDelete {
		t.Fatal("ctrl+d should open the confirmation")
	}
	if _, ok := m.rooms.PendingDelete(); !ok {
		t.Fatal("an intent should be pending")
	}

	m.Update(keyMsg(tea.KeyEscape))
	if m.mode != ModeChat {
		t.Fatal("escape should close the dialog")
	}
	if _, ok := m.rooms.PendingDelete(); ok {
		t.Error("escape should clear the intent with no side effect")
	}
}

func TestDelete_ConfirmDispatchesDelete(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.Update(keyMsg(tea.KeyCtrlD))
	m.Update(keyMsg(tea.KeyTab)) // move focus to Delete
	_, cmd := m.Update(keyMsg(tea.KeyEnter))

	if cmd == nil {
		t.Error("confirming should dispatch the delete")
	}
	if _, ok := m.rooms.PendingDelete(); ok {
		t.Error("the intent slot should be consumed")
	}
}

func TestDelete_DefaultButtonIsCancel(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 3})

	m.Update(keyMsg(tea.KeyCtrlD))
	_, cmd := m.Update(keyMsg(tea.KeyEnter))

	if cmd != nil {
		t.Error("enter on the default (Cancel) button must not delete")
	}
}

// =============================================================================
// THREAD FETCHES
// =============================================================================

func TestThreadLoaded_StaleRoomIgnored(t *testing.T) {
	m := testModel(t)
	loadRooms(m,
		model.ChatRoom{ID: "1", Name: "Default", MessageCount: 1},
		model.ChatRoom{ID: "2", Name: "Work", MessageCount: 1},
	)

	// Switch to room 2 before room 1's fetch answers.
	m.Update(keyMsg(tea.KeyTab))
	m.Update(ThreadLoadedMsg{RoomID: "1", Messages: []model.Message{{ID: "stale"}}})

	if len(m.thread.Messages()) != 0 {
		t.Error("a stale thread result should be discarded")
	}
	if m.thread.RoomID() != "2" {
		t.Errorf("thread room = %q, want 2", m.thread.RoomID())
	}
}

func TestTabCyclesRooms(t *testing.T) {
	m := testModel(t)
	loadRooms(m,
		model.ChatRoom{ID: "1", Name: "Default", MessageCount: 0},
		model.ChatRoom{ID: "2", Name: "Work", MessageCount: 0},
	)

	m.Update(keyMsg(tea.KeyTab))
	if id, _ := m.rooms.ActiveID(); id != "2" {
		t.Errorf("active = %q, want 2 after tab", id)
	}
	m.Update(keyMsg(tea.KeyTab))
	if id, _ := m.rooms.ActiveID(); id != "1" {
		t.Errorf("active = %q, want wrap back to 1", id)
	}
}

// =============================================================================
// NEW ROOM FLOW
// =============================================================================

func TestNewRoom_EmptyNameRefused(t *testing.T) {
	m := testModel(t)
	m.Update(keyMsg(tea.KeyCtrlN))
	if m.mode != ModeNewRoom {
		t.Fatal("ctrl+n should open the naming dialog")
	}

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	// The status expiry tick is dispatched, but no create: state check below.
	_ = cmd
	if m.statusMsg == "" {
		t.Error("an empty name should surface a status message")
	}
}

func TestRoomCreated_ActivatesByName(t *testing.T) {
	m := testModel(t)
	loadRooms(m, model.ChatRoom{ID: "1", Name: "Default", MessageCount: 0})

	m.Update(RoomCreatedMsg{Name: "Fresh", Room: &model.ChatRoom{ID: "9", Name: "Fresh"}})

	// Activation is by name; the id resolves on the refetch.
	if m.rooms.ActiveName() != "Fresh" {
		t.Errorf("active name = %q, want Fresh", m.rooms.ActiveName())
	}

	loadRooms(m,
		model.ChatRoom{ID: "1", Name: "Default", MessageCount: 0},
		model.ChatRoom{ID: "9", Name: "Fresh", MessageCount: 0},
	)
	if id, _ := m.rooms.ActiveID(); id != "9" {
		t.Errorf("active id = %q, want 9 once the refetch lands", id)
	}
}
