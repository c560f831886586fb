// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/mandyy1223/chatbot-tui/internal/history"
	"github.com/mandyy1223/chatbot-tui/internal/model"
	"github.com/mandyy1223/chatbot-tui/internal/rooms"
	"github.com/mandyy1223/chatbot-tui/internal/storage"
	"github.com/mandyy1223/chatbot-tui/internal/thread"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update is the single entry point for all messages. All state mutation
// happens here, one message at a time.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case RoomsLoadedMsg:
		return m, m.handleRoomsLoaded(msg)

	case RoomCreatedMsg:
		return m, m.handleRoomCreated(msg)

	case RoomDeletedMsg:
		return m, m.handleRoomDeleted(msg)

	case ThreadLoadedMsg:
		return m, m.handleThreadLoaded(msg)

	case SendCompleteMsg:
		return m, m.handleSendComplete(msg)

	case EditSavedMsg:
		return m, m.handleEditSaved(msg)

	case AttachmentStagedMsg:
		return m, m.handleAttachmentStaged(msg)

	case StatusExpiredMsg:
		if msg.Seq == m.statusSeq {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case ConfigReloadedMsg:
		return m, m.handleConfigReloaded(msg)
	}

	// The file picker listens for its own internal messages.
	if m.mode == ModeAttach {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// LAYOUT
// =============================================================================

// chromeHeight is the vertical space used around the viewport: header, tab
// row with its border, input row with its border, status bar.
const chromeHeight = 7

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	vpHeight := msg.Height - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}

	m.compose.Width = msg.Width - 6
	m.editInput.Width = msg.Width - 6
	m.nameInput.Width = 40
	m.picker.Height = vpHeight

	// Markdown wraps to the bubble width, not the full terminal.
	m.renderer = nil
	if m.markdown {
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(bubbleWidth(msg.Width)),
		); err == nil {
			m.renderer = r
		}
	}

	m.refreshViewport()
	return nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeNewRoom:
		return m, m.handleKeyNewRoom(msg)
	case ModeConfirmDelete:
		return m, m.handleKeyConfirmDelete(msg)
	case ModeAttach:
		return m, m.handleKeyAttach(msg)
	case ModeEdit:
		return m, m.handleKeyEdit(msg)
	default:
		return m, m.handleKeyChat(msg)
	}
}

func (m *Model) handleKeyChat(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextRoom):
		m.rooms.CycleActive(1)
		return m.fetchActiveThread()

	case key.Matches(msg, m.keys.PrevRoom):
		m.rooms.CycleActive(-1)
		return m.fetchActiveThread()

	case key.Matches(msg, m.keys.NewRoom):
		m.nameInput.Reset()
		m.nameInput.Focus()
		m.compose.Blur()
		m.mode = ModeNewRoom
		return nil

	case key.Matches(msg, m.keys.DeleteRoom):
		id, ok := m.rooms.ActiveID()
		if !ok {
			return m.setStatus("no room selected", true)
		}
		m.rooms.RequestDelete(id, m.rooms.ActiveName())
		m.confirmSelected = false
		m.mode = ModeConfirmDelete
		return nil

	case key.Matches(msg, m.keys.Attach):
		if m.thread.InputLocked() {
			return nil
		}
		m.mode = ModeAttach
		return m.picker.Init()

	case key.Matches(msg, m.keys.Detach):
		if a := m.thread.Attachment(); a != nil {
			_ = m.store.Discard(&storage.Staged{Path: a.Path, Name: a.Name, Size: a.Size})
			m.thread.RemoveAttachment()
		}
		return nil

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Send):
		return m.startSend()

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	if m.thread.InputLocked() {
		return nil
	}
	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return cmd
}

func (m *Model) handleKeyNewRoom(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeDialogs()
		return nil

	case key.Matches(msg, m.keys.Send):
		name := m.nameInput.Value()
		if err := model.ValidateRoomName(name); err != nil {
			return m.setStatus("room name cannot be empty", true)
		}
		m.closeDialogs()
		return CreateRoomCmd(m.client, name, m.fetchTimeout)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

func (m *Model) handleKeyConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.rooms.CancelDelete()
		m.closeDialogs()
		return nil

	case key.Matches(msg, m.keys.NextRoom), key.Matches(msg, m.keys.PrevRoom):
		m.confirmSelected = !m.confirmSelected
		return nil

	case key.Matches(msg, m.keys.Send):
		confirmed := m.confirmSelected
		m.closeDialogs()
		intent, ok := m.rooms.TakePendingDelete()
		if !confirmed || !ok {
			m.rooms.CancelDelete()
			return nil
		}
		return DeleteRoomCmd(m.client, intent.ID, intent.Name, m.fetchTimeout)
	}
	return nil
}

func (m *Model) handleKeyAttach(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.closeDialogs()
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.closeDialogs()
		if !m.thread.BeginUpload() {
			return cmd
		}
		return tea.Batch(cmd, StageAttachmentCmd(m.store, path))
	}
	return cmd
}

func (m *Model) handleKeyEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.thread.CancelEdit()
		m.closeDialogs()
		return nil

	case key.Matches(msg, m.keys.Send):
		m.thread.Edit().SetDraft(m.editInput.Value())
		if !m.thread.Edit().CanSave() {
			// Whitespace-only draft: saving would do nothing.
			return nil
		}
		id, _ := m.thread.Edit().MessageID()
		return SaveEditCmd(m.client, id, m.editInput.Value(), m.fetchTimeout)
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.thread.Edit().SetDraft(m.editInput.Value())
	return cmd
}

// closeDialogs returns to chat mode and restores compose focus.
func (m *Model) closeDialogs() {
	m.mode = ModeChat
	m.nameInput.Blur()
	m.editInput.Blur()
	m.compose.Focus()
}

// =============================================================================
// SEND AND EDIT INITIATION
// =============================================================================

// startSend begins a send of the compose text plus any staged attachment.
// A blank compose with no attachment is a complete no-op: the sending flag
// never transitions and nothing is dispatched.
func (m *Model) startSend() tea.Cmd {
	if m.thread.InputLocked() {
		return nil
	}
	text := m.compose.Value()
	id, ok := m.rooms.ActiveID()
	if !ok {
		return nil
	}
	if !m.thread.BeginSend(text) {
		return nil
	}

	// Optimistic bump before dispatch: the user message plus the AI reply
	// show in the tab count immediately.
	m.rooms.IncrementLocalCount(id, rooms.SendIncrement)

	var path string
	if a := m.thread.Attachment(); a != nil {
		path = a.Path
	}
	return SendMessageCmd(m.client, id, text, path, m.sendTimeout)
}

// startEdit opens the edit input seeded with the most recent user message.
func (m *Model) startEdit() tea.Cmd {
	target, ok := model.LastUserMessage(m.thread.Messages())
	if !ok {
		return m.setStatus("no message to edit", true)
	}
	m.thread.StartEdit(target.ID, target.Text)
	m.editInput.SetValue(target.Text)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.compose.Blur()
	m.mode = ModeEdit
	return nil
}

// =============================================================================
// ASYNC RESULT HANDLERS
// =============================================================================

func (m *Model) handleRoomsLoaded(msg RoomsLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.setError(msg.Err)
	}

	m.rooms.SetRooms(msg.Rooms)
	m.rooms.Reconcile()
	// Server counts are authoritative again as of this fetch.
	m.rooms.SyncCounts()

	if id, ok := m.rooms.ActiveID(); ok && id != m.thread.RoomID() {
		return m.fetchActiveThread()
	}
	return nil
}

func (m *Model) handleRoomCreated(msg RoomCreatedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.setError(msg.Err)
	}
	// Activate by name; the id resolves when the refetch lands.
	m.rooms.SetActiveByName(msg.Name)
	return tea.Batch(
		FetchRoomsCmd(m.client, m.fetchTimeout),
		RecordHistoryCmd(m.hist, history.Event{
			Kind:   history.KindRoomCreate,
			RoomID: roomID(msg.Room),
			Detail: msg.Name,
		}),
	)
}

func (m *Model) handleRoomDeleted(msg RoomDeletedMsg) tea.Cmd {
	if msg.Err != nil {
		return m.setError(msg.Err)
	}
	return tea.Batch(
		FetchRoomsCmd(m.client, m.fetchTimeout),
		RecordHistoryCmd(m.hist, history.Event{
			Kind:   history.KindRoomDelete,
			RoomID: msg.ID,
			Detail: msg.Name,
		}),
	)
}

func (m *Model) handleThreadLoaded(msg ThreadLoadedMsg) tea.Cmd {
	m.thread.CompleteFetch(msg.RoomID, msg.Messages, msg.Err)
	m.refreshViewport()
	if msg.Err != nil && msg.RoomID == m.thread.RoomID() {
		return m.setError(msg.Err)
	}
	return nil
}

func (m *Model) handleSendComplete(msg SendCompleteMsg) tea.Cmd {
	// The compose payload is spent either way: at-most-once sends.
	if a := m.thread.Attachment(); a != nil {
		_ = m.store.Discard(&storage.Staged{Path: a.Path, Name: a.Name, Size: a.Size})
	}
	preview := m.compose.Value()
	m.thread.CompleteSend()
	m.compose.Reset()

	cmds := []tea.Cmd{
		// Refetch both: the room list for true counts, the thread for the
		// stored user message and AI reply.
		FetchRoomsCmd(m.client, m.fetchTimeout),
		m.fetchActiveThread(),
	}
	if msg.Err != nil {
		cmds = append(cmds, m.setError(msg.Err))
	} else {
		cmds = append(cmds, RecordHistoryCmd(m.hist, history.Event{
			Kind:   history.KindSend,
			RoomID: msg.RoomID,
			Detail: previewText(preview),
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleEditSaved(msg EditSavedMsg) tea.Cmd {
	if msg.Err != nil {
		// The session stays open with the draft so the user can retry.
		m.thread.CompleteEdit(msg.Err)
		return m.setError(msg.Err)
	}
	m.thread.CompleteEdit(nil)
	draft := m.editInput.Value()
	m.editInput.Reset()
	m.closeDialogs()
	return tea.Batch(
		m.fetchActiveThread(),
		RecordHistoryCmd(m.hist, history.Event{
			Kind:      history.KindEdit,
			RoomID:    m.thread.RoomID(),
			MessageID: msg.MessageID,
			Detail:    previewText(draft),
		}),
	)
}

func (m *Model) handleAttachmentStaged(msg AttachmentStagedMsg) tea.Cmd {
	if msg.Err != nil {
		m.thread.CompleteUpload(nil)
		return m.setError(msg.Err)
	}
	// Replace any previously staged file on disk as well as in state.
	if prev := m.thread.Attachment(); prev != nil {
		_ = m.store.Discard(&storage.Staged{Path: prev.Path, Name: prev.Name, Size: prev.Size})
	}
	m.thread.CompleteUpload(&thread.Attachment{
		Path: msg.Staged.Path,
		Name: msg.Staged.Name,
		Size: msg.Staged.Size,
	})
	return nil
}

func (m *Model) handleConfigReloaded(msg ConfigReloadedMsg) tea.Cmd {
	m.client.SetBaseURL(msg.Cfg.ResolveBaseURL())
	m.markdown = msg.Cfg.UI.Markdown
	m.fetchTimeout = msg.Cfg.Timeout()
	m.sendTimeout = msg.Cfg.SendTimeout()
	m.envLabel = string(msg.Cfg.Environment)
	return tea.Batch(
		FetchRoomsCmd(m.client, m.fetchTimeout),
		m.setStatus("configuration reloaded", false),
	)
}

// =============================================================================
// HELPERS
// =============================================================================

// fetchActiveThread begins a fetch for the active room, if any.
func (m *Model) fetchActiveThread() tea.Cmd {
	id, ok := m.rooms.ActiveID()
	if !ok || !m.thread.BeginFetch(id) {
		return nil
	}
	m.refreshViewport()
	return FetchThreadCmd(m.client, id, m.fetchTimeout)
}

func roomID(r *model.ChatRoom) string {
	if r == nil {
		return ""
	}
	return r.ID
}

func previewText(s string) string {
	return model.Message{Text: s}.Preview(80)
}
