// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/mandyy1223/chatbot-tui/internal/api"
	"github.com/mandyy1223/chatbot-tui/internal/config"
	"github.com/mandyy1223/chatbot-tui/internal/history"
	"github.com/mandyy1223/chatbot-tui/internal/rooms"
	"github.com/mandyy1223/chatbot-tui/internal/storage"
	"github.com/mandyy1223/chatbot-tui/internal/thread"
	"github.com/mandyy1223/chatbot-tui/internal/ui/components"
	"github.com/mandyy1223/chatbot-tui/internal/ui/styles"
)

// =============================================================================
// MODES
// =============================================================================

// Mode is the current input mode. Exactly one is active; modal modes route
// all key input to their dialog.
type Mode int

const (
	// ModeChat is the normal state: compose input focused, rooms switchable.
	ModeChat Mode = iota
	// ModeNewRoom shows the room naming dialog.
	ModeNewRoom
	// ModeConfirmDelete shows the delete confirmation for the pending intent.
	ModeConfirmDelete
	// ModeAttach shows the image file picker.
	ModeAttach
	// ModeEdit replaces the compose input with the edit input.
	ModeEdit
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model for the chat screen.
type Model struct {
	client *api.Client
	store  *storage.AttachmentStore
	hist   *history.Store // nil when history is disabled
	theme  *styles.Theme

	rooms  *rooms.Directory
	thread *thread.Thread

	mode  Mode
	keys  KeyMap
	width int
	height int
	ready bool // viewport sized at least once

	viewport  viewport.Model
	compose   textinput.Model
	editInput textinput.Model
	nameInput textinput.Model
	picker    filepicker.Model
	spin      spinner.Model

	// renderer is rebuilt on resize; nil disables markdown rendering.
	renderer *glamour.TermRenderer
	markdown bool

	tabs   *components.TabStrip
	dialog *components.Dialog
	status *components.StatusBar

	// confirmSelected is the delete dialog's focused button.
	confirmSelected bool

	// Transient status line; seq guards expiry against newer messages.
	statusMsg string
	statusErr bool
	statusSeq int

	fetchTimeout time.Duration
	sendTimeout  time.Duration

	envLabel string
}

// Options configures a new chat model.
type Options struct {
	Client      *api.Client
	Attachments *storage.AttachmentStore
	History     *history.Store
	Config      *config.Config
}

// New creates the chat model.
func New(opts Options) *Model {
	theme := styles.NewTheme()

	compose := textinput.New()
	compose.Placeholder = "Type a message..."
	compose.CharLimit = 4000
	compose.Focus()

	editInput := textinput.New()
	editInput.Placeholder = "Edit message..."
	editInput.CharLimit = 4000

	nameInput := textinput.New()
	nameInput.Placeholder = "Room name"
	nameInput.CharLimit = 120

	picker := filepicker.New()
	picker.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}
	picker.FileAllowed = true
	picker.DirAllowed = false

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	m := &Model{
		client: opts.Client,
		store:  opts.Attachments,
		hist:   opts.History,
		theme:  theme,

		rooms:  rooms.NewDirectory(),
		thread: thread.New(),

		mode: ModeChat,
		keys: DefaultKeyMap(),

		compose:   compose,
		editInput: editInput,
		nameInput: nameInput,
		picker:    picker,
		spin:      spin,

		markdown: opts.Config.UI.Markdown,

		tabs:   components.NewTabStrip(theme),
		dialog: components.NewDialog(theme),
		status: components.NewStatusBar(theme),

		fetchTimeout: opts.Config.Timeout(),
		sendTimeout:  opts.Config.SendTimeout(),

		envLabel: string(opts.Config.Environment),
	}
	return m
}

// Init starts the first room fetch and the ambient ticks.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		FetchRoomsCmd(m.client, m.fetchTimeout),
		m.spin.Tick,
		textinput.Blink,
	)
}

// busy reports whether a spinner-worthy operation is outstanding.
func (m *Model) busy() bool {
	return m.thread.IsLoading() || m.thread.IsSending() || m.thread.IsUploading()
}

// setStatus shows a transient status line and schedules its expiry.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusSeq++
	return ExpireStatusCmd(m.statusSeq)
}

// setError logs the failure for debugging and surfaces a short status line.
func (m *Model) setError(err error) tea.Cmd {
	log.Printf("operation failed: %v", err)
	return m.setStatus(humanizeError(err), true)
}

// currentStatus picks the status bar state from the pending flags.
func (m *Model) currentStatus() components.Status {
	switch {
	case m.statusErr && m.statusMsg != "":
		return components.StatusError
	case m.thread.IsSending():
		return components.StatusSending
	case m.thread.IsUploading():
		return components.StatusPreparing
	case m.thread.IsLoading():
		return components.StatusLoading
	default:
		return components.StatusReady
	}
}

// humanizeError maps transport errors to short status-bar text.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case api.IsTimeout(err):
		return "request timed out"
	case api.IsUnreachable(err):
		return "server unreachable"
	case api.IsValidation(err):
		return err.Error()
	default:
		return err.Error()
	}
}
