// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mandyy1223/chatbot-tui/internal/model"
	"github.com/mandyy1223/chatbot-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen.
func (m *Model) View() string {
	if !m.ready {
		return "starting..."
	}

	header := m.renderHeader()
	tabs := m.tabs.Render(m.rooms.Rooms(), activeOrEmpty(m.rooms.ActiveID()), m.width)
	status := m.status.Render(m.currentStatus(), m.statusMsg, m.statusErr, m.width)

	var body string
	switch m.mode {
	case ModeNewRoom:
		body = m.dialog.RenderNewRoom(m.nameInput.View(), m.width, m.viewport.Height)
	case ModeConfirmDelete:
		name := ""
		if intent, ok := m.rooms.PendingDelete(); ok {
			name = intent.Name
		}
		body = m.dialog.RenderConfirmDelete(name, m.confirmSelected, m.width, m.viewport.Height)
	case ModeAttach:
		body = m.picker.View()
	default:
		body = m.viewport.View()
	}

	sections := []string{header, tabs, body}
	if preview := m.renderAttachmentPreview(); preview != "" {
		sections = append(sections, preview)
	}
	sections = append(sections, m.renderInput(), status)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("chatbot")
	subtitle := m.theme.HeaderSubtitle.Render(" " + m.envLabel)
	return m.theme.Header.Width(m.width).Render(title + subtitle)
}

// renderInput draws the bottom input row: the edit input with its banner in
// edit mode, otherwise the compose input (with a waiting note while locked).
func (m *Model) renderInput() string {
	if m.mode == ModeEdit {
		banner := m.theme.EditBanner.Render("editing message (esc to cancel)")
		return m.theme.InputContainer.Width(m.width).Render(
			banner + "\n" + m.editInput.View())
	}

	if m.thread.InputLocked() {
		note := m.theme.WaitingText.Render("waiting...")
		return m.theme.InputContainer.Width(m.width).Render(
			m.spin.View() + " " + note)
	}
	return m.theme.InputContainer.Width(m.width).Render(m.compose.View())
}

// renderAttachmentPreview shows the staged image, if any.
func (m *Model) renderAttachmentPreview() string {
	a := m.thread.Attachment()
	if a == nil {
		return ""
	}
	name := m.theme.AttachmentName.Render(util.TruncateWidth(a.Name, 40))
	meta := m.theme.AttachmentMeta.Render(
		fmt.Sprintf(" %s  ctrl+x to remove", util.FormatBytes(a.Size)))
	return m.theme.AttachmentBox.Render("IMG " + name + meta)
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// bubbleWidth is the content width for a message bubble given the terminal
// width; bubbles never span the full row.
func bubbleWidth(termWidth int) int {
	w := termWidth * 3 / 4
	if w < 20 {
		w = 20
	}
	return w
}

// refreshViewport re-renders the thread into the scrollback and pins the
// view to the newest message.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// renderMessages draws the whole thread, user messages on the right, AI
// replies on the left.
func (m *Model) renderMessages() string {
	messages := m.thread.Messages()
	if m.thread.IsLoading() && len(messages) == 0 {
		return m.theme.WaitingText.Render("loading messages...")
	}
	if len(messages) == 0 {
		return m.theme.WaitingText.Render("no messages yet - say hello")
	}

	maxW := bubbleWidth(m.width)
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg, maxW))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(msg model.Message, maxW int) string {
	var content string
	if msg.HasText() {
		content = msg.Text
	}
	if msg.HasImage() {
		marker := m.theme.ImageMarker.Render("[image]")
		if content != "" {
			content += "\n" + marker
		} else {
			content = marker
		}
	}

	if msg.IsUser() {
		bubble := m.theme.UserBubble.MaxWidth(maxW).Render(content)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
	}

	// AI replies render as markdown when a renderer is available.
	if m.renderer != nil && msg.HasText() {
		if rendered, err := m.renderer.Render(msg.Text); err == nil {
			text := strings.TrimRight(rendered, "\n")
			if msg.HasImage() {
				text += "\n" + m.theme.ImageMarker.Render("[image]")
			}
			content = text
		}
	}
	bubble := m.theme.AIBubble.MaxWidth(maxW).Render(content)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, bubble)
}

func activeOrEmpty(id string, ok bool) string {
	if !ok {
		return ""
	}
	return id
}
