// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the chatbot TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mandyy1223/chatbot-tui/internal/model"
	"github.com/mandyy1223/chatbot-tui/internal/ui/styles"
	"github.com/mandyy1223/chatbot-tui/internal/util"
)

// =============================================================================
// ROOM TAB STRIP
// =============================================================================

// maxTabLabelWidth bounds a single room name in the strip. Long names are
// truncated by display width so CJK names do not blow past the budget.
const maxTabLabelWidth = 20

// TabStrip renders the chat rooms as a horizontal tab row with message
// counts. The counts come from the merged directory listing, so an
// optimistic bump shows the instant a send starts.
type TabStrip struct {
	theme *styles.Theme
}

// NewTabStrip creates a tab strip rendering with the given theme.
func NewTabStrip(theme *styles.Theme) *TabStrip {
	return &TabStrip{theme: theme}
}

// Render draws the tab row. activeID selects the highlighted tab; an empty
// activeID (no room selected) highlights nothing.
func (ts *TabStrip) Render(rooms []model.ChatRoom, activeID string, width int) string {
	if len(rooms) == 0 {
		return ts.theme.TabBar.Width(width).Render(
			ts.theme.TabInactive.Render("no rooms"))
	}

	var tabs []string
	for _, room := range rooms {
		label := fmt.Sprintf("%s (%s)",
			util.TruncateWidth(room.Name, maxTabLabelWidth),
			util.IntToString(room.MessageCount))

		if room.ID == activeID {
			tabs = append(tabs, ts.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, ts.theme.TabInactive.Render(label))
		}
	}

	row := strings.Join(tabs, " ")
	// Drop trailing tabs rather than wrapping when the terminal is narrow.
	if util.StringWidth(row) > width {
		row = util.TruncateWidth(row, width)
	}
	return ts.theme.TabBar.Width(width).Render(row)
}

// RenderVertical draws the rooms as a list, used when the terminal is too
// narrow for a tab row.
func (ts *TabStrip) RenderVertical(rooms []model.ChatRoom, activeID string, width int) string {
	var lines []string
	for _, room := range rooms {
		marker := "  "
		style := ts.theme.TabInactive
		if room.ID == activeID {
			marker = "> "
			style = ts.theme.TabActive
		}
		label := fmt.Sprintf("%s%s %s",
			marker,
			util.TruncateWidth(room.Name, width-8),
			ts.theme.TabCount.Render("("+util.IntToString(room.MessageCount)+")"))
		lines = append(lines, style.Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
