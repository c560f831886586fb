// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mandyy1223/chatbot-tui/internal/ui/styles"
	"github.com/mandyy1223/chatbot-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusSending
	StatusPreparing
	StatusError
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusSending:
		return "Waiting for reply..."
	case StatusPreparing:
		return "Preparing image..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusSending, StatusPreparing:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "-"
	}
}

// StatusBar renders the bottom bar: status on the left, transient message in
// the middle, key hints on the right.
type StatusBar struct {
	theme *styles.Theme
}

// NewStatusBar creates a status bar renderer with the given theme.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// shortcutHints are always visible; modal keys show in the dialogs instead.
var shortcutHints = [][2]string{
	{"tab", "rooms"},
	{"^n", "new"},
	{"^d", "delete"},
	{"^o", "attach"},
	{"^e", "edit"},
	{"^c", "quit"},
}

// Render draws the bar. A non-empty message overrides the hints; isErr picks
// the error styling for it.
func (sb *StatusBar) Render(status Status, message string, isErr bool, width int) string {
	left := status.Icon() + " " + status.String()

	var right string
	if message != "" {
		if isErr {
			right = sb.theme.StatusError.Render(util.FirstLine(message))
		} else {
			right = sb.theme.StatusInfo.Render(util.FirstLine(message))
		}
	} else {
		var hints []string
		for _, h := range shortcutHints {
			hints = append(hints, sb.theme.ShortcutKey.Render(h[0])+" "+sb.theme.ShortcutDesc.Render(h[1]))
		}
		right = strings.Join(hints, "  ")
	}

	gap := width - util.StringWidth(left) - util.StringWidth(right) - 2
	if gap < 1 {
		// Not enough room for both; the message/hints lose.
		right = util.TruncateWidth(right, max(0, width-util.StringWidth(left)-3))
		gap = 1
	}

	return sb.theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
