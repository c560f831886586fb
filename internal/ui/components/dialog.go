// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mandyy1223/chatbot-tui/internal/ui/styles"
	"github.com/mandyy1223/chatbot-tui/internal/util"
)

// =============================================================================
// DIALOG BOXES
// =============================================================================

// Dialog renders the modal boxes: new-room naming and delete confirmation.
type Dialog struct {
	theme *styles.Theme
}

// NewDialog creates a dialog renderer with the given theme.
func NewDialog(theme *styles.Theme) *Dialog {
	return &Dialog{theme: theme}
}

// RenderNewRoom draws the room creation box around the name input's view.
func (d *Dialog) RenderNewRoom(inputView string, width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		d.theme.DialogTitle.Render("New chat room"),
		"",
		inputView,
		"",
		d.theme.ShortcutKey.Render("enter")+d.theme.ShortcutDesc.Render(" create  ")+
			d.theme.ShortcutKey.Render("esc")+d.theme.ShortcutDesc.Render(" cancel"),
	)
	return d.center(d.theme.DialogBox.Render(body), width, height)
}

// RenderConfirmDelete draws the two-phase delete confirmation for a room.
// The room name is shown so a stacked intent (requesting delete of another
// room while this box is open) is visibly the new target.
func (d *Dialog) RenderConfirmDelete(roomName string, confirmSelected bool, width, height int) string {
	confirm := d.theme.DialogButton.Render("Delete")
	cancel := d.theme.DialogButtonActive.Render("Cancel")
	if confirmSelected {
		confirm = d.theme.DialogButtonActive.Render("Delete")
		cancel = d.theme.DialogButton.Render("Cancel")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		d.theme.DialogDangerTitle.Render("Delete chat room"),
		"",
		d.theme.DialogText.Render(fmt.Sprintf("Delete %q and all its messages?", util.TruncateWidth(roomName, 40))),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel),
		"",
		d.theme.ShortcutKey.Render("enter")+d.theme.ShortcutDesc.Render(" confirm  ")+
			d.theme.ShortcutKey.Render("tab")+d.theme.ShortcutDesc.Render(" switch  ")+
			d.theme.ShortcutKey.Render("esc")+d.theme.ShortcutDesc.Render(" cancel"),
	)
	return d.center(d.theme.DialogBox.Render(body), width, height)
}

// center places a rendered box in the middle of the available area.
func (d *Dialog) center(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
