// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/mandyy1223/chatbot-tui/internal/model"
	"github.com/mandyy1223/chatbot-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// =============================================================================
// TAB STRIP TESTS
// =============================================================================

func TestTabStrip_ShowsNamesAndCounts(t *testing.T) {
	ts := NewTabStrip(testTheme())
	rooms := []model.ChatRoom{
		{ID: "1", Name: "Default Chatroom", MessageCount: 3},
		{ID: "2", Name: "Work", MessageCount: 11},
	}

	out := ts.Render(rooms, "1", 120)

	for _, want := range []string{"Default Chatroom", "(3)", "Work", "(11)"} {
		if !strings.Contains(out, want) {
			t.Errorf("tab strip missing %q:\n%s", want, out)
		}
	}
}

func TestTabStrip_EmptyDirectory(t *testing.T) {
	ts := NewTabStrip(testTheme())
	out := ts.Render(nil, "", 80)
	if !strings.Contains(out, "no rooms") {
		t.Errorf("empty strip should say so, got:\n%s", out)
	}
}

func TestTabStrip_TruncatesLongNames(t *testing.T) {
	ts := NewTabStrip(testTheme())
	rooms := []model.ChatRoom{
		{ID: "1", Name: strings.Repeat("verylongname", 10), MessageCount: 0},
	}

	out := ts.Render(rooms, "1", 80)
	if strings.Contains(out, strings.Repeat("verylongname", 10)) {
		t.Error("long room name should be truncated in the tab label")
	}
}

// =============================================================================
// DIALOG TESTS
// =============================================================================

func TestDialog_ConfirmDeleteNamesTheRoom(t *testing.T) {
	d := NewDialog(testTheme())
	out := d.RenderConfirmDelete("Work", false, 80, 24)

	if !strings.Contains(out, "Work") {
		t.Error("delete confirmation should name the target room")
	}
	if !strings.Contains(out, "Delete") || !strings.Contains(out, "Cancel") {
		t.Error("both buttons should render")
	}
}

func TestDialog_NewRoomEmbedsInput(t *testing.T) {
	d := NewDialog(testTheme())
	out := d.RenderNewRoom("my-input-view", 80, 24)
	if !strings.Contains(out, "my-input-view") {
		t.Error("dialog should embed the input view")
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_ShowsStatusAndHints(t *testing.T) {
	sb := NewStatusBar(testTheme())
	out := sb.Render(StatusReady, "", false, 120)

	if !strings.Contains(out, "Ready") {
		t.Errorf("bar missing status:\n%s", out)
	}
	if !strings.Contains(out, "quit") {
		t.Errorf("bar missing hints:\n%s", out)
	}
}

func TestStatusBar_MessageReplacesHints(t *testing.T) {
	sb := NewStatusBar(testTheme())
	out := sb.Render(StatusError, "room name already exists", true, 120)

	if !strings.Contains(out, "room name already exists") {
		t.Errorf("bar missing message:\n%s", out)
	}
	if strings.Contains(out, "quit") {
		t.Error("hints should be hidden while a message shows")
	}
}

func TestStatusBar_NarrowWidthDoesNotPanic(t *testing.T) {
	sb := NewStatusBar(testTheme())
	for _, w := range []int{0, 5, 20} {
		_ = sb.Render(StatusSending, "some long error message that cannot fit", true, w)
	}
}

func TestStatus_Strings(t *testing.T) {
	for status, want := range map[Status]string{
		StatusReady:     "Ready",
		StatusSending:   "Waiting for reply...",
		StatusPreparing: "Preparing image...",
	} {
		if status.String() != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, status.String(), want)
		}
	}
}
