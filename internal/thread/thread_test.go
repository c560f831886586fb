// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package thread

import (
	"errors"
	"testing"

	"github.com/mandyy1223/chatbot-tui/internal/model"
)

// =============================================================================
// FETCH TESTS
// =============================================================================

func TestBeginFetch_EmptyRoomIsNoOp(t *testing.T) {
	th := New()
	if th.BeginFetch("") {
		t.Fatal("fetch with no room selected should be refused")
	}
	if th.IsLoading() {
		t.Error("loading flag should not be set")
	}
}

func TestBeginFetch_SwitchingRoomsDropsMessages(t *testing.T) {
	th := New()
	th.BeginFetch("1")
	th.CompleteFetch("1", []model.Message{{ID: "m1", Text: "hi", Sender: model.SenderUser}}, nil)

	th.BeginFetch("2")
	if len(th.Messages()) != 0 {
		t.Error("previous room's messages should be dropped on switch")
	}
	if !th.IsLoading() {
		t.Error("loading flag should be set for the new room")
	}
}

func TestCompleteFetch_StaleRoomIgnored(t *testing.T) {
	th := New()
	th.BeginFetch("1")
	th.BeginFetch("2")

	// The room-1 response arrives after the switch.
	th.CompleteFetch("1", []model.Message{{ID: "stale"}}, nil)

	if len(th.Messages()) != 0 {
		t.Error("stale fetch result should be discarded")
	}
	if !th.IsLoading() {
		t.Error("room 2's fetch is still outstanding")
	}

	th.CompleteFetch("2", []model.Message{{ID: "fresh"}}, nil)
	if len(th.Messages()) != 1 || th.Messages()[0].ID != "fresh" {
		t.Errorf("messages = %+v, want the room-2 result", th.Messages())
	}
	if th.IsLoading() {
		t.Error("loading flag should clear on the current room's completion")
	}
}

func TestCompleteFetch_ErrorKeepsExistingMessages(t *testing.T) {
	th := New()
	th.BeginFetch("1")
	th.CompleteFetch("1", []model.Message{{ID: "m1"}}, nil)

	th.BeginFetch("1")
	th.CompleteFetch("1", nil, errors.New("boom"))

	if len(th.Messages()) != 1 {
		t.Error("a failed refetch should not clear the rendered thread")
	}
	if th.IsLoading() {
		t.Error("loading flag should clear even on error")
	}
}

func TestBeginFetch_SwitchingRoomsCancelsEdit(t *testing.T) {
	th := New()
	th.BeginFetch("1")
	th.StartEdit("m1", "old text")

	th.BeginFetch("2")
	if th.Edit().IsOpen() {
		t.Error("edit targeting the previous room should be cancelled on switch")
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestBeginSend_BlankTextNoAttachmentIsNoOp(t *testing.T) {
	th := New()
	for _, text := range []string{"", "   ", "\t\n"} {
		if th.BeginSend(text) {
			t.Errorf("send of %q with no attachment should be refused", text)
		}
		if th.IsSending() {
			t.Errorf("sending flag should never transition for a no-op send of %q", text)
		}
	}
}

func TestBeginSend_AttachmentAloneIsEnough(t *testing.T) {
	th := New()
	th.CompleteUpload(&Attachment{Path: "/tmp/cat.png", Name: "cat.png", Size: 42})

	if !th.BeginSend("") {
		t.Fatal("blank text with a staged attachment should send")
	}
	if !th.IsSending() {
		t.Error("sending flag should be set")
	}
}

func TestBeginSend_RefusedWhileInFlight(t *testing.T) {
	th := New()
	if !th.BeginSend("hello") {
		t.Fatal("first send should start")
	}
	if th.BeginSend("again") {
		t.Error("second send should be refused while the first is outstanding")
	}
}

func TestCompleteSend_DiscardsAttachmentEitherWay(t *testing.T) {
	th := New()
	th.CompleteUpload(&Attachment{Path: "/tmp/a.png", Name: "a.png"})
	th.BeginSend("with image")

	th.CompleteSend()

	if th.IsSending() {
		t.Error("sending flag should clear")
	}
	if th.Attachment() != nil {
		t.Error("attachment should be discarded on completion, success or not")
	}
}

func TestInputLocked(t *testing.T) {
	th := New()
	if th.InputLocked() {
		t.Fatal("idle thread should not lock input")
	}
	th.BeginSend("hi")
	if !th.InputLocked() {
		t.Error("input should lock while sending")
	}
	th.CompleteSend()
	th.BeginUpload()
	if !th.InputLocked() {
		t.Error("input should lock while preparing an attachment")
	}
}

// =============================================================================
// ATTACHMENT TESTS
// =============================================================================

func TestCompleteUpload_ReplacesPrevious(t *testing.T) {
	th := New()
	th.CompleteUpload(&Attachment{Name: "first.png"})
	th.CompleteUpload(&Attachment{Name: "second.png"})

	if got := th.Attachment(); got == nil || got.Name != "second.png" {
		t.Errorf("attachment = %+v, want the replacement", got)
	}
}

func TestCompleteUpload_NilKeepsPrior(t *testing.T) {
	th := New()
	th.CompleteUpload(&Attachment{Name: "kept.png"})
	th.BeginUpload()
	th.CompleteUpload(nil)

	if th.IsUploading() {
		t.Error("upload flag should clear on failure")
	}
	if got := th.Attachment(); got == nil || got.Name != "kept.png" {
		t.Errorf("attachment = %+v, want the prior one kept", got)
	}
}

func TestBeginUpload_RefusedWhileRunning(t *testing.T) {
	th := New()
	if !th.BeginUpload() {
		t.Fatal("first upload should start")
	}
	if th.BeginUpload() {
		t.Error("second upload should be refused while the first runs")
	}
}

func TestRemoveAttachment(t *testing.T) {
	th := New()
	th.CompleteUpload(&Attachment{Name: "gone.png"})
	th.RemoveAttachment()
	if th.Attachment() != nil {
		t.Error("attachment should be cleared")
	}
}

// =============================================================================
// EDIT SESSION TESTS
// =============================================================================

func TestEditSession_ZeroValueIsClosed(t *testing.T) {
	var e EditSession
	if e.IsOpen() {
		t.Error("zero value should be closed")
	}
	if e.CanSave() {
		t.Error("closed session can never save")
	}
	if _, ok := e.MessageID(); ok {
		t.Error("closed session has no target")
	}
}

func TestEditSession_StartSeedsDraft(t *testing.T) {
	var e EditSession
	e.Start("m1", "original text")

	if !e.IsOpen() {
		t.Fatal("session should be open")
	}
	if e.Draft() != "original text" {
		t.Errorf("draft = %q, want the message's current text", e.Draft())
	}
	id, ok := e.MessageID()
	if !ok || id != "m1" {
		t.Errorf("target = %q, want m1", id)
	}
}

func TestEditSession_LastStartWins(t *testing.T) {
	var e EditSession
	e.Start("m1", "first")
	e.Start("m2", "second")

	id, _ := e.MessageID()
	if id != "m2" || e.Draft() != "second" {
		t.Errorf("session = (%q, %q), want the later start", id, e.Draft())
	}
}

func TestEditSession_WhitespaceDraftCannotSave(t *testing.T) {
	var e EditSession
	e.Start("m1", "text")
	e.SetDraft("   \t")
	if e.CanSave() {
		t.Error("whitespace-only draft should not be saveable")
	}
	e.SetDraft("fixed")
	if !e.CanSave() {
		t.Error("non-blank draft should be saveable")
	}
}

func TestEditSession_SetDraftNoOpWhenClosed(t *testing.T) {
	var e EditSession
	e.SetDraft("orphan")
	if e.Draft() != "" {
		t.Error("SetDraft on a closed session should do nothing")
	}
}

func TestCompleteEdit_FailureKeepsSessionOpen(t *testing.T) {
	th := New()
	th.StartEdit("m1", "draft")

	th.CompleteEdit(errors.New("network down"))
	if !th.Edit().IsOpen() {
		t.Fatal("failed save should keep the session open")
	}
	if th.Edit().Draft() != "draft" {
		t.Error("draft should survive a failed save")
	}

	th.CompleteEdit(nil)
	if th.Edit().IsOpen() {
		t.Error("successful save should close the session")
	}
}

func TestCancelEdit_DiscardsDraft(t *testing.T) {
	th := New()
	th.StartEdit("m1", "draft")
	th.CancelEdit()

	if th.Edit().IsOpen() {
		t.Fatal("cancel should close the session")
	}
	if th.Edit().Draft() != "" {
		t.Error("cancel should discard the draft")
	}
}
