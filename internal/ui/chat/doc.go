// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The chat screen is one Bubble Tea model covering the full client: the
// room tab strip, the message scrollback, the compose input, and the modal
// dialogs (new room, delete confirmation, image picker, inline edit). All
// state lives in the rooms directory and the thread; this package wires
// their transitions to keys and backend results.
//
// # Architecture
//
// The update loop is the only writer. Backend calls run as tea.Cmds with
// their own contexts and report back through the message types in
// messages.go; handlers apply results and trigger the follow-up fetches.
// After every room-list fetch the directory reconciles the active room and
// syncs the optimistic counts back to server truth.
//
// # Modes
//
// Mode gates key routing. Chat mode feeds the compose input; each modal
// mode owns the keyboard until it closes. Escape always backs out without
// side effects (a cancelled delete leaves the room untouched, a cancelled
// edit discards the draft).
package chat
