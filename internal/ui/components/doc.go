// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the chatbot TUI:
// the room tab strip, the modal dialogs (new room, delete confirmation), and
// the bottom status bar. Components render strings from state; they hold no
// state of their own beyond the theme.
package components
