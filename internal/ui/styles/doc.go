// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatbot TUI.
//
// Every color is a lipgloss.AdaptiveColor pair so light and dark terminals
// both get readable contrast without a configuration knob. Theme bundles the
// composed styles (tabs, bubbles, input, dialogs, status bar) so views never
// construct styles inline.
package styles
