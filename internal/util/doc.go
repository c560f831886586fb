// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string and formatting helpers shared across
// the chatbot TUI.
//
// The string helpers are rune- and width-aware (via go-runewidth) because
// chat room names and message bodies are frequently CJK text, where byte
// or rune counts do not match terminal columns.
package util
