// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli handles argument parsing and terminal detection for the
// chatbot-tui entry point. The default command launches the TUI; the small
// non-interactive commands (config, history, version) print and exit.
package cli
