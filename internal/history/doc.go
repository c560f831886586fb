// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records local chat activity (sends, edits, room create and
// delete) in a SQLite database under ~/.chatbot. The log is purely local
// bookkeeping; the backend remains the source of truth for messages. Every
// program run gets a fresh session id so activity can be grouped per run.
//
// The store is best-effort: callers treat a failed Open or Record as a
// logged warning, never a fatal error.
package history
