// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures exchanged with the chatbot
// backend: chat rooms and messages.
//
// Both types mirror the backend JSON exactly. Client-side state built on top
// of them (count overlays, edit sessions, pending flags) lives in the rooms
// and thread packages so that these entities stay plain data.
package model
