// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides attachment staging for the chatbot TUI.
//
// Picked image files are copied into ~/.chatbot/attachments before the
// multipart send reads them, so the original can move or vanish after
// selection. Staged copies are discarded when a send completes and swept
// at startup.
//
// # Key Types
//
//   - AttachmentStore: stages, discards, and sweeps attachment copies
//   - Staged: a copied file ready to send (path, display name, size)
package storage
