// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package thread holds the message thread state for the active chat room:
// the fetched messages, the in-flight send and upload flags, the staged
// image attachment, and the inline edit session.
//
// The thread is scoped to one room at a time. Fetch completions carry the
// room id they were issued for, and results for a room that is no longer
// current are dropped on the floor; switching rooms quickly therefore never
// renders another room's messages.
//
// Sends are at-most-once: completion clears the compose payload whether the
// request succeeded or not. Edits are the opposite: a failed save keeps the
// session open with the draft intact.
//
// Like the rooms directory, a Thread is mutated only from the update loop
// and carries no lock.
package thread
