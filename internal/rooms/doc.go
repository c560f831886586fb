// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rooms holds the chat room directory state: the last server-fetched
// room list, the active room, a local overlay of optimistic message counts,
// and the two-phase delete intent.
//
// The overlay exists because a send bumps the room's displayed count before
// the server has confirmed anything. Merge is a pure function so the overlay
// rule (overlay entry wins over server count) is testable in isolation from
// fetch side effects. SyncCounts must run after every successful room-list
// fetch; it is what keeps optimistic drift bounded.
//
// Directory has no internal locking. All mutation happens on the Bubble Tea
// update loop, which runs one message at a time.
package rooms
