// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rooms holds the chat room directory state.
package rooms

import (
	"github.com/mandyy1223/chatbot-tui/internal/model"
)

// DefaultRoomName is the active room name shown before the first fetch
// resolves. It matches the backend's seeded room.
const DefaultRoomName = "Default Chatroom"

// SendIncrement is the optimistic count bump applied when a send is
// initiated: one for the user message, one for the synchronous AI reply.
// Applied unconditionally; the next room-list fetch corrects any drift.
const SendIncrement = 2

// =============================================================================
// DELETE INTENT
// =============================================================================

// DeleteIntent is a room marked for deletion but not yet confirmed.
// At most one exists at a time; requesting deletion of another room
// overwrites the pending target.
type DeleteIntent struct {
	ID   string
	Name string
}

// =============================================================================
// DIRECTORY
// =============================================================================

// Directory holds the list of chat rooms, the active room, and the local
// overlay of optimistic message counts.
//
// The directory is mutated only from the update loop, so it carries no lock.
type Directory struct {
	// fetched is the last server-fetched room list, in server order.
	fetched []model.ChatRoom

	// overlay maps room id to the locally displayed count. Reset to the
	// server counts by SyncCounts after every successful fetch.
	overlay map[string]int

	activeName string
	activeID   string // empty means no room selected

	pendingDelete *DeleteIntent
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		overlay:    make(map[string]int),
		activeName: DefaultRoomName,
	}
}

// =============================================================================
// MERGE
// =============================================================================

// Merge combines server-fetched rooms with a local count overlay.
// Pure: inputs are not mutated, and server order is preserved. A room's
// displayed count is its overlay entry when present, otherwise the server
// count.
func Merge(serverRooms []model.ChatRoom, overlay map[string]int) []model.ChatRoom {
	merged := make([]model.ChatRoom, len(serverRooms))
	for i, room := range serverRooms {
		if count, ok := overlay[room.ID]; ok {
			room.MessageCount = count
		}
		merged[i] = room
	}
	return merged
}

// =============================================================================
// FETCH RESULTS
// =============================================================================

// SetRooms replaces the last-fetched room list. It does not touch the
// overlay; callers invoke SyncCounts separately after a successful fetch.
func (d *Directory) SetRooms(serverRooms []model.ChatRoom) {
	d.fetched = make([]model.ChatRoom, len(serverRooms))
	copy(d.fetched, serverRooms)
}

// SyncCounts resets the overlay to exactly mirror the last-fetched server
// counts. Must run after every successful room-list fetch to bound overlay
// drift.
func (d *Directory) SyncCounts() {
	counts := make(map[string]int, len(d.fetched))
	for _, room := range d.fetched {
		counts[room.ID] = room.MessageCount
	}
	d.overlay = counts
}

// IncrementLocalCount adds delta to the overlay entry for id, creating it at
// delta when absent. Used for optimistic UI feedback before the server
// confirms.
func (d *Directory) IncrementLocalCount(id string, delta int) {
	d.overlay[id] += delta
}

// Rooms returns the last fetched list merged with the local overlay, in
// server order.
func (d *Directory) Rooms() []model.ChatRoom {
	return Merge(d.fetched, d.overlay)
}

// DisplayCount returns the count shown for a room id.
func (d *Directory) DisplayCount(id string) int {
	if count, ok := d.overlay[id]; ok {
		return count
	}
	for _, room := range d.fetched {
		if room.ID == id {
			return room.MessageCount
		}
	}
	return 0
}

// IsEmpty reports whether no rooms have been fetched.
func (d *Directory) IsEmpty() bool {
	return len(d.fetched) == 0
}

// =============================================================================
// ACTIVE ROOM
// =============================================================================

// ActiveID returns the active room id, or false when no room is selected.
func (d *Directory) ActiveID() (string, bool) {
	return d.activeID, d.activeID != ""
}

// ActiveName returns the active room's display name.
func (d *Directory) ActiveName() string {
	return d.activeName
}

// SetActiveByName sets the active room by display name, resolving the id
// against the current merged listing. A name with no match leaves no room
// selected; that is a valid state, not an error.
func (d *Directory) SetActiveByName(name string) {
	d.activeName = name
	d.activeID = ""
	for _, room := range d.fetched {
		if room.Name == name {
			d.activeID = room.ID
			return
		}
	}
}

// AutoSelect makes the first room in server order active when the list is
// non-empty and nothing is selected. Returns true when the selection changed.
func (d *Directory) AutoSelect() bool {
	if d.activeID != "" || len(d.fetched) == 0 {
		return false
	}
	d.activeID = d.fetched[0].ID
	d.activeName = d.fetched[0].Name
	return true
}

// Reconcile re-resolves the active name against a freshly fetched list and
// auto-selects when the previous room no longer exists. Called after every
// room-list fetch.
func (d *Directory) Reconcile() {
	d.SetActiveByName(d.activeName)
	d.AutoSelect()
}

// CycleActive moves the active room forward (step=1) or backward (step=-1)
// through the server-ordered list, wrapping at the ends.
func (d *Directory) CycleActive(step int) {
	if len(d.fetched) == 0 {
		return
	}
	idx := 0
	for i, room := range d.fetched {
		if room.ID == d.activeID {
			idx = i
			break
		}
	}
	idx = (idx + step + len(d.fetched)) % len(d.fetched)
	d.activeID = d.fetched[idx].ID
	d.activeName = d.fetched[idx].Name
}

// =============================================================================
// TWO-PHASE DELETE
// =============================================================================

// RequestDelete records a room as pending deletion. A prior pending target
// is overwritten; nothing is deleted until TakePendingDelete.
func (d *Directory) RequestDelete(id, name string) {
	d.pendingDelete = &DeleteIntent{ID: id, Name: name}
}

// PendingDelete returns the pending deletion target, or false when none.
func (d *Directory) PendingDelete() (DeleteIntent, bool) {
	if d.pendingDelete == nil {
		return DeleteIntent{}, false
	}
	return *d.pendingDelete, true
}

// TakePendingDelete clears and returns the pending target for confirmation.
// The caller performs the actual delete call.
func (d *Directory) TakePendingDelete() (DeleteIntent, bool) {
	intent, ok := d.PendingDelete()
	d.pendingDelete = nil
	return intent, ok
}

// CancelDelete discards the pending deletion intent with no side effect.
func (d *Directory) CancelDelete() {
	d.pendingDelete = nil
}
