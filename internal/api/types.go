// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the chatbot backend.
package api

// createRoomRequest is the body for POST /chatRooms.
type createRoomRequest struct {
	Name string `json:"name"`
}

// editMessageRequest is the body for PUT /messages/{id}.
type editMessageRequest struct {
	Text string `json:"text"`
}

// errorResponse is the backend's error envelope. The Flask backend is not
// consistent about the field name, so both are accepted.
type errorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"message"`
}

// Message returns whichever error field the backend populated.
func (e errorResponse) Message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Msg
}
