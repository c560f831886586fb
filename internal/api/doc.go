// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the transport boundary of the chatbot TUI: a thin HTTP
// client over the backend's REST surface.
//
// Endpoints, relative to the configured base URL:
//
//	GET    /chatRooms                  list rooms
//	POST   /chatRooms                  create room
//	DELETE /chatRooms/{id}             delete room
//	GET    /chatRooms/{id}/messages    list a room's messages
//	POST   /messages/gemini            send a message (multipart)
//	PUT    /messages/{id}              edit a message's text
//
// Failures are normalized into *ClientError with an ErrorType and, for
// non-2xx responses, the HTTP status. Nothing in this package retries or
// swallows errors; the update loop decides what a failure means.
//
// The base URL is injected through ClientConfig rather than read from the
// environment, so tests can point the client at an httptest server without
// any environment mocking.
package api
