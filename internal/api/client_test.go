// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the chatbot backend.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandyy1223/chatbot-tui/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithConfig(&ClientConfig{BaseURL: srv.URL + "/api"}), srv
}

// =============================================================================
// CHAT ROOM TESTS
// =============================================================================

func TestClient_ListChatrooms(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/chatRooms", r.URL.Path)
		json.NewEncoder(w).Encode([]model.ChatRoom{
			{ID: "1", Name: "Default Chatroom", MessageCount: 3},
			{ID: "2", Name: "聊天室", MessageCount: 0},
		})
	}))

	rooms, err := client.ListChatrooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	// Server order must be preserved.
	assert.Equal(t, "1", rooms[0].ID)
	assert.Equal(t, 3, rooms[0].MessageCount)
	assert.Equal(t, "聊天室", rooms[1].Name)
}

func TestClient_CreateChatroom(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chatRooms", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new room", body["name"])

		json.NewEncoder(w).Encode(model.ChatRoom{ID: "9", Name: body["name"]})
	}))

	room, err := client.CreateChatroom(context.Background(), "new room")
	require.NoError(t, err)
	assert.Equal(t, "9", room.ID)
}

func TestClient_CreateChatroom_EmptyNameNoNetworkCall(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.CreateChatroom(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.False(t, called, "validation failures must not reach the network")
}

func TestClient_DeleteChatroom(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/chatRooms/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteChatroom(context.Background(), "42"))
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestClient_ListMessages(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chatRooms/1/messages", r.URL.Path)
		json.NewEncoder(w).Encode([]model.Message{
			{ID: "m1", Text: "hi", Sender: model.SenderUser},
			{ID: "m2", Text: "hello!", Sender: model.SenderAI},
		})
	}))

	msgs, err := client.ListMessages(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, model.SenderAI, msgs[1].Sender)
}

func TestClient_SendMessage_MultipartFields(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(imgPath, []byte("fake-png-bytes"), 0644))

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/messages/gemini", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "1", r.FormValue("chatroom_id"))
		assert.Equal(t, "user", r.FormValue("sender"))
		assert.Equal(t, "look at this", r.FormValue("text"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cat.png", header.Filename)

		json.NewEncoder(w).Encode(model.Message{ID: "m3", Text: "look at this", Sender: model.SenderUser})
	}))

	msg, err := client.SendMessage(context.Background(), "1", "look at this", imgPath)
	require.NoError(t, err)
	assert.Equal(t, "m3", msg.ID)
}

func TestClient_SendMessage_TextOnlyOmitsFile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("file")
		assert.Error(t, err, "file part should be absent for text-only sends")
		json.NewEncoder(w).Encode(model.Message{ID: "m4"})
	}))

	_, err := client.SendMessage(context.Background(), "1", "hello", "")
	require.NoError(t, err)
}

func TestClient_SendMessage_EmptyIsValidationError(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.SendMessage(context.Background(), "1", "   ", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.False(t, called)
}

func TestClient_EditMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/messages/m1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "corrected", body["text"])

		json.NewEncoder(w).Encode(model.Message{ID: "m1", Text: body["text"], Sender: model.SenderUser})
	}))

	msg, err := client.EditMessage(context.Background(), "m1", "corrected")
	require.NoError(t, err)
	assert.Equal(t, "corrected", msg.Text)
}

// =============================================================================
// ERROR MAPPING TESTS
// =============================================================================

func TestClient_HTTPErrorCarriesStatusAndMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "chatroom not found"})
	}))

	_, err := client.ListMessages(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.Contains(t, err.Error(), "chatroom not found")
}

func TestClient_ConnectionFailure(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1/api"})

	_, err := client.ListChatrooms(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestClient_DefaultsFilledIn(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, "http://localhost:5000/api", client.BaseURL())
}
