// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the chatbot backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mandyy1223/chatbot-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Status  int // HTTP status for ErrTypeHTTP, zero otherwise
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeValidation
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeHTTP
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnreachable  = &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable"}
	ErrEmptyMessage = &ClientError{Type: ErrTypeValidation, Message: "message has no text and no attachment"}
)

// IsValidation checks if an error was rejected before any network call.
func IsValidation(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeValidation
	}
	return false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsUnreachable checks if an error indicates the backend could not be reached.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeConnection
	}
	return errors.Is(err, ErrUnreachable)
}

// HTTPStatus returns the HTTP status carried by an error, or zero when the
// error is not a non-2xx response.
func HTTPStatus(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeHTTP {
		return clientErr.Status
	}
	return 0
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL, including the /api prefix.
	// Injected by the caller; the client never inspects the environment.
	BaseURL string

	// Timeout for plain JSON requests (default: 15s)
	Timeout time.Duration

	// SendTimeout for message sends. The backend produces the AI reply
	// synchronously, so sends run much longer than CRUD calls (default: 90s).
	SendTimeout time.Duration

	// RequestsPerSecond caps outgoing requests (default: 10).
	// Duplicate submissions are prevented by UI gating; the limiter is a
	// backstop against refetch storms.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size (default: 5)
	Burst int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://localhost:5000/api",
		Timeout:           15 * time.Second,
		SendTimeout:       90 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the chatbot backend API.
//
// All methods take a context and return typed errors; non-2xx responses and
// network failures are normalized into *ClientError. The Client is safe for
// concurrent use.
//
// Example:
//
//	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: cfg.ResolveBaseURL()})
//	rooms, err := client.ListChatrooms(ctx)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:5000/api"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.SendTimeout == 0 {
		config.SendTimeout = 90 * time.Second
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 10
	}
	if config.Burst == 0 {
		config.Burst = 5
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// SetBaseURL updates the base URL. Called from the update loop on config
// reload; never concurrently with itself.
func (c *Client) SetBaseURL(url string) {
	c.config.BaseURL = strings.TrimRight(url, "/")
}

// =============================================================================
// CHAT ROOM OPERATIONS
// =============================================================================

// ListChatrooms retrieves all chat rooms in server order.
func (c *Client) ListChatrooms(ctx context.Context) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	if err := c.doJSON(ctx, http.MethodGet, "/chatRooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// CreateChatroom creates a new chat room.
// The name must already be validated; an empty name is rejected here as a
// final guard without touching the network.
func (c *Client) CreateChatroom(ctx context.Context, name string) (*model.ChatRoom, error) {
	if err := model.ValidateRoomName(name); err != nil {
		return nil, &ClientError{Type: ErrTypeValidation, Message: "invalid room name", Cause: err}
	}

	var room model.ChatRoom
	if err := c.doJSON(ctx, http.MethodPost, "/chatRooms", createRoomRequest{Name: name}, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteChatroom deletes a chat room by id.
func (c *Client) DeleteChatroom(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/chatRooms/"+id, nil, nil)
}

// =============================================================================
// MESSAGE OPERATIONS
// =============================================================================

// ListMessages retrieves the messages of a single chat room in server order.
func (c *Client) ListMessages(ctx context.Context, roomID string) ([]model.Message, error) {
	var messages []model.Message
	if err := c.doJSON(ctx, http.MethodGet, "/chatRooms/"+roomID+"/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a user message to a chat room as multipart form data.
// Either text or filePath must be present. The backend stores the user
// message, produces the AI reply synchronously, and returns the stored
// user message.
func (c *Client) SendMessage(ctx context.Context, roomID, text, filePath string) (*model.Message, error) {
	if strings.TrimSpace(text) == "" && filePath == "" {
		return nil, ErrEmptyMessage
	}

	body, contentType, err := encodeSendForm(roomID, text, filePath)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to encode multipart form", Cause: err}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeTimeout, Message: "rate limiter wait aborted", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/messages/gemini", body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)

	// Sends wait on the synchronous AI reply, so they get their own client
	// with the longer timeout.
	sendClient := &http.Client{Timeout: c.config.SendTimeout}

	resp, err := sendClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var msg model.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return &msg, nil
}

// EditMessage replaces the text of an existing message (last-write-wins).
func (c *Client) EditMessage(ctx context.Context, messageID, text string) (*model.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ClientError{Type: ErrTypeValidation, Message: "edited text must not be empty"}
	}

	var msg model.Message
	if err := c.doJSON(ctx, http.MethodPut, "/messages/"+messageID, editMessageRequest{Text: text}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// doJSON issues a JSON request and decodes the response into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, out interface{}) error {
	var body io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(encoded)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &ClientError{Type: ErrTypeTimeout, Message: "rate limiter wait aborted", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// checkStatus converts a non-2xx response into a typed error carrying the
// status and the backend's error message when one is present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := fmt.Sprintf("request failed: %s", resp.Status)
	var backendErr errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&backendErr); err == nil && backendErr.Message() != "" {
		message = backendErr.Message()
	}

	return &ClientError{
		Type:    ErrTypeHTTP,
		Status:  resp.StatusCode,
		Message: message,
	}
}

// encodeSendForm builds the multipart body for a message send.
// Field names match the backend contract: chatroom_id, sender, text, file.
func encodeSendForm(roomID, text, filePath string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chatroom_id", roomID); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("sender", string(model.SenderUser)); err != nil {
		return nil, "", err
	}
	if text != "" {
		if err := w.WriteField("text", text); err != nil {
			return nil, "", err
		}
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()

		part, err := w.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
