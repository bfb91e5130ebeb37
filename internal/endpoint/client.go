// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/chatline/internal/model"
)

const (
	// DefaultBaseURL is where the completion service listens by default.
	DefaultBaseURL = "http://127.0.0.1:3000"

	// ChatPath is the path of the completion operation.
	ChatPath = "/api/chat"

	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024

	// maxErrorBody bounds the body excerpt kept on a StatusError.
	maxErrorBody = 512
)

// Version is reported in the User-Agent header. Set by the cli package.
var Version = "dev"

var (
	// ErrResponseTooLarge is returned when the body exceeds MaxResponseSize.
	ErrResponseTooLarge = errors.New("response exceeded maximum size")

	// ErrMalformedResponse is returned when a 2xx body is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("completion service error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("completion service error (HTTP %d)", e.Status)
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the request body of POST /api/chat.
type ChatRequest struct {
	Conversation []model.Turn `json:"conversation"`
}

// ChatResponse is the response body of POST /api/chat.
type ChatResponse struct {
	Result string `json:"result"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the completion service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. No request timeout
// is set; a call lasts until the transport gives up or ctx is done.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// WithTimeout sets an overall per-request timeout. Zero disables it.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Complete sends the conversation and returns the decoded response. An empty
// Result is not an error; deciding what to show for it is up to the caller.
func (c *Client) Complete(ctx context.Context, conversation []model.Turn) (*ChatResponse, error) {
	if conversation == nil {
		conversation = []model.Turn{}
	}
	bodyBytes, err := json.Marshal(ChatRequest{Conversation: conversation})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ChatPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "chatline/"+Version)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("path", ChatPath).Int("turns", len(conversation)).Msg("request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Bodies are never logged; they carry the user's conversation.
	log.Debug().
		Str("method", req.Method).
		Str("path", ChatPath).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("turns", len(conversation)).
		Msg("completion request")

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: excerpt(body)}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &chatResp, nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, MaxResponseSize)
	}
	return body, nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
