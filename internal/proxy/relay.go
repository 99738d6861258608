package proxy

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

	"github.com/rs/zerolog"

	"mikulas-chat/internal/models"
)

// ChatPath is the endpoint path requests are forwarded to.
const ChatPath = "/api/chat"

const DefaultTimeout = 30 * time.Second

// RequestError means the caller's body was unusable; nothing was forwarded.
type RequestError struct{ Message string }

func (e *RequestError) Error() string { return e.Message }

// RelayError covers every way forwarding can fail. StatusCode is the backend's
// status when one was received, 0 otherwise.
type RelayError struct {
	StatusCode int
	Cause      error
}

func (e *RelayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend responded with http %d", e.StatusCode)
	}
	if e.Cause != nil {
		return "backend unreachable: " + e.Cause.Error()
	}
	return "backend unreachable"
}

func (e *RelayError) Unwrap() error { return e.Cause }

type Relay struct {
	httpClient *http.Client
	baseURL    func() string
	timeout    time.Duration
}

// NewRelay creates a relay. baseURL is resolved on every call.
func NewRelay(httpClient *http.Client, baseURL func() string, timeout time.Duration) *Relay {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Relay{httpClient: httpClient, baseURL: baseURL, timeout: timeout}
}

// NormalizeBaseURL strips surrounding whitespace and every trailing slash.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// TargetURL is the chat address for a configured base address.
func TargetURL(base string) string {
	return NormalizeBaseURL(base) + ChatPath
}

type backendReply struct {
	Reply *string `json:"reply"`
}

// Forward checks that body carries a message, sends it unchanged to the
// backend and returns the backend's reply untouched.
func (r *Relay) Forward(ctx context.Context, body []byte, requestID string) (models.ChatResponse, error) {
	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Message == "" {
		return models.ChatResponse{}, &RequestError{Message: "Message is required"}
	}

	var base string
	if r.baseURL != nil {
		base = NormalizeBaseURL(r.baseURL())
	}
	if base == "" {
		return models.ChatResponse{}, &RelayError{Cause: errors.New("backend URL not configured")}
	}
	target := TargetURL(base)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return models.ChatResponse{}, &RelayError{Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return models.ChatResponse{}, &RelayError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		zerolog.Ctx(ctx).Warn().
			Int("backend_status", resp.StatusCode).
			Str("target", target).
			Msg("backend returned non-success status")
		return models.ChatResponse{}, &RelayError{StatusCode: resp.StatusCode}
	}

	var out backendReply
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.ChatResponse{}, &RelayError{Cause: fmt.Errorf("failed to decode backend reply: %w", err)}
	}
	if out.Reply == nil {
		return models.ChatResponse{}, &RelayError{Cause: errors.New("backend reply has no reply field")}
	}

	return models.ChatResponse{Reply: *out.Reply}, nil
}
