package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mikulas-chat/internal/models"
	"mikulas-chat/internal/proxy"
	"mikulas-chat/internal/services"
)

type stubChatService struct {
	resp   models.ChatResponse
	err    error
	called bool
}

func (s *stubChatService) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	s.called = true
	return s.resp, s.err
}

type stubRelay struct {
	resp models.ChatResponse
	err  error
	body []byte
}

func (s *stubRelay) Forward(ctx context.Context, body []byte, requestID string) (models.ChatResponse, error) {
	s.body = body
	return s.resp, s.err
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", ct)
	}
	var body models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return body
}

// ─── Chat Handler Tests ───

func TestChatHandler_Success(t *testing.T) {
	svc := &stubChatService{resp: models.ChatResponse{Reply: "Ho ho ho!"}}
	h := NewChatHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var body map[string]any
	json.NewDecoder(rr.Body).Decode(&body)
	if len(body) != 1 || body["reply"] != "Ho ho ho!" {
		t.Errorf("Expected only the reply field, got %v", body)
	}
}

func TestChatHandler_MalformedBody(t *testing.T) {
	for _, raw := range []string{"", "{", `{"message": 5}`, "[]"} {
		svc := &stubChatService{}
		h := NewChatHandler(svc)

		rr := httptest.NewRecorder()
		h.Chat(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(raw)))

		if rr.Code != http.StatusUnprocessableEntity {
			t.Errorf("Body %q: expected 422, got %d", raw, rr.Code)
		}
		if svc.called {
			t.Errorf("Body %q: service must not be called", raw)
		}
	}
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		detail string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"message": "must be at least 1 character"}},
			http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed: message must be at least 1 character"},
		{"configuration", &services.ConfigurationError{Variable: "OPENAI_API_KEY"},
			http.StatusInternalServerError, "CONFIGURATION_ERROR", "OPENAI_API_KEY not configured"},
		{"rate limited", &services.RateLimitedError{Message: "Rate limit exceeded. Please try again later."},
			http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded. Please try again later."},
		{"unreachable", &services.UnreachableError{Message: "Unable to connect to the LLM provider"},
			http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Unable to connect to the LLM provider"},
		{"provider", &services.ProviderError{Message: "LLM provider error: openai: http 500: boom"},
			http.StatusInternalServerError, "PROVIDER_ERROR", "LLM provider error: openai: http 500: boom"},
		{"unknown", &services.UnknownError{Cause: errors.New("secret internals")},
			http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error while generating a reply"},
		{"unclassified", errors.New("raw"),
			http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChatHandler(&stubChatService{err: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{"message":"x"}`)))
			rr := httptest.NewRecorder()
			h.Chat(rr, req)

			if rr.Code != tc.status {
				t.Errorf("Expected %d, got %d", tc.status, rr.Code)
			}
			body := decodeError(t, rr)
			if body.Code != tc.code {
				t.Errorf("Expected code %q, got %q", tc.code, body.Code)
			}
			if body.Detail != tc.detail {
				t.Errorf("Expected detail %q, got %q", tc.detail, body.Detail)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("Expected health body, got %s", got)
	}
}

// ─── Proxy Handler Tests ───

func TestProxyHandler_PassesBodyThrough(t *testing.T) {
	relay := &stubRelay{resp: models.ChatResponse{Reply: "Ho ho ho! A bike..."}}
	h := NewProxyHandler(relay)

	raw := `{"message": "I want a new bike"}`
	rr := httptest.NewRecorder()
	h.Chat(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(raw)))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if string(relay.body) != raw {
		t.Errorf("Expected raw body handed to relay, got %q", relay.body)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"reply":"Ho ho ho! A bike..."}` {
		t.Errorf("Unexpected body %s", got)
	}
}

func TestProxyHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"missing message", &proxy.RequestError{Message: "Message is required"}, http.StatusBadRequest, "Message is required"},
		{"backend failure", &proxy.RelayError{StatusCode: http.StatusServiceUnavailable}, http.StatusInternalServerError, "Failed to reach backend"},
		{"network failure", &proxy.RelayError{Cause: errors.New("dial tcp: refused")}, http.StatusInternalServerError, "Failed to reach backend"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewProxyHandler(&stubRelay{err: tc.err})

			rr := httptest.NewRecorder()
			h.Chat(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`)))

			if rr.Code != tc.status {
				t.Errorf("Expected %d, got %d", tc.status, rr.Code)
			}
			if body := decodeError(t, rr); body.Detail != tc.detail {
				t.Errorf("Expected detail %q, got %q", tc.detail, body.Detail)
			}
		})
	}
}
