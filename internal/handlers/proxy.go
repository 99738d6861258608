package handlers

import (
	"context"
	"io"
	"net/http"

	"mikulas-chat/internal/middleware"
	"mikulas-chat/internal/models"
)

type relayer interface {
	Forward(ctx context.Context, body []byte, requestID string) (models.ChatResponse, error)
}

type ProxyHandler struct {
	relay relayer
}

func NewProxyHandler(relay relayer) *ProxyHandler {
	return &ProxyHandler{relay: relay}
}

func (h *ProxyHandler) Chat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	resp, err := h.relay.Forward(r.Context(), body, middleware.GetRequestID(r.Context()))
	if err != nil {
		handleRelayError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
