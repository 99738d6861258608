package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"mikulas-chat/internal/middleware"
	"mikulas-chat/internal/models"
	"mikulas-chat/internal/proxy"
	"mikulas-chat/internal/services"
)

// maxBodyBytes caps request bodies; a valid message is far smaller.
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, detail string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Detail:    detail,
		Code:      code,
		RequestID: middleware.GetRequestID(r.Context()),
	}
}

func errorRespWithFields(code, detail string, fields map[string]string, r *http.Request) models.ErrorResponse {
	resp := errorResp(code, detail, r)
	resp.Fields = fields
	return resp
}

// handleServiceError maps chat service errors onto status codes.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusUnprocessableEntity, errorRespWithFields("VALIDATION_ERROR", "Validation failed: "+e.Error(), e.Fields, r))
	case *services.ConfigurationError:
		hlog.FromRequest(r).Error().Str("variable", e.Variable).Msg("service misconfigured")
		writeJSON(w, http.StatusInternalServerError, errorResp("CONFIGURATION_ERROR", e.Error(), r))
	case *services.RateLimitedError:
		writeJSON(w, http.StatusTooManyRequests, errorResp("RATE_LIMITED", e.Message, r))
	case *services.UnreachableError:
		writeJSON(w, http.StatusServiceUnavailable, errorResp("SERVICE_UNAVAILABLE", e.Message, r))
	case *services.ProviderError:
		writeJSON(w, http.StatusInternalServerError, errorResp("PROVIDER_ERROR", e.Message, r))
	case *services.UnknownError:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", e.Error(), r))
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("unhandled service error")
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Internal server error", r))
	}
}

// handleRelayError maps proxy errors onto status codes. Every relay failure
// is reported the same way regardless of what the backend said.
func handleRelayError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *proxy.RequestError
	if errors.As(err, &reqErr) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", reqErr.Message, r))
		return
	}

	hlog.FromRequest(r).Error().Err(err).Msg("relay failed")
	writeJSON(w, http.StatusInternalServerError, errorResp("RELAY_FAILED", "Failed to reach backend", r))
}
