package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bought-tab/internal/middleware"
	"bought-tab/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID,
	})
}

// writeServiceError maps domain errors to HTTP statuses; anything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeProductNotFound:
		status = http.StatusNotFound
	case model.ErrCodeContentTooLarge:
		status = http.StatusRequestEntityTooLarge
	case model.ErrCodePlatformInactive:
		status = http.StatusServiceUnavailable
	case model.ErrCodeInvalidViewerToken:
		status = http.StatusUnauthorized
	}

	writeError(w, r, status, domainErr.Code, domainErr.Message, logger)
}

// PlatformInactive answers every request with the platform-inactive error.
func PlatformInactive(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeServiceError(w, r, model.ErrPlatformInactive, logger)
	}
}
