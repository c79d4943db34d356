package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jswirski/tms-api/internal/api/shared"
	"github.com/jswirski/tms-api/internal/redact"
)

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// pathUUID extracts and parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errors.New(name + " is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid format", name)
	}
	return id, nil
}

// pathToken extracts the raw token path parameter.
func pathToken(r *http.Request) string {
	return chi.URLParam(r, "token")
}

// pathEmail extracts the email path parameter.
func pathEmail(r *http.Request) string {
	return chi.URLParam(r, "email")
}

// respondServiceError writes the mapped response for a use-case error and
// logs server-side failures with the trace ID.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"error", redact.Error(err),
			"trace_id", shared.GetTraceID(r.Context()),
			"path", r.URL.Path,
			"method", r.Method)
	}
	shared.RespondWithError(w, r, status, message)
}
