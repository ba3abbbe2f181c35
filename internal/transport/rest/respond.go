// Package rest implements the HTTP API surface.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps a service error to an HTTP status. Unrecognized errors are
// logged and masked as 500.
func handleError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrStorageConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, "quota exceeded")
	case errors.Is(err, domain.ErrAnalysisRejected):
		writeError(w, http.StatusUnprocessableEntity, "not a valid word for this language pair")
	case errors.Is(err, domain.ErrAnalysisUnavailable):
		writeError(w, http.StatusServiceUnavailable, "analysis temporarily unavailable")
	case errors.Is(err, domain.ErrIncompleteAnalysis):
		writeError(w, http.StatusBadGateway, "analysis produced an incomplete result")
	default:
		log.ErrorContext(ctx, "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
