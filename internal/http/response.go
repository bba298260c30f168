// Package http provides the JSON API server and handler implementations.
//
// Every endpoint responds with the same envelope so clients can branch on a
// single shape: {"success": bool, "data": ..., "error": "..."}.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"campusbudget/internal/ledger"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeData sends a successful envelope with the given payload.
func writeData(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, apiResponse{Success: true, Data: data})
}

// writeError sends a failed envelope with a client-facing message.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, apiResponse{Success: false, Error: message})
}

// writeStoreError maps store errors to status codes. Unknown errors become an
// opaque 500 so internals never leak to clients.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ledger.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	slog.ErrorContext(r.Context(), "Request failed",
		"method", r.Method,
		"url", r.URL.Path,
		"error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
