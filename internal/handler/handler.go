// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pantrychef/pantrychef/internal/handler/dto"
	"github.com/pantrychef/pantrychef/internal/model"
	"github.com/pantrychef/pantrychef/internal/recipe"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Error codes returned in dto.ErrorResponse.
const (
	CodeInvalidJSON      = "INVALID_JSON"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeUpstreamError    = "UPSTREAM_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
)

// Handler serves the informational and fallback routes.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello reports the service name and version.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from PantryChef!",
		"version": Version,
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, CodeNotFound, "Resource not found")
}

// MethodNotAllowed handles known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encode failure only truncates the body.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
// A body cut off by http.MaxBytesReader gets a 413 instead.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "Invalid request body")
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP responses.
// upstreamMessage is the generic text shown when the recipe service fails.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error, upstreamMessage string) {
	var validationErr *model.ValidationError
	var upstreamErr *recipe.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, CodeValidationError, validationErr.Error())
	case errors.As(err, &upstreamErr):
		logger.Warn("upstream_error",
			"op", upstreamErr.Op,
			"status_code", upstreamErr.StatusCode,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, CodeUpstreamError, upstreamMessage)
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "An internal error occurred")
	}
}
