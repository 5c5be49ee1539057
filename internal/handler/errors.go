package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"lifeblog/internal/apperr"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// StatusFor maps an error kind onto an HTTP status code.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperr.KindUploadFailed:
		return http.StatusBadGateway
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeAppError answers with the error's status. Server-side failures are
// logged with their cause and reported with a generic message.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	message := apperr.Message(err)
	switch {
	case status == http.StatusServiceUnavailable:
		message = "service temporarily unavailable"
	case status == http.StatusBadGateway:
		message = "upload failed: " + message
	case status >= http.StatusInternalServerError:
		message = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	WriteError(w, message, status)
}
