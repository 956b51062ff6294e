// Package middleware provides the HTTP middleware stack: request IDs,
// panic recovery, request logging, and rate limiting.
package middleware

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error envelope returned by the server.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and human-readable
// message for an error response.
type ErrorDetail struct {
	// Code is a stable machine-readable error code (e.g., "NOT_FOUND").
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// RequestID correlates the response with server logs, if known.
	RequestID string `json:"request_id,omitempty"`
}

// WriteError writes a JSON error envelope with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: GetRequestID(r.Context()),
		},
	}
	_ = json.NewEncoder(w).Encode(resp)
}
