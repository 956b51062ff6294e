package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/3leaps/cirrus/internal/observability"
)

// Recovery converts handler panics into 500 responses.
//
// The panic value and stack are logged; the client sees the standard
// JSON error envelope with code INTERNAL_ERROR.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				observability.CLILogger.Error("Handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Stack("stack"),
				)
				WriteError(w, r, http.StatusInternalServerError,
					"INTERNAL_ERROR", fmt.Sprintf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
