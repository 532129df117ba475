package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"pinboard/pkg/apiresult"
	"pinboard/pkg/requestcontext"
)

// Recover converts a panicking handler into a SERVER_ERROR envelope so no
// fault crosses into the transport layer. The full context goes to the log;
// the client only sees the generic message.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered in handler",
						"request_id", requestcontext.RequestID(r.Context()),
						"path", r.URL.Path,
						"method", r.Method,
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					apiresult.WriteFailure(w, apiresult.ServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
