// Package middleware holds the HTTP middleware chain: session gate, request
// identity, client metadata, request time, tracing and panic recovery.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"pinboard/internal/identity"
	"pinboard/pkg/apiresult"
	"pinboard/pkg/requestcontext"
)

// SessionAuthenticator resolves a bearer token to the user it belongs to.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (identity.User, bool)
}

// RequireSession guards a route subtree behind an active session. A missing,
// malformed, unknown or revoked token all produce the same NOT_AUTHENTICATED
// rejection so callers cannot probe which case they hit. On success the
// principal and the raw token are attached to the request context.
func RequireSession(sessions SessionAuthenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing bearer token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				apiresult.WriteFailure(w, apiresult.NotAuthenticated)
				return
			}

			user, ok := sessions.Authenticate(ctx, token)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - unresolvable token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				apiresult.WriteFailure(w, apiresult.NotAuthenticated)
				return
			}

			ctx = requestcontext.WithPrincipal(ctx, requestcontext.Principal{
				ID:       user.ID,
				Username: user.Username,
			})
			ctx = requestcontext.WithSessionToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
