// Package auth implements the login, logout and session-introspection flows
// on top of the identity store and the session registry.
package auth

import (
	"context"
	"log/slog"
	"time"

	"pinboard/internal/audit"
	"pinboard/internal/identity"
	"pinboard/internal/platform/metrics"
	"pinboard/internal/session"
	"pinboard/pkg/requestcontext"
)

// Service owns the session lifecycle as seen by the API. The registry is
// mutated here and nowhere else.
type Service struct {
	users    identity.Store
	sessions *session.Registry
	auditor  *audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(users identity.Store, sessions *session.Registry, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		auditor:  auditor,
		metrics:  m,
		logger:   logger,
	}
}

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	User  identity.User
	Token string
}

// Login validates the credential pair and opens a new session. ok=false means
// the pair matched no user; callers report LOGIN_FAILED without revealing
// which field was wrong. err is reserved for token issuance failure.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, bool, error) {
	user, found := s.users.FindByCredentials(ctx, username, password)
	if !found {
		s.metrics.LoginFailures.Inc()
		s.auditor.Record(ctx, audit.ActionLoginFailed, username)
		return LoginResult{}, false, nil
	}

	meta := session.Metadata{
		Device:    session.DeviceSummary(requestcontext.UserAgent(ctx)),
		IPAddress: requestcontext.ClientIP(ctx),
	}
	token, err := s.sessions.Issue(ctx, user, meta)
	if err != nil {
		return LoginResult{}, false, err
	}

	s.metrics.Logins.Inc()
	s.metrics.ActiveSessions.Inc()
	s.auditor.Record(ctx, audit.ActionLogin, user.Username)
	return LoginResult{User: user, Token: token}, true, nil
}

// Logout revokes the token's session. It reports false when the token was
// already revoked or never existed, so repeated logouts surface the
// "already logged out" signal instead of failing silently.
func (s *Service) Logout(ctx context.Context, token string) bool {
	sess, ok := s.sessions.Resolve(token)
	if !ok {
		return false
	}
	if !s.sessions.Revoke(token) {
		// Lost the race to a concurrent logout of the same token.
		return false
	}
	s.metrics.ActiveSessions.Dec()

	username := ""
	if user, found := s.users.FindByID(ctx, sess.UserID); found {
		username = user.Username
	}
	s.auditor.Record(ctx, audit.ActionLogout, username)
	return true
}

// Authenticate resolves a bearer token to its user. Unknown, revoked and
// malformed tokens all report false; so does a token bound to a user that no
// longer exists.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.User, bool) {
	if token == "" {
		return identity.User{}, false
	}
	sess, ok := s.sessions.Resolve(token)
	if !ok {
		return identity.User{}, false
	}
	user, ok := s.users.FindByID(ctx, sess.UserID)
	if !ok {
		return identity.User{}, false
	}
	return user, true
}

// SessionSummary is the client view of an active session. The token itself is
// never echoed back.
type SessionSummary struct {
	Device    string    `json:"device"`
	IPAddress string    `json:"ipAddress,omitempty"`
	IssuedAt  time.Time `json:"issuedAt"`
	Current   bool      `json:"isCurrent"`
}

// Sessions lists the user's active sessions, newest first, marking the one
// that made the call.
func (s *Service) Sessions(_ context.Context, userID int64, currentToken string) []SessionSummary {
	active := s.sessions.ActiveFor(userID)
	out := make([]SessionSummary, 0, len(active))
	for _, sess := range active {
		out = append(out, SessionSummary{
			Device:    sess.Device,
			IPAddress: sess.IPAddress,
			IssuedAt:  sess.IssuedAt,
			Current:   sess.Token == currentToken,
		})
	}
	return out
}
