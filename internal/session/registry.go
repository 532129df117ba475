// Package session owns the bearer token lifecycle: issue, resolve, revoke.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"pinboard/internal/identity"
	"pinboard/pkg/requestcontext"
)

// Session binds an opaque bearer token to a user for as long as the token is
// active. Device and IPAddress are display metadata captured at login.
type Session struct {
	Token     string
	UserID    int64
	IssuedAt  time.Time
	Device    string
	IPAddress string
}

// Metadata carries the client attributes recorded on a new session.
type Metadata struct {
	Device    string
	IPAddress string
}

// Registry is the process-wide session table. All methods are safe for
// concurrent use; each operation is a single map access under one lock, so a
// resolve never observes a half-written session. The only transition a token
// makes is issued to revoked; revoked tokens are never reactivated.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Issue generates a fresh token for user and records the session. Tokens mix
// 128 bits from crypto/rand with the user ID and issue time, so they do not
// repeat within or across process runs even under coarse clocks. The only
// error path is the entropy source failing, which callers treat as fatal for
// the request.
func (r *Registry) Issue(ctx context.Context, user identity.User, meta Metadata) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	now := requestcontext.Now(ctx)
	token := fmt.Sprintf("token_%d_%s_%d", user.ID, hex.EncodeToString(buf), now.UnixMilli())

	r.mu.Lock()
	r.sessions[token] = Session{
		Token:     token,
		UserID:    user.ID,
		IssuedAt:  now,
		Device:    meta.Device,
		IPAddress: meta.IPAddress,
	}
	r.mu.Unlock()
	return token, nil
}

// Resolve returns the active session for token. Revoked, unknown and
// malformed tokens are indistinguishable: all report false. Resolve has no
// side effects.
func (r *Registry) Resolve(token string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}

// Revoke removes the session if it is active and reports whether it was.
// Revoking an absent token is a no-op, not an error.
func (r *Registry) Revoke(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return false
	}
	delete(r.sessions, token)
	return true
}

// ActiveFor lists the user's active sessions, newest first.
func (r *Registry) ActiveFor(userID int64) []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out
}

// Count reports the number of active sessions across all users.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
