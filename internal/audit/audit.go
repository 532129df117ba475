// Package audit records security-relevant actions (logins, logouts, post
// creation) to a pluggable sink. Events are transport-agnostic so sinks can
// fan out to memory or a broker.
package audit

import (
	"context"
	"time"
)

// Action classifies an audit event.
type Action string

const (
	ActionLogin       Action = "login"
	ActionLoginFailed Action = "login_failed"
	ActionLogout      Action = "logout"
	ActionPostCreated Action = "post_created"
)

// Event is a single audit record.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Username  string    `json:"username,omitempty"`
	ClientIP  string    `json:"clientIp,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	At        time.Time `json:"at"`
}

// Sink receives completed events. Implementations must tolerate concurrent
// writers.
type Sink interface {
	Write(ctx context.Context, event Event) error
	Close() error
}
