// Package identity holds the registered principals of the board and the
// credential lookup backing login.
package identity

import "context"

// User is a registered principal. The password is an opaque credential
// compared byte for byte; it never leaves the process.
type User struct {
	ID       int64
	Username string
	Password string
}

// Public is the serializable view of a user.
type Public struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Public strips the credential for wire use.
func (u User) Public() Public {
	return Public{ID: u.ID, Username: u.Username}
}

// Store provides read access to registered users. A miss is an ordinary
// result, not an error: callers decide how to surface it.
type Store interface {
	FindByCredentials(ctx context.Context, username, password string) (User, bool)
	FindByID(ctx context.Context, id int64) (User, bool)
	Count(ctx context.Context) int
}
