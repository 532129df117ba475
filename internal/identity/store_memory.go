package identity

import (
	"context"
	"sync"
)

// InMemoryStore keeps users in process memory, matching the rest of the
// storage layer. Reads vastly outnumber writes, hence the RWMutex.
type InMemoryStore struct {
	mu     sync.RWMutex
	users  []User
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

// Add registers a user under the next monotonic ID. Used for seed data at
// bootstrap; there is no public registration path.
func (s *InMemoryStore) Add(username, password string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := User{ID: s.nextID, Username: username, Password: password}
	s.nextID++
	s.users = append(s.users, u)
	return u
}

// FindByCredentials matches username and password exactly: case-sensitive,
// no trimming, no normalization. Callers validate input before calling.
func (s *InMemoryStore) FindByCredentials(_ context.Context, username, password string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}

// FindByID returns the user with the given ID.
func (s *InMemoryStore) FindByID(_ context.Context, id int64) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Count reports the number of registered users.
func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
