package board

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore keeps posts in process memory with monotonically assigned
// IDs.
type InMemoryStore struct {
	mu     sync.RWMutex
	posts  []Post
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

// Create assigns the next ID and stores the post, returning the stored copy.
func (s *InMemoryStore) Create(_ context.Context, post Post) Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextID
	s.nextID++
	s.posts = append(s.posts, post)
	return post
}

// List returns all posts, newest first.
func (s *InMemoryStore) List(_ context.Context) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// FindByID returns the post with the given ID.
func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Count reports the number of stored posts.
func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
