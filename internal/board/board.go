// Package board implements the bulletin board: posts created and read by
// authenticated users.
package board

import (
	"context"
	"time"
)

// Post is a board entry. AuthorUsername is denormalized at creation time so
// reads need no identity lookup.
type Post struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Store persists posts. A miss on FindByID is an ordinary result, not an
// error.
type Store interface {
	Create(ctx context.Context, post Post) Post
	List(ctx context.Context) []Post
	FindByID(ctx context.Context, id int64) (Post, bool)
	Count(ctx context.Context) int
}
