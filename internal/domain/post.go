package domain

import (
	"context"
	"time"
)

// Post is a blog entry. Body holds sanitized HTML.
type Post struct {
	ID        int64
	AuthorID  int64
	Title     string
	Subtitle  string
	Date      time.Time
	Body      string
	ImgURL    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	GetByTitle(ctx context.Context, title string) (*Post, error)
	// ListRecent returns posts newest first.
	ListRecent(ctx context.Context, limit, offset int) ([]Post, error)
	Count(ctx context.Context) (int, error)
	// Update overwrites title, subtitle, body and image URL.
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
