package domain

import (
	"context"
	"time"
)

// Comment is a reader's reply on a post. Text holds sanitized HTML.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Text      string
	CreatedAt time.Time
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}
