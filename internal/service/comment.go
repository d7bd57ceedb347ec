package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/sanitize"
)

const maxCommentLength = 5000

// CommentService handles reader comments on posts.
type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments domain.CommentRepository, posts domain.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Create stores a sanitized comment by author on post postID.
// Anonymous authors get ErrUnauthorized and nothing is written.
func (s *CommentService) Create(ctx context.Context, author *domain.User, postID int64, text string) (*domain.Comment, error) {
	if author == nil {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	clean := strings.TrimSpace(sanitize.HTML(text))
	if clean == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", domain.ErrInvalidInput)
	}
	if len(clean) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment must be %d characters or fewer", domain.ErrInvalidInput, maxCommentLength)
	}

	comment := &domain.Comment{PostID: postID, AuthorID: author.ID, Text: clean}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns a post's comments, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

// CountByPost returns how many comments post postID has.
func (s *CommentService) CountByPost(ctx context.Context, postID int64) (int, error) {
	return s.comments.CountByPost(ctx, postID)
}
