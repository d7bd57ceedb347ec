package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/sanitize"
)

const maxTitleLength = 250

// PostInput is the editable part of a post as submitted by the form.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string

	// Date backdates a new post. It is ignored on update; zero means now.
	Date time.Time
}

// PostPage is one page of the newest-first post listing.
type PostPage struct {
	Posts      []domain.Post
	NextOffset int
	HasMore    bool
}

// PostService handles post CRUD, validation and sanitizing.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// GetByID returns a post by ID.
func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListRecent returns up to limit posts, newest first, starting at offset.
func (s *PostService) ListRecent(ctx context.Context, limit, offset int) (*PostPage, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput)
	}
	if offset < 0 {
		offset = 0
	}

	// Fetch one extra row to learn whether another page exists.
	posts, err := s.posts.ListRecent(ctx, limit+1, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	page := &PostPage{NextOffset: offset + limit}
	if len(posts) > limit {
		page.HasMore = true
		posts = posts[:limit]
	}
	page.Posts = posts
	return page, nil
}

// Create validates and stores a new post authored by actor, who must be an admin.
func (s *PostService) Create(ctx context.Context, actor *domain.User, in PostInput) (*domain.Post, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	clean, err := cleanPostInput(in)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID: actor.ID,
		Title:    clean.Title,
		Subtitle: clean.Subtitle,
		Body:     clean.Body,
		ImgURL:   clean.ImgURL,
		Date:     in.Date,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, wrapTitleError(err, "create post", clean.Title)
	}
	return post, nil
}

// Update overwrites every editable field of post id. Author and date are kept.
func (s *PostService) Update(ctx context.Context, actor *domain.User, id int64, in PostInput) (*domain.Post, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clean, err := cleanPostInput(in)
	if err != nil {
		return nil, err
	}

	post.Title = clean.Title
	post.Subtitle = clean.Subtitle
	post.Body = clean.Body
	post.ImgURL = clean.ImgURL

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, wrapTitleError(err, "update post", clean.Title)
	}
	return post, nil
}

// Delete removes post id and, through the store, its comments.
func (s *PostService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func requireAdmin(actor *domain.User) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func wrapTitleError(err error, op, title string) error {
	if errors.Is(err, domain.ErrDuplicateTitle) {
		return fmt.Errorf("%w: a post titled %q already exists", domain.ErrDuplicateTitle, title)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// cleanPostInput trims and validates the form and sanitizes the body.
func cleanPostInput(in PostInput) (PostInput, error) {
	out := PostInput{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		ImgURL:   strings.TrimSpace(in.ImgURL),
		Body:     strings.TrimSpace(sanitize.HTML(in.Body)),
	}

	if out.Title == "" {
		return out, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(out.Title) > maxTitleLength {
		return out, fmt.Errorf("%w: title must be %d characters or fewer", domain.ErrInvalidInput, maxTitleLength)
	}
	if out.Subtitle == "" {
		return out, fmt.Errorf("%w: subtitle is required", domain.ErrInvalidInput)
	}
	if len(out.Subtitle) > maxTitleLength {
		return out, fmt.Errorf("%w: subtitle must be %d characters or fewer", domain.ErrInvalidInput, maxTitleLength)
	}
	if err := ValidateImageURL(out.ImgURL); err != nil {
		return out, err
	}
	if out.Body == "" {
		return out, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}
	return out, nil
}

// ValidateImageURL accepts absolute http and https URLs only.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: image URL is required", domain.ErrInvalidInput)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: image URL must be a valid http or https URL", domain.ErrInvalidInput)
	}
	return nil
}
