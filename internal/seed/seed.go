// Package seed fills a database with demo content and imports posts from
// JSON exports. These helpers are intended for development and for
// migrating an existing blog.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/service"
)

// Options controls a demo seed run.
type Options struct {
	Posts         int
	AdminEmail    string
	AdminName     string
	AdminPassword string
	// MaxDays spreads post dates over this many days back from now.
	MaxDays int
	// Seed makes the generated content reproducible when non-zero.
	Seed int64
}

// Result reports what a seed or import run wrote.
type Result struct {
	Admin    *domain.User
	Created  int
	Skipped  int
	Comments int
}

// Seeder writes demo content through the services, so seeded posts are
// validated and sanitized exactly like ones written from the site.
type Seeder struct {
	auth     *service.AuthService
	posts    *service.PostService
	comments *service.CommentService
	logger   *slog.Logger
}

// NewSeeder creates a Seeder. A nil logger falls back to slog.Default.
func NewSeeder(auth *service.AuthService, posts *service.PostService, comments *service.CommentService, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{auth: auth, posts: posts, comments: comments, logger: logger}
}

// Run ensures the admin account exists and creates opts.Posts demo posts,
// each with a few comments from the admin.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Posts < 0 {
		return nil, fmt.Errorf("%w: post count must not be negative", domain.ErrInvalidInput)
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}

	faker := gofakeit.New(opts.Seed)

	admin, err := s.EnsureAdmin(ctx, opts.AdminEmail, opts.AdminName, opts.AdminPassword)
	if err != nil {
		return nil, err
	}

	res := &Result{Admin: admin}
	now := time.Now().UTC()
	for range opts.Posts {
		in := buildPost(faker, now, opts.MaxDays)

		post, err := s.posts.Create(ctx, admin, in)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateTitle) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("create demo post: %w", err)
		}
		res.Created++

		for range faker.IntRange(0, 3) {
			text := "<p>" + faker.Sentence(faker.IntRange(6, 16)) + "</p>"
			if _, err := s.comments.Create(ctx, admin, post.ID, text); err != nil {
				return res, fmt.Errorf("create demo comment: %w", err)
			}
			res.Comments++
		}
	}

	s.logger.InfoContext(ctx, "seed complete", "admin", admin.Email, "posts", res.Created, "skipped", res.Skipped, "comments", res.Comments)
	return res, nil
}

// EnsureAdmin returns the account for email, registering it if needed and
// granting admin rights if it lacks them.
func (s *Seeder) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: admin email is required", domain.ErrInvalidInput)
	}
	if name == "" {
		name = "Admin"
	}

	// Without a password the account must already exist.
	if password != "" {
		user, err := s.auth.Register(ctx, email, name, password)
		if err != nil && !errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, fmt.Errorf("register admin: %w", err)
		}
		if user != nil && user.IsAdmin {
			return user, nil
		}
	}

	user, err := s.auth.SetAdmin(ctx, email, true)
	if err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	return user, nil
}

func buildPost(faker *gofakeit.Faker, now time.Time, maxDays int) service.PostInput {
	var body strings.Builder
	for range faker.IntRange(2, 5) {
		body.WriteString("<p>")
		body.WriteString(faker.Paragraph(1, faker.IntRange(3, 6), 12, " "))
		body.WriteString("</p>")
	}

	back := time.Duration(faker.IntRange(0, maxDays*24*60)) * time.Minute

	return service.PostInput{
		Title:    strings.TrimSuffix(faker.Sentence(faker.IntRange(3, 7)), "."),
		Subtitle: faker.HipsterSentence(faker.IntRange(5, 10)),
		Body:     body.String(),
		ImgURL:   fmt.Sprintf("https://picsum.photos/seed/%s/1200/600", faker.UUID()),
		Date:     now.Add(-back),
	}
}
