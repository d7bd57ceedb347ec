package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/msomdec/quill-blog/internal/domain"
)

func newPost(authorID int64, title string) *domain.Post {
	return &domain.Post{
		AuthorID: authorID,
		Title:    title,
		Subtitle: "Subtitle for " + title,
		Body:     "<p>Body of " + title + "</p>",
		ImgURL:   "https://example.com/" + title + ".png",
	}
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "admin@example.com", "Admin")
	repo := db.Posts()
	ctx := context.Background()

	post := newPost(author.ID, "first")
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected post ID to be set")
	}
	if post.Date.IsZero() {
		t.Fatal("expected Date to default to creation time")
	}

	got, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "first" || got.AuthorID != author.ID || got.Body != post.Body {
		t.Fatalf("unexpected post: %+v", got)
	}

	byTitle, err := repo.GetByTitle(ctx, "first")
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if byTitle.ID != post.ID {
		t.Fatalf("expected id %d, got %d", post.ID, byTitle.ID)
	}
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Posts().GetByID(context.Background(), 12345)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepository_DuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "admin@example.com", "Admin")
	repo := db.Posts()
	ctx := context.Background()

	if err := repo.Create(ctx, newPost(author.ID, "same")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, newPost(author.ID, "same"))
	if !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}

	other := newPost(author.ID, "other")
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create other: %v", err)
	}
	other.Title = "same"
	if err := repo.Update(ctx, other); !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle on update, got %v", err)
	}
}

func TestPostRepository_ListRecent(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "admin@example.com", "Admin")
	repo := db.Posts()
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		if err := repo.Create(ctx, newPost(author.ID, fmt.Sprintf("post-%d", i))); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	posts, err := repo.ListRecent(ctx, 5, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(posts) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(posts))
	}
	for i, p := range posts {
		want := fmt.Sprintf("post-%d", 7-i)
		if p.Title != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, p.Title)
		}
	}

	rest, err := repo.ListRecent(ctx, 5, 5)
	if err != nil {
		t.Fatalf("ListRecent offset: %v", err)
	}
	if len(rest) != 2 || rest[0].Title != "post-2" || rest[1].Title != "post-1" {
		t.Fatalf("unexpected second page: %+v", rest)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7 posts, got %d", count)
	}
}

func TestPostRepository_Update(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "admin@example.com", "Admin")
	repo := db.Posts()
	ctx := context.Background()

	post := newPost(author.ID, "draft")
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Create: %v", err)
	}
	originalDate := post.Date

	post.Title = "final"
	post.Subtitle = "new subtitle"
	post.Body = "<p>new body</p>"
	post.ImgURL = "https://example.com/new.png"
	if err := repo.Update(ctx, post); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "final" || got.Subtitle != "new subtitle" || got.Body != "<p>new body</p>" || got.ImgURL != "https://example.com/new.png" {
		t.Fatalf("fields not updated: %+v", got)
	}
	if !got.Date.Equal(originalDate.UTC()) {
		t.Fatalf("expected date to be preserved, got %v want %v", got.Date, originalDate)
	}

	missing := newPost(author.ID, "ghost")
	missing.ID = 99999
	if err := repo.Update(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepository_DeleteCascadesComments(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "admin@example.com", "Admin")
	ctx := context.Background()

	post := newPost(author.ID, "doomed")
	if err := db.Posts().Create(ctx, post); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.Comments().Create(ctx, &domain.Comment{PostID: post.ID, AuthorID: author.ID, Text: "bye"}); err != nil {
		t.Fatalf("Create comment: %v", err)
	}

	if err := db.Posts().Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := db.Posts().GetByID(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	count, err := db.Comments().CountByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("CountByPost: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected comments to cascade, %d remain", count)
	}

	if err := db.Posts().Delete(ctx, post.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPostRepository_ListRecent_OrdersByDate(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "admin@example.com", "Admin")
	repo := db.Posts()
	ctx := context.Background()

	current := newPost(author.ID, "current")
	if err := repo.Create(ctx, current); err != nil {
		t.Fatalf("Create current: %v", err)
	}

	archived := newPost(author.ID, "archived")
	archived.Date = time.Date(2019, time.June, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.Create(ctx, archived); err != nil {
		t.Fatalf("Create archived: %v", err)
	}

	posts, err := repo.ListRecent(ctx, 5, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "current" || posts[1].Title != "archived" {
		t.Fatalf("expected backdated post last, got %+v", posts)
	}
	if !posts[1].Date.Equal(archived.Date) {
		t.Fatalf("expected date %v, got %v", archived.Date, posts[1].Date)
	}
}
