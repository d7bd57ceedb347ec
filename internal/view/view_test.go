package view_test

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/view"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func summary(id int64, title string) view.PostSummary {
	return view.PostSummary{
		Post: domain.Post{
			ID:       id,
			Title:    title,
			Subtitle: "Sub " + title,
			Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			Body:     "<p>Body of " + title + "</p>",
			ImgURL:   "https://images.example.com/a.jpg",
		},
		AuthorName: "Author",
	}
}

func TestHomePage(t *testing.T) {
	out := render(t, view.HomePage(view.Nav{DisplayName: "Ada", IsAdmin: true},
		[]view.PostSummary{summary(2, "Second"), summary(1, "First")}, 5, true))

	for _, want := range []string{`href="/post/2"`, "Second", "First", "March 5, 2024", "Ada", `href="/new-post"`, `id="load-more"`, "offset=5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected home page to contain %q", want)
		}
	}
	if strings.Index(out, "Second") > strings.Index(out, "First") {
		t.Error("expected posts in the given order")
	}
}

func TestHomePage_Anonymous(t *testing.T) {
	out := render(t, view.HomePage(view.Nav{}, nil, 5, false))

	if !strings.Contains(out, `href="/login"`) {
		t.Error("expected login link for anonymous visitor")
	}
	if strings.Contains(out, "/new-post") {
		t.Error("expected no new post link for anonymous visitor")
	}
	if strings.Contains(out, "Older Posts") {
		t.Error("expected no load-more button without more posts")
	}
}

func TestLoadMoreFragment(t *testing.T) {
	out := render(t, view.LoadMoreFragment(10, true))
	if !strings.Contains(out, `id="load-more"`) || !strings.Contains(out, "offset=10") {
		t.Fatalf("unexpected fragment: %s", out)
	}

	out = render(t, view.LoadMoreFragment(10, false))
	if !strings.Contains(out, `id="load-more"`) || strings.Contains(out, "button") {
		t.Fatalf("expected empty placeholder, got: %s", out)
	}
}

func TestPostListFragment(t *testing.T) {
	quiet := summary(7, "Seventh")
	busy := summary(8, "Eighth")
	busy.CommentCount = 3

	out := render(t, view.PostListFragment([]view.PostSummary{busy, quiet}))
	if !strings.Contains(out, `href="/post/7"`) || strings.Contains(out, "<html") {
		t.Fatalf("expected bare post cards, got: %s", out)
	}
	if !strings.Contains(out, "3 comments") {
		t.Fatalf("expected comment count, got: %s", out)
	}
	if strings.Contains(out, "0 comment") {
		t.Fatalf("expected no count for posts without comments, got: %s", out)
	}
}

func TestPostPage(t *testing.T) {
	comments := []view.CommentView{{
		Comment:     domain.Comment{ID: 1, PostID: 3, Text: "<b>great</b>"},
		AuthorName:  "Reader",
		AuthorEmail: "test@example.com",
	}}

	anon := render(t, view.PostPage(view.Nav{}, summary(3, "Third"), comments, "", ""))
	if !strings.Contains(anon, "<p>Body of Third</p>") {
		t.Error("expected body rendered as HTML")
	}
	if !strings.Contains(anon, "<b>great</b>") {
		t.Error("expected comment rendered as HTML")
	}
	if !strings.Contains(anon, "gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0") {
		t.Error("expected gravatar for comment author")
	}
	if strings.Contains(anon, `name="comment_text"`) {
		t.Error("expected no comment form for anonymous visitor")
	}
	if strings.Contains(anon, "/edit-post/3") {
		t.Error("expected no admin actions for anonymous visitor")
	}

	admin := render(t, view.PostPage(view.Nav{DisplayName: "Owner", IsAdmin: true}, summary(3, "Third"), nil, "draft text", "comment cannot be empty"))
	for _, want := range []string{`name="comment_text"`, "draft text", "comment cannot be empty", "/edit-post/3", "/delete-post/3"} {
		if !strings.Contains(admin, want) {
			t.Errorf("expected admin post page to contain %q", want)
		}
	}
}

func TestFormsEscapeValues(t *testing.T) {
	out := render(t, view.PostFormPage(view.Nav{DisplayName: "Owner", IsAdmin: true}, "New Post", "/new-post",
		view.PostForm{Title: `"><script>x</script>`}, ""))
	if strings.Contains(out, "<script>x</script>") {
		t.Fatal("expected form values to be escaped")
	}

	out = render(t, view.LoginPage(view.Nav{}, "a@b.com", "Invalid email or password."))
	if !strings.Contains(out, "Invalid email or password.") || !strings.Contains(out, `value="a@b.com"`) {
		t.Fatalf("unexpected login page: %s", out)
	}
}

func TestDeleteConfirmPage(t *testing.T) {
	out := render(t, view.DeleteConfirmPage(view.Nav{DisplayName: "Owner", IsAdmin: true}, &domain.Post{ID: 9, Title: "Doomed"}))
	if !strings.Contains(out, `action="/delete-post/9"`) || !strings.Contains(out, `method="post"`) {
		t.Fatalf("expected POST form to /delete-post/9, got: %s", out)
	}
}

func TestErrorPage(t *testing.T) {
	out := render(t, view.ErrorPage(view.Nav{DisplayName: "Reader", Flash: "Heads up"}, 403, "Forbidden", "Only the blog's administrators can do that."))
	if !strings.Contains(out, "403") || !strings.Contains(out, "administrators") {
		t.Fatalf("unexpected error page: %s", out)
	}
	if !strings.Contains(out, "Reader") || !strings.Contains(out, "Log Out") || strings.Contains(out, "Log In") {
		t.Fatalf("expected signed-in chrome on error page: %s", out)
	}
	if !strings.Contains(out, "Heads up") {
		t.Fatalf("expected flash on error page: %s", out)
	}
}

func TestContactPage(t *testing.T) {
	out := render(t, view.ContactPage(view.Nav{}, view.ContactForm{}, true, ""))
	if !strings.Contains(out, "Successfully sent your message") || strings.Contains(out, "<form") {
		t.Fatalf("unexpected sent page: %s", out)
	}
}

func TestGravatar(t *testing.T) {
	got := view.Gravatar("  Test@Example.com ")
	if !strings.HasPrefix(got, "https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0") {
		t.Fatalf("unexpected gravatar URL: %s", got)
	}
}

func TestStatic(t *testing.T) {
	if _, err := fs.Stat(view.Static(), "style.css"); err != nil {
		t.Fatalf("expected style.css in static assets: %v", err)
	}
}
