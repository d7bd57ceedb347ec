package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/metrics"
	"github.com/msomdec/quill-blog/internal/service"
	"github.com/msomdec/quill-blog/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// BlogHandler serves the public pages: the post list, single posts and
// their comments.
type BlogHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	users    domain.UserRepository
	pageSize int
}

// NewBlogHandler creates a new BlogHandler listing pageSize posts at a time.
func NewBlogHandler(posts *service.PostService, comments *service.CommentService, users domain.UserRepository, pageSize int) *BlogHandler {
	return &BlogHandler{posts: posts, comments: comments, users: users, pageSize: pageSize}
}

// HandleHome renders the newest posts.
func (h *BlogHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	page, err := h.posts.ListRecent(r.Context(), h.pageSize, 0)
	if err != nil {
		slog.ErrorContext(r.Context(), "list posts for home", "error", err)
		serverError(w, r)
		return
	}

	summaries := h.summarize(r.Context(), page.Posts)
	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.HomePage(nav, summaries, page.NextOffset, page.HasMore)
	})
}

// HandleMorePosts appends the next page of posts to the home list via SSE.
func (h *BlogHandler) HandleMorePosts(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	page, err := h.posts.ListRecent(r.Context(), h.pageSize, offset)
	if err != nil {
		slog.ErrorContext(r.Context(), "load more posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	summaries := h.summarize(r.Context(), page.Posts)

	sse := datastar.NewSSE(w, r)

	// Append the older posts to the list.
	sse.PatchElementTempl(
		view.PostListFragment(summaries),
		datastar.WithSelectorID("post-list"),
		datastar.WithModeAppend(),
	)

	// Replace the load-more button (moves the offset or removes it).
	sse.PatchElementTempl(
		view.LoadMoreFragment(page.NextOffset, page.HasMore),
	)
}

// HandleAbout renders the static about page.
func (h *BlogHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.AboutPage)
}

// HandleViewPost renders a post with its comments.
// GET /post/{id}
func (h *BlogHandler) HandleViewPost(w http.ResponseWriter, r *http.Request) {
	h.renderPost(w, r, http.StatusOK, "", "")
}

// HandleComment adds a comment by the logged in user.
// POST /post/{id}
func (h *BlogHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		setFlash(w, msgLoginToComment)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	text := r.FormValue("comment_text")
	if _, err := h.comments.Create(r.Context(), user, id, text); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, r)
		case errors.Is(err, domain.ErrInvalidInput):
			h.renderPost(w, r, http.StatusUnprocessableEntity, text, userMessage(err, domain.ErrInvalidInput))
		default:
			slog.ErrorContext(r.Context(), "create comment", "error", err)
			serverError(w, r)
		}
		return
	}

	metrics.CommentsCreated.Inc()
	http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (h *BlogHandler) renderPost(w http.ResponseWriter, r *http.Request, status int, draft, errMsg string) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "get post", "error", err)
		serverError(w, r)
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "list comments", "error", err)
		serverError(w, r)
		return
	}

	ids := []int64{post.AuthorID}
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors := h.buildAuthors(r.Context(), ids)

	summary := view.PostSummary{Post: *post, AuthorName: authorName(authors, post.AuthorID)}
	views := make([]view.CommentView, 0, len(comments))
	for _, c := range comments {
		cv := view.CommentView{Comment: c, AuthorName: authorName(authors, c.AuthorID)}
		if a := authors[c.AuthorID]; a != nil {
			cv.AuthorEmail = a.Email
		}
		views = append(views, cv)
	}

	render(w, r, status, func(nav view.Nav) templ.Component {
		return view.PostPage(nav, summary, views, draft, errMsg)
	})
}

func (h *BlogHandler) summarize(ctx context.Context, posts []domain.Post) []view.PostSummary {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	authors := h.buildAuthors(ctx, ids)

	summaries := make([]view.PostSummary, 0, len(posts))
	for _, p := range posts {
		count, err := h.comments.CountByPost(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "count comments", "post_id", p.ID, "error", err)
		}
		summaries = append(summaries, view.PostSummary{Post: p, AuthorName: authorName(authors, p.AuthorID), CommentCount: count})
	}
	return summaries
}

// buildAuthors loads each distinct user id once.
func (h *BlogHandler) buildAuthors(ctx context.Context, ids []int64) map[int64]*domain.User {
	authors := make(map[int64]*domain.User)
	for _, id := range ids {
		if _, seen := authors[id]; seen {
			continue
		}
		u, err := h.users.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				slog.ErrorContext(ctx, "get author", "user_id", id, "error", err)
			}
			authors[id] = nil
			continue
		}
		authors[id] = u
	}
	return authors
}

func authorName(authors map[int64]*domain.User, id int64) string {
	if u := authors[id]; u != nil {
		return u.DisplayName
	}
	return "Unknown"
}

// parseID reads the {id} path value. Malformed ids are treated as missing.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, func(nav view.Nav) templ.Component {
		return view.ErrorPage(nav, http.StatusNotFound, "Not Found", "That page doesn't exist.")
	})
}

func serverError(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusInternalServerError, func(nav view.Nav) templ.Component {
		return view.ErrorPage(nav, http.StatusInternalServerError, "Something went wrong", msgUnexpected)
	})
}
