package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/metrics"
	"github.com/msomdec/quill-blog/internal/service"
	"github.com/msomdec/quill-blog/internal/view"
)

// AdminHandler handles creating, editing and deleting posts. Every route is
// mounted behind RequireAdmin.
type AdminHandler struct {
	posts *service.PostService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(posts *service.PostService) *AdminHandler {
	return &AdminHandler{posts: posts}
}

// HandleNewPage renders an empty post form.
func (h *AdminHandler) HandleNewPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.PostFormPage(nav, "New Post", "/new-post", view.PostForm{}, "")
	})
}

// HandleCreate stores a new post.
// POST /new-post
func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form := postFormFromRequest(r)

	post, err := h.posts.Create(r.Context(), UserFromContext(r.Context()), postInput(form))
	if err != nil {
		h.handleWriteError(w, r, err, "New Post", "/new-post", form)
		return
	}

	metrics.PostsWritten.WithLabelValues("create").Inc()
	slog.InfoContext(r.Context(), "post created", "post_id", post.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleEditPage renders the form prefilled with the post's current values.
// GET /edit-post/{id}
func (h *AdminHandler) HandleEditPage(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	form := view.PostForm{Title: post.Title, Subtitle: post.Subtitle, ImgURL: post.ImgURL, Body: post.Body}
	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.PostFormPage(nav, "Edit Post", editAction(post.ID), form, "")
	})
}

// HandleUpdate overwrites the post's editable fields.
// POST /edit-post/{id}
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}

	form := postFormFromRequest(r)

	post, err := h.posts.Update(r.Context(), UserFromContext(r.Context()), id, postInput(form))
	if err != nil {
		h.handleWriteError(w, r, err, "Edit Post", editAction(id), form)
		return
	}

	metrics.PostsWritten.WithLabelValues("update").Inc()
	http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
}

// HandleDeletePage asks for confirmation. It never deletes anything.
// GET /delete-post/{id}
func (h *AdminHandler) HandleDeletePage(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.DeleteConfirmPage(nav, post)
	})
}

// HandleDelete removes the post and its comments.
// POST /delete-post/{id}
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return
	}

	if err := h.posts.Delete(r.Context(), UserFromContext(r.Context()), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, r)
		case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
			forbidden(w, r)
		default:
			slog.ErrorContext(r.Context(), "delete post", "error", err)
			serverError(w, r)
		}
		return
	}

	metrics.PostsWritten.WithLabelValues("delete").Inc()
	slog.InfoContext(r.Context(), "post deleted", "post_id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AdminHandler) loadPost(w http.ResponseWriter, r *http.Request) (*domain.Post, bool) {
	id, ok := parseID(r)
	if !ok {
		notFound(w, r)
		return nil, false
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, r)
			return nil, false
		}
		slog.ErrorContext(r.Context(), "get post", "error", err)
		serverError(w, r)
		return nil, false
	}
	return post, true
}

// handleWriteError maps a create or update failure to a response. Input
// problems re-render the form with the submitted values.
func (h *AdminHandler) handleWriteError(w http.ResponseWriter, r *http.Request, err error, heading, action string, form view.PostForm) {
	var msg string
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFound(w, r)
		return
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
		forbidden(w, r)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		msg = userMessage(err, domain.ErrInvalidInput)
	case errors.Is(err, domain.ErrDuplicateTitle):
		msg = userMessage(err, domain.ErrDuplicateTitle)
	default:
		slog.ErrorContext(r.Context(), "save post", "error", err)
		serverError(w, r)
		return
	}

	render(w, r, http.StatusUnprocessableEntity, func(nav view.Nav) templ.Component {
		return view.PostFormPage(nav, heading, action, form, msg)
	})
}

func postFormFromRequest(r *http.Request) view.PostForm {
	return view.PostForm{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		ImgURL:   r.FormValue("img_url"),
		Body:     r.FormValue("body"),
	}
}

func postInput(form view.PostForm) service.PostInput {
	return service.PostInput{Title: form.Title, Subtitle: form.Subtitle, ImgURL: form.ImgURL, Body: form.Body}
}

func editAction(id int64) string {
	return "/edit-post/" + strconv.FormatInt(id, 10)
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusForbidden, func(nav view.Nav) templ.Component {
		return view.ErrorPage(nav, http.StatusForbidden, "Forbidden", "Only the blog's administrators can do that.")
	})
}
