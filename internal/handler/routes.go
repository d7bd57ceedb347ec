package handler

import (
	"net/http"

	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/service"
	"github.com/msomdec/quill-blog/internal/view"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	posts *service.PostService,
	comments *service.CommentService,
	contact *service.ContactService,
	users domain.UserRepository,
	authLimiter *service.TokenBucket,
	cookieSecure bool,
	homePageSize int,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	blogHandler := NewBlogHandler(posts, comments, users, homePageSize)
	adminHandler := NewAdminHandler(posts)
	contactHandler := NewContactHandler(contact)

	optional := func(h http.HandlerFunc) http.Handler { return OptionalAuth(auth, h) }
	admin := func(h http.HandlerFunc) http.Handler { return RequireAdmin(auth, h) }
	limited := func(h http.HandlerFunc) http.Handler { return RateLimit(authLimiter, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	mux.Handle("GET /{$}", optional(blogHandler.HandleHome))
	mux.Handle("GET /posts/more", optional(blogHandler.HandleMorePosts))
	mux.Handle("GET /about", optional(blogHandler.HandleAbout))
	mux.Handle("GET /contact", optional(contactHandler.HandleContactPage))
	mux.Handle("POST /contact", optional(contactHandler.HandleSubmit))

	mux.Handle("GET /register", optional(authHandler.HandleRegisterPage))
	mux.Handle("POST /register", limited(authHandler.HandleRegister))
	mux.Handle("GET /login", optional(authHandler.HandleLoginPage))
	mux.Handle("POST /login", limited(authHandler.HandleLogin))
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)

	// Comment posting checks the user itself so anonymous readers get a
	// flash on the login page instead of a bare redirect.
	mux.Handle("GET /post/{id}", optional(blogHandler.HandleViewPost))
	mux.Handle("POST /post/{id}", optional(blogHandler.HandleComment))

	mux.Handle("GET /new-post", admin(adminHandler.HandleNewPage))
	mux.Handle("POST /new-post", admin(adminHandler.HandleCreate))
	mux.Handle("GET /edit-post/{id}", admin(adminHandler.HandleEditPage))
	mux.Handle("POST /edit-post/{id}", admin(adminHandler.HandleUpdate))
	mux.Handle("GET /delete-post/{id}", admin(adminHandler.HandleDeletePage))
	mux.Handle("POST /delete-post/{id}", admin(adminHandler.HandleDelete))

	mux.Handle("/", optional(notFound))
}
