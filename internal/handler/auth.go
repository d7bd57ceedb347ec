package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/metrics"
	"github.com/msomdec/quill-blog/internal/service"
	"github.com/msomdec/quill-blog/internal/view"
)

const (
	msgAlreadyRegistered = "You've already signed up with that email, log in instead!"
	msgInvalidLogin      = "Invalid email or password."
	msgLoginToComment    = "You need to login or register to comment."
	msgUnexpected        = "An unexpected error occurred. Please try again."
)

// AuthHandler handles registration, login and logout forms.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleRegisterPage renders the registration form.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.RegisterPage(nav, "", "", "")
	})
}

// HandleRegister creates an account and logs it in.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	displayName := r.FormValue("display_name")
	password := r.FormValue("password")

	user, err := h.auth.Register(r.Context(), email, displayName, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			metrics.AuthEvents.WithLabelValues("register", "duplicate").Inc()
			setFlash(w, msgAlreadyRegistered)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, domain.ErrDuplicateDisplayName):
			render(w, r, http.StatusUnprocessableEntity, func(nav view.Nav) templ.Component {
				return view.RegisterPage(nav, email, displayName, "That name is already taken.")
			})
		case errors.Is(err, domain.ErrInvalidInput):
			render(w, r, http.StatusUnprocessableEntity, func(nav view.Nav) templ.Component {
				return view.RegisterPage(nav, email, displayName, userMessage(err, domain.ErrInvalidInput))
			})
		default:
			slog.ErrorContext(r.Context(), "register user", "error", err)
			render(w, r, http.StatusInternalServerError, func(nav view.Nav) templ.Component {
				return view.RegisterPage(nav, email, displayName, msgUnexpected)
			})
		}
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "issue token after register", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	metrics.AuthEvents.WithLabelValues("register", "success").Inc()
	slog.InfoContext(r.Context(), "user registered", "user_id", user.ID, "admin", user.IsAdmin)
	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.LoginPage(nav, "", "")
	})
}

// HandleLogin checks credentials and sets the auth cookie.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
			render(w, r, http.StatusUnauthorized, func(nav view.Nav) templ.Component {
				return view.LoginPage(nav, email, msgInvalidLogin)
			})
			return
		}
		slog.ErrorContext(r.Context(), "login user", "error", err)
		render(w, r, http.StatusInternalServerError, func(nav view.Nav) templ.Component {
			return view.LoginPage(nav, email, msgUnexpected)
		})
		return
	}

	metrics.AuthEvents.WithLabelValues("login", "success").Inc()
	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.TokenTTL.Seconds()),
	})
}
