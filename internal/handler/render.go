package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/msomdec/quill-blog/internal/view"
)

const flashCookieName = "flash"

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash returns the pending flash message, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	msg, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}

// navFor builds the page chrome for the current request, consuming any flash.
func navFor(w http.ResponseWriter, r *http.Request) view.Nav {
	nav := view.Nav{Flash: popFlash(w, r)}
	if user := UserFromContext(r.Context()); user != nil {
		nav.DisplayName = user.DisplayName
		nav.IsAdmin = user.IsAdmin
	}
	return nav
}

// render writes status and the page built for the request's nav. The nav is
// resolved first because consuming the flash sets a cookie.
func render(w http.ResponseWriter, r *http.Request, status int, page func(view.Nav) templ.Component) {
	nav := navFor(w, r)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := page(nav).Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render page", "error", err)
	}
}

// userMessage strips the sentinel prefix from a wrapped error so only the
// human readable detail reaches the page.
func userMessage(err, sentinel error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, sentinel.Error()+": "); ok {
		return detail
	}
	return msg
}
