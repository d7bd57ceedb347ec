package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/service"
	"github.com/msomdec/quill-blog/internal/view"
)

// ContactHandler serves the contact form.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// HandleContactPage renders an empty contact form.
func (h *ContactHandler) HandleContactPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.ContactPage(nav, view.ContactForm{}, false, "")
	})
}

// HandleSubmit records the message and shows a confirmation.
// POST /contact
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	form := view.ContactForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}

	err := h.contact.Submit(r.Context(), service.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	})
	if err != nil {
		status, msg := http.StatusUnprocessableEntity, userMessage(err, domain.ErrInvalidInput)
		if !errors.Is(err, domain.ErrInvalidInput) {
			slog.ErrorContext(r.Context(), "submit contact message", "error", err)
			status, msg = http.StatusInternalServerError, msgUnexpected
		}
		render(w, r, status, func(nav view.Nav) templ.Component {
			return view.ContactPage(nav, form, false, msg)
		})
		return
	}

	render(w, r, http.StatusOK, func(nav view.Nav) templ.Component {
		return view.ContactPage(nav, view.ContactForm{}, true, "")
	})
}
