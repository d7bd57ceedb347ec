package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/sanitize"
)

// ContactMessage is a visitor's note from the contact page.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactService accepts contact form submissions. Messages are logged,
// not stored.
type ContactService struct {
	logger *slog.Logger
}

// NewContactService creates a ContactService writing to logger, or to the
// default logger when nil.
func NewContactService(logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{logger: logger}
}

// Submit validates msg and records it.
func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	msg.Name = strings.TrimSpace(sanitize.Text(msg.Name))
	msg.Email = NormalizeEmail(msg.Email)
	msg.Phone = strings.TrimSpace(sanitize.Text(msg.Phone))
	msg.Message = strings.TrimSpace(sanitize.Text(msg.Message))

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("%w: name, email, and message are required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return fmt.Errorf("%w: %q is not a valid email address", domain.ErrInvalidInput, msg.Email)
	}

	s.logger.InfoContext(ctx, "contact message received",
		"name", msg.Name,
		"email", msg.Email,
		"phone", msg.Phone,
		"message", msg.Message,
	)
	return nil
}
