package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/msomdec/quill-blog/internal/domain"
	"github.com/msomdec/quill-blog/internal/service"
)

func TestContactService_Submit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	contact := service.NewContactService(logger)

	err := contact.Submit(context.Background(), service.ContactMessage{
		Name:    "Ada",
		Email:   "Ada@Example.com",
		Phone:   "555-0100",
		Message: "Hello <b>there</b>",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"contact message received", "ada@example.com", "Hello there"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %q, got %s", want, out)
		}
	}
}

func TestContactService_Submit_Invalid(t *testing.T) {
	contact := service.NewContactService(slog.New(slog.DiscardHandler))

	tests := []struct {
		name string
		msg  service.ContactMessage
	}{
		{"missing name", service.ContactMessage{Email: "a@b.com", Message: "hi"}},
		{"missing message", service.ContactMessage{Name: "A", Email: "a@b.com"}},
		{"bad email", service.ContactMessage{Name: "A", Email: "nope", Message: "hi"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := contact.Submit(context.Background(), tc.msg); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
