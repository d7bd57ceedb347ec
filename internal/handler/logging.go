package handler

import (
	"context"
	"log/slog"
)

// ContextLogHandler is a slog.Handler that adds the request id carried by
// the context to every record logged with one of the *Context methods.
type ContextLogHandler struct {
	slog.Handler
}

// NewContextLogHandler wraps h.
func NewContextLogHandler(h slog.Handler) *ContextLogHandler {
	return &ContextLogHandler{Handler: h}
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ContextLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if user := UserFromContext(ctx); user != nil {
		r.AddAttrs(slog.Int64("user_id", user.ID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextLogHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextLogHandler) WithGroup(name string) slog.Handler {
	return &ContextLogHandler{Handler: h.Handler.WithGroup(name)}
}
