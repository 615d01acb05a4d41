package slogutil

import (
	"context"
	"errors"
	"log/slog"
)

// TeeHandler fans records out to several handlers, typically the terminal
// and a debug log file at different levels.
type TeeHandler struct {
	targets []slog.Handler
}

// NewTeeHandler creates a handler that forwards to every target.
func NewTeeHandler(targets ...slog.Handler) *TeeHandler {
	return &TeeHandler{targets: targets}
}

// NewTeeLogger creates a logger over a TeeHandler.
func NewTeeLogger(targets ...slog.Handler) *slog.Logger {
	return slog.New(NewTeeHandler(targets...))
}

// Enabled reports true when any target wants the record.
func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.targets {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every enabled target. Each target applies
// its own level gate; one failing target does not stop the others.
func (t *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.targets {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(t.targets))
	for i, h := range t.targets {
		next[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{targets: next}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(t.targets))
	for i, h := range t.targets {
		next[i] = h.WithGroup(name)
	}
	return &TeeHandler{targets: next}
}
