package slogutil

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// LintHandler renders records as single text lines:
//
//	2026-01-02T15:04:05Z [warn] tokenize failed | file=a.py err=syntax
//
// Attributes added through WithAttrs are rendered once and reused for
// every record; group names become dotted key prefixes.
type LintHandler struct {
	out    *syncWriter
	level  slog.Leveler
	prefix string
	preset []byte
}

// syncWriter serializes writes from handler clones sharing one destination.
type syncWriter struct {
	sync.Mutex
	w io.Writer
}

// NewLintHandler creates a handler writing to w. Nil opts or opts.Level
// means info.
func NewLintHandler(w io.Writer, opts *slog.HandlerOptions) *LintHandler {
	h := &LintHandler{
		out:   &syncWriter{w: w},
		level: slog.LevelInfo,
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *LintHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LintHandler) Handle(_ context.Context, r slog.Record) error {
	line := make([]byte, 0, 128)
	if !r.Time.IsZero() {
		line = r.Time.UTC().AppendFormat(line, time.RFC3339)
		line = append(line, ' ')
	}
	line = append(line, '[')
	line = append(line, levelName(r.Level)...)
	line = append(line, "] "...)
	line = append(line, r.Message...)

	if len(h.preset) > 0 || r.NumAttrs() > 0 {
		line = append(line, " |"...)
		line = append(line, h.preset...)
		r.Attrs(func(a slog.Attr) bool {
			line = appendAttr(line, h.prefix, a)
			return true
		})
	}
	line = append(line, '\n')

	h.out.Lock()
	defer h.out.Unlock()
	_, err := h.out.w.Write(line)
	return err
}

func (h *LintHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.preset = make([]byte, len(h.preset), len(h.preset)+16*len(attrs))
	copy(clone.preset, h.preset)
	for _, a := range attrs {
		clone.preset = appendAttr(clone.preset, h.prefix, a)
	}
	return &clone
}

func (h *LintHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func appendAttr(dst []byte, prefix string, a slog.Attr) []byte {
	if a.Key == "" {
		return dst
	}
	v := a.Value.Resolve()
	dst = append(dst, ' ')
	dst = append(dst, prefix...)
	dst = append(dst, a.Key...)
	dst = append(dst, '=')
	switch v.Kind() {
	case slog.KindString:
		return append(dst, v.String()...)
	case slog.KindInt64:
		return strconv.AppendInt(dst, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(dst, v.Uint64(), 10)
	case slog.KindBool:
		return strconv.AppendBool(dst, v.Bool())
	case slog.KindDuration:
		return append(dst, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().UTC().AppendFormat(dst, time.RFC3339)
	default:
		return append(dst, v.String()...)
	}
}

// levelName maps a level to its bracket label. Levels between the standard
// four take the label of the nearest one below.
func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "error"
	case l >= slog.LevelWarn:
		return "warn"
	case l >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
