package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the attribute value cap applied by NewLogger.
// Long enough for any URL or title, short enough to keep a debug line
// on one screen.
const DefaultMaxValueLen = 256

// truncationMarker is appended to values that were cut.
const truncationMarker = "...(truncated)"

// TruncateHandler wraps an slog.Handler and truncates string attribute
// values longer than the configured cap. All other record fields pass
// through untouched, so it composes with any underlying handler.
type TruncateHandler struct {
	// handler is the underlying slog handler receiving capped records.
	handler slog.Handler

	// maxLen is the maximum string value length in runes.
	maxLen int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given
// handler. A maxLen of zero or less falls back to DefaultMaxValueLen.
// If handler is nil, slog.Default()'s handler is used.
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given
// level. It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attribute values and passes the record on.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new TruncateHandler whose underlying handler has
// the capped attributes pre-applied.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	capped := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		capped = append(capped, h.truncateAttr(a))
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(capped), maxLen: h.maxLen}
}

// WithGroup returns a new TruncateHandler with the group applied to
// the underlying handler.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr caps one attribute, recursing into groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if utf8.RuneCountInString(s) > h.maxLen {
			runes := []rune(s)
			a.Value = slog.StringValue(string(runes[:h.maxLen]) + truncationMarker)
		}
	case slog.KindGroup:
		group := a.Value.Group()
		capped := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			capped = append(capped, h.truncateAttr(ga))
		}
		a.Value = slog.GroupValue(capped...)
	default:
	}
	return a
}

// NewLogger creates the application logger: a text handler on w behind
// a TruncateHandler. Verbose switches the level from Warn to Debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(text, DefaultMaxValueLen))
}
