// Package log provides slog helpers for feedfold.
//
// TruncateHandler wraps any slog.Handler and caps oversized string
// attribute values before they reach the underlying handler. Feed
// summaries and content blocks routinely run to megabytes; logging
// them whole at debug level would drown the useful output.
package log
