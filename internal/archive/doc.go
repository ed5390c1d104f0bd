// Package archive provides optional SQLite-based storage of completed
// merge runs.
//
// When a database directory is configured, each run records its
// metadata, counters, and the final merged item sequence. The archive
// is append-only history for the `feedfold history` subcommand; the
// pipeline never reads from it, so every run still recomputes the
// merged feed from scratch.
package archive
