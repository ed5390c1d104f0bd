// Package model defines the core data structures used throughout feedfold.
//
// This package contains the following main types:
//   - Item: One syndication entry flowing through the pipeline
//   - Link: An outbound link tagged with its relationship type
//   - RunStats: Per-run counters collected by the pipeline stages
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (fetch, filter, dedup, output, archive) need
// these types, so centralizing them prevents import cycles.
package model
