// Package pipeline wires one merge run: fetch, filter, dedup, merge,
// write, executed strictly in that order.
//
// Each stage is a Step that mutates the shared Run state. Control flow
// is linear and synchronous; the only concurrency lives inside the
// fetch step, behind its own fail-fast join. The first step error
// aborts the run with that error and nothing is written — the run
// either completes with a fully ordered, deduplicated feed or produces
// no artifact at all.
package pipeline
