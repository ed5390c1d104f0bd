// Package fetch retrieves every configured syndication source and
// flattens the parsed entries into one item stream.
//
// All sources are fetched concurrently, one goroutine per URL, sharing
// a single connection-pooled HTTP client. The join is fail-fast and
// all-or-nothing: the first source that errors (network failure, HTTP
// error status, unparsable document) aborts the whole fetch with that
// error and the results of the other sources are discarded. There is no
// per-source isolation, retry, or partial result.
//
// Parsing is two-stage: a document is first handed to the plain RSS
// reader (which also covers the RDF-based RSS 1.0 legacy format), and
// only when that reader rejects it does the universal auto-detecting
// reader take over for Atom and JSON Feed documents.
package fetch
