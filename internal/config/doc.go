// Package config holds the run configuration for feedfold.
//
// A run is described by a flat Config struct populated from CLI flags
// and, optionally, a YAML run file (.feedfold.yml) listing the source
// URLs, the output target, feed metadata, and the filter rule chain.
// Flags always win over the file. Configuration is passed through the
// application by value injection; nothing reads it from global state.
package config
