package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default run file name.
const DefaultConfigFile = ".feedfold.yml"

// File is the YAML run file. Every field is optional; flags override
// whatever the file sets.
type File struct {
	// Title is the merged feed's title.
	Title string `yaml:"title,omitempty"`

	// Description is the merged feed's description.
	Description string `yaml:"description,omitempty"`

	// Link is the merged feed's site URL.
	Link string `yaml:"link,omitempty"`

	// Inputs lists the source feed URLs.
	Inputs []string `yaml:"inputs,omitempty"`

	// Output is the merged Atom document's target path.
	Output string `yaml:"output,omitempty"`

	// Filters is the ordered filter rule chain.
	Filters []Rule `yaml:"filters,omitempty"`
}

// LoadFile loads a run file from the given path. A missing file
// returns ErrConfigNotFound so callers can decide whether that is
// fatal (explicit path) or fine (default search).
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("read run file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse run file %s: %w", path, err)
	}

	return &f, nil
}

// FindFile resolves the run file path: the explicit path when given,
// otherwise DefaultConfigFile in the current directory, then in the
// XDG config directory. Returns ErrConfigNotFound when nothing exists.
func FindFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", ErrConfigNotFound
		}
		return explicit, nil
	}

	for _, candidate := range []string{
		DefaultConfigFile,
		filepath.Join(XDGConfigDir(), DefaultConfigFile),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", ErrConfigNotFound
}

// Apply copies the file's values into the config without clobbering
// anything already set by a flag.
func (c *Config) Apply(f *File) {
	if c.Title == DefaultTitle && f.Title != "" {
		c.Title = f.Title
	}
	if c.Description == "" {
		c.Description = f.Description
	}
	if c.Link == "" {
		c.Link = f.Link
	}
	if len(c.Inputs) == 0 {
		c.Inputs = f.Inputs
	}
	if c.Output == "" {
		c.Output = f.Output
	}
	if len(c.Rules) == 0 {
		c.Rules = f.Filters
	}
}

// SampleFile is the commented run file written by `feedfold init`.
const SampleFile = `# feedfold run file
#
# Every fetched item passes the filter chain in order; later rules
# override earlier ones whenever they express an opinion.

title: Merged feed
description: Everything I read, in one place
link: https://example.com/

inputs:
  - https://blog.golang.org/feed.atom
  - https://lwn.net/headlines/rss

output: merged.xml

filters:
  - type: exclude-title
    value: sponsored
  - type: exclude-older-than
    value: 720h
`

// WriteSample writes the sample run file to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(SampleFile), 0600); err != nil {
		return fmt.Errorf("write sample run file: %w", err)
	}
	return nil
}
