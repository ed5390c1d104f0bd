// Package main provides the entry point for the feedfold CLI.
//
// feedfold merges several RSS/Atom sources into one deduplicated,
// filtered, chronologically ordered Atom feed.
//
// Usage:
//
//	feedfold merge https://a.example.com/feed https://b.example.com/rss -o merged.xml
//	feedfold merge -c .feedfold.yml
//
// See --help for all available options.
package main

// main is the entry point for feedfold.
func main() {
	Execute()
}
