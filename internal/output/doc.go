// Package output serializes the merged item sequence as an Atom
// document.
//
// The writer stamps the feed's last-updated element with the wall-clock
// time at write, keeps the items in the order the merge stage produced
// (ascending by publish time), and writes either to an io.Writer or to
// a file path, creating parent directories as needed. When no output
// target is configured the pipeline never calls this package.
package output
