// Package identity mints and resolves synthetic document identifiers.
//
// A synthetic identifier is a short URI of the form "nb://<display-name>"
// that stands in for a notebook facade document when generic UI surfaces
// (pickers, preview panes) need an identifier to render content under. The
// display name is the final path segment of the facade's canonical location;
// the full location is recovered through an injectable Registry, with a
// fallback resolver consulted on registry misses.
//
// The scheme token is deliberately short so picker UIs showing identifiers
// next to line numbers stay readable. Correctness is recovered through the
// Registry rather than by embedding the full path in the identifier.
//
// Display names are not globally unique: two documents sharing a filename
// overwrite each other's Registry entry, last writer wins. The fallback
// resolver (a scan of open notebooks) makes this lossy behavior recoverable
// in practice.
package identity
