// Package preview owns the lifecycle of read-only views opened under
// synthetic identifiers.
//
// When a picker or preview UI asks the editor to load content for an
// "nb://" identifier, the Manager resolves it to an open notebook and fills
// the view with the facade's current live text, so line numbers and content
// match what the picker displays. Views it opens are scratch, unlisted, and
// locked read-only once populated.
//
// The Manager also guarantees a user can never get stuck inside one of
// these views: a synthetic view surfacing in a normal (non-floating) window
// is swapped for the real facade view and disposed, and stale previews left
// behind by a picker session are swept up on the next scheduling turn after
// the facade regains focus. Every disposal is best-effort; a view already
// gone by the time we reach it is ignored.
package preview
