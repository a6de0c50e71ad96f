// Package bridge wires the document-identity bridge together.
//
// A notebook is presented to the user as a facade document while a language
// server analyzes a flattened shadow document. The bridge sits between the
// two: results coming back from the server are rewritten so every shadow
// identity points at the facade, and the preview views that generic picker
// UIs open under synthetic identifiers are populated, locked, redirected,
// and swept here.
//
// The embedding editor talks to a Bridge through four seams: RewriteResult
// (and RewriteRawResult) on every inbound server payload,
// HandleSyntheticOpen when the editor loads content for an "nb://"
// identifier, HandleSyntheticFocus when a synthetic view becomes a window's
// active view, and CleanupPreviews when a facade view regains focus.
package bridge
