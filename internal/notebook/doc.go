// Package notebook holds the per-notebook state consumed by the bridge.
//
// Each open notebook is represented by a State record: the facade document
// the user edits, the flattened shadow document a language server analyzes,
// and the ordered cell list connecting the two. The bridge treats State as
// read-only; the synchronization machinery that keeps the shadow document's
// text current lives in the embedding editor, not here.
//
// The package also implements nbformat's source-line convention (every line
// keeps its trailing newline except a final unterminated one) so cell text
// round-trips byte-for-byte through the cell list.
package notebook
