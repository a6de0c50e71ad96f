// Package rewrite redirects document identifiers in language-server results.
//
// Results dispatched against a notebook's shadow document come back carrying
// the shadow's identity. Before such a result reaches any UI consumer, every
// embedded identifier equal to the shadow identity is replaced with the
// owning facade's identity: the facade's native file URI for navigation
// operations (so jump-to-location focuses the already-open facade view), or
// a freshly minted synthetic identifier for everything else (so generic
// preview UIs render facade content instead of raw shadow source).
//
// Two entry points cover both halves of the transport seam: Rewrite walks an
// already-decoded result tree and returns a deep copy, and RewriteRaw edits
// an undecoded JSON payload in place using gjson/sjson so notification
// fan-out avoids a decode/encode round trip.
package rewrite
