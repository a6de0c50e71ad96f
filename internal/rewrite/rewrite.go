package rewrite

import (
	"github.com/dshills/nbshadow/internal/identity"
	"github.com/dshills/nbshadow/internal/notebook"
)

// Identifier field names recognized during the walk: "this location" and
// "the target of a link" per the protocol's two location conventions.
const (
	uriField       = "uri"
	targetURIField = "targetUri"
)

// Policy resolves a target mode for a method ahead of the built-in table.
// Returning ok=false falls through to the table.
type Policy func(method string) (TargetMode, bool)

// Rewriter substitutes facade identities for shadow identities in protocol
// results.
type Rewriter struct {
	codec   *identity.Codec
	targets map[string]TargetMode
	policy  Policy
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithTarget sets or overrides the target mode for a method.
func WithTarget(method string, mode TargetMode) Option {
	return func(rw *Rewriter) {
		rw.targets[method] = mode
	}
}

// WithPolicy installs a policy consulted before the built-in method table.
func WithPolicy(policy Policy) Option {
	return func(rw *Rewriter) {
		rw.policy = policy
	}
}

// NewRewriter creates a rewriter that mints synthetic identities through
// codec.
func NewRewriter(codec *identity.Codec, opts ...Option) *Rewriter {
	rw := &Rewriter{
		codec:   codec,
		targets: defaultTargets(),
	}

	for _, opt := range opts {
		opt(rw)
	}

	return rw
}

// TargetFor returns the target mode used for a method.
func (rw *Rewriter) TargetFor(method string) TargetMode {
	if rw.policy != nil {
		if mode, ok := rw.policy(method); ok {
			return mode
		}
	}
	if mode, ok := rw.targets[method]; ok {
		return mode
	}
	return TargetSynthetic
}

// Rewrite returns a deep copy of result in which every identifier field
// equal to the shadow document's identity is replaced with the facade's
// target identity for the given method. The input value is never mutated.
// Non-composite results are returned unchanged.
func (rw *Rewriter) Rewrite(result any, st *notebook.State, method string) any {
	if st == nil {
		return result
	}

	switch result.(type) {
	case map[string]any, []any:
	default:
		return result
	}

	shadowURI := FilePathToURI(st.ShadowPath)
	target := rw.targetIdentity(st, method)

	// Hierarchical outline nodes omit identity per node by convention;
	// downstream consumers require one on every node.
	synthesize := method == MethodDocumentSymbol

	return rw.walk(result, shadowURI, target, synthesize)
}

// targetIdentity computes the replacement identifier for the facade.
func (rw *Rewriter) targetIdentity(st *notebook.State, method string) string {
	if rw.TargetFor(method) == TargetNative {
		return FilePathToURI(st.FacadePath)
	}
	return rw.codec.Mint(st.FacadePath)
}

func (rw *Rewriter) walk(v any, shadowURI, target string, synthesize bool) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			if k == uriField || k == targetURIField {
				if s, ok := child.(string); ok && s == shadowURI {
					out[k] = target
					continue
				}
			}
			out[k] = rw.walk(child, shadowURI, target, synthesize)
		}

		if synthesize {
			if _, hasRange := out["range"]; hasRange {
				if _, hasURI := out[uriField]; !hasURI {
					out[uriField] = target
				}
			}
		}

		return out

	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = rw.walk(child, shadowURI, target, synthesize)
		}
		return out

	default:
		return v
	}
}
