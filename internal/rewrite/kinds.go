package rewrite

// Protocol methods the bridge distinguishes when choosing a rewrite target.
const (
	MethodDefinition     = "textDocument/definition"
	MethodDeclaration    = "textDocument/declaration"
	MethodImplementation = "textDocument/implementation"
	MethodTypeDefinition = "textDocument/typeDefinition"
	MethodDocumentSymbol = "textDocument/documentSymbol"
	MethodReferences     = "textDocument/references"
)

// TargetMode selects which facade identity replaces the shadow identity.
type TargetMode int

const (
	// TargetSynthetic substitutes a minted synthetic identifier so generic
	// preview UIs render facade content. This is the default for every
	// method without an explicit table entry.
	TargetSynthetic TargetMode = iota

	// TargetNative substitutes the facade's real file URI so "open or
	// focus" logic finds the already-open facade view.
	TargetNative
)

// String returns the mode name.
func (m TargetMode) String() string {
	switch m {
	case TargetNative:
		return "native"
	case TargetSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// ParseTargetMode parses a mode name. Unknown names report ok=false.
func ParseTargetMode(s string) (TargetMode, bool) {
	switch s {
	case "native":
		return TargetNative, true
	case "synthetic":
		return TargetSynthetic, true
	default:
		return 0, false
	}
}

// defaultTargets maps navigation-style methods to the native facade
// identity. Adding a navigation method is a one-line table edit.
func defaultTargets() map[string]TargetMode {
	return map[string]TargetMode{
		MethodDefinition:     TargetNative,
		MethodDeclaration:    TargetNative,
		MethodImplementation: TargetNative,
		MethodTypeDefinition: TargetNative,
		MethodDocumentSymbol: TargetNative,
	}
}
