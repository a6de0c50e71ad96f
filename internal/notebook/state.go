package notebook

import (
	"path/filepath"
	"strings"
	"sync"
)

// ViewID identifies an editor view. Zero means no view is attached.
type ViewID int

// CellKind distinguishes cell types.
type CellKind int

const (
	// CellCode is an executable code cell.
	CellCode CellKind = iota
	// CellMarkup is a markdown/documentation cell.
	CellMarkup
	// CellRaw is a raw passthrough cell.
	CellRaw
)

// String returns the nbformat name of the cell kind.
func (k CellKind) String() string {
	switch k {
	case CellCode:
		return "code"
	case CellMarkup:
		return "markdown"
	case CellRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Cell is one notebook cell.
type Cell struct {
	// Index is the cell's position in the notebook.
	Index int

	// Kind is the cell type.
	Kind CellKind

	// Language is the cell's source language tag.
	Language string

	// Source holds the cell text in nbformat line convention: every line
	// keeps its trailing newline except a final unterminated one.
	Source []string
}

// Text returns the cell's source as a single string.
func (c *Cell) Text() string {
	return JoinSource(c.Source)
}

// State describes one open notebook. The bridge reads it and never writes.
type State struct {
	// FacadePath is the canonical absolute location of the facade document.
	FacadePath string

	// FacadeView is the live facade view handle, zero when detached.
	FacadeView ViewID

	// ShadowPath is the canonical absolute location of the shadow document.
	ShadowPath string

	// ShadowLanguage is the language tag declared for the shadow document.
	ShadowLanguage string

	// Cells is the ordered cell list.
	Cells []Cell
}

// DisplayName returns the facade's final path segment.
func (s *State) DisplayName() string {
	return filepath.Base(s.FacadePath)
}

// Registry tracks open notebooks by facade canonical location.
//
// It implements identity.FallbackResolver so synthetic identifiers remain
// parseable even when the identity registry has lost an entry: any open
// notebook whose facade filename matches the display name resolves it.
type Registry struct {
	mu    sync.RWMutex
	open  map[string]*State
	order []string
}

// NewRegistry creates an empty notebook registry.
func NewRegistry() *Registry {
	return &Registry{
		open: make(map[string]*State),
	}
}

// Add registers an open notebook, replacing any record for the same facade
// location.
func (r *Registry) Add(st *State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.open[st.FacadePath]; !exists {
		r.order = append(r.order, st.FacadePath)
	}
	r.open[st.FacadePath] = st
}

// Remove drops the record for a facade location.
func (r *Registry) Remove(facadePath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.open[facadePath]; !exists {
		return
	}
	delete(r.open, facadePath)
	for i, p := range r.order {
		if p == facadePath {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the state for a facade canonical location.
func (r *Registry) Get(facadePath string) (*State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.open[facadePath]
	return st, ok
}

// Each calls fn for every open notebook in registration order until fn
// returns false.
func (r *Registry) Each(fn func(*State) bool) {
	r.mu.RLock()
	states := make([]*State, 0, len(r.order))
	for _, p := range r.order {
		if st, ok := r.open[p]; ok {
			states = append(states, st)
		}
	}
	r.mu.RUnlock()

	for _, st := range states {
		if !fn(st) {
			return
		}
	}
}

// Len returns the number of open notebooks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.open)
}

// ResolveDisplayName returns the facade location of the first open notebook
// whose facade filename matches name. It implements the codec's fallback
// resolution for registry misses.
func (r *Registry) ResolveDisplayName(name string) (string, bool) {
	if name == "" || strings.Contains(name, string(filepath.Separator)) {
		return "", false
	}

	var loc string
	r.Each(func(st *State) bool {
		if st.DisplayName() == name {
			loc = st.FacadePath
			return false
		}
		return true
	})
	return loc, loc != ""
}
