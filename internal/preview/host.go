package preview

import "github.com/dshills/nbshadow/internal/notebook"

// View option names understood by the embedding editor.
const (
	// OptScratch marks a view as transient and non-file-backed.
	OptScratch = "scratch"
	// OptListed controls whether the view appears in buffer lists.
	OptListed = "listed"
	// OptModifiable controls whether the view accepts edits.
	OptModifiable = "modifiable"
	// OptLanguage sets the view's language tag.
	OptLanguage = "language"
	// OptWipeOnHide disposes the view automatically once hidden.
	OptWipeOnHide = "wipeOnHide"
)

// View is an editor view handle. Implementations are provided by the
// embedding editor; all methods may be called only on the UI thread.
type View interface {
	// ID returns the view's handle, never zero for a live view.
	ID() notebook.ViewID

	// Valid reports whether the handle still refers to a live view.
	Valid() bool

	// Name returns the identifier the view was opened under.
	Name() string

	// Lines returns the view's current content.
	Lines() []string

	// SetLines replaces the view's content.
	SetLines(lines []string) error

	// SetOption sets a view option by name.
	SetOption(name string, value any) error

	// Close disposes the view.
	Close() error
}

// Window is an editor window hosting exactly one view at a time.
type Window interface {
	// View returns the window's current view, nil if the window is gone.
	View() View

	// SetView switches the window to display another view.
	SetView(v View) error

	// Floating reports whether the window is a floating/overlay window.
	Floating() bool
}

// Host is the editor surface the preview manager runs against.
type Host interface {
	// Views enumerates all currently open views.
	Views() []View

	// ViewByID resolves a view handle.
	ViewByID(id notebook.ViewID) (View, bool)

	// Defer schedules fn to run on the next turn of the UI loop.
	Defer(fn func())
}

// Decorator applies cell-boundary decorations. The same routine decorates
// the live facade and its previews so the two render identically.
type Decorator interface {
	RenderCell(st *notebook.State, cellIndex int, facade bool, target View)
}

// OverlayCloser terminates an active single-cell edit overlay. Closing when
// no overlay is active must be a no-op.
type OverlayCloser interface {
	Close(st *notebook.State)
}
