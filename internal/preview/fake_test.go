package preview

import (
	"errors"

	"github.com/dshills/nbshadow/internal/notebook"
)

// fakeView is an in-memory View for tests.
type fakeView struct {
	id      notebook.ViewID
	name    string
	lines   []string
	options map[string]any
	valid   bool
	closed  bool

	setLinesErr error
	closeErr    error
}

func newFakeView(id notebook.ViewID, name string, lines ...string) *fakeView {
	return &fakeView{
		id:      id,
		name:    name,
		lines:   lines,
		options: make(map[string]any),
		valid:   true,
	}
}

func (v *fakeView) ID() notebook.ViewID { return v.id }
func (v *fakeView) Valid() bool         { return v.valid }
func (v *fakeView) Name() string        { return v.name }

func (v *fakeView) Lines() []string {
	out := make([]string, len(v.lines))
	copy(out, v.lines)
	return out
}

func (v *fakeView) SetLines(lines []string) error {
	if v.setLinesErr != nil {
		return v.setLinesErr
	}
	v.lines = append([]string(nil), lines...)
	return nil
}

func (v *fakeView) SetOption(name string, value any) error {
	v.options[name] = value
	return nil
}

func (v *fakeView) Close() error {
	if v.closeErr != nil {
		return v.closeErr
	}
	v.closed = true
	v.valid = false
	return nil
}

// fakeWindow hosts one view and can float.
type fakeWindow struct {
	view     View
	floating bool

	setViewErr error
}

func (w *fakeWindow) View() View     { return w.view }
func (w *fakeWindow) Floating() bool { return w.floating }

func (w *fakeWindow) SetView(v View) error {
	if w.setViewErr != nil {
		return w.setViewErr
	}
	w.view = v
	return nil
}

// fakeHost collects views and captures deferred callbacks so tests control
// when the "next turn" runs.
type fakeHost struct {
	views    []*fakeView
	deferred []func()
}

func (h *fakeHost) Views() []View {
	out := make([]View, len(h.views))
	for i, v := range h.views {
		out[i] = v
	}
	return out
}

func (h *fakeHost) ViewByID(id notebook.ViewID) (View, bool) {
	for _, v := range h.views {
		if v.id == id {
			return v, true
		}
	}
	return nil, false
}

func (h *fakeHost) Defer(fn func()) {
	h.deferred = append(h.deferred, fn)
}

// runDeferred runs and clears all captured callbacks.
func (h *fakeHost) runDeferred() {
	pending := h.deferred
	h.deferred = nil
	for _, fn := range pending {
		fn()
	}
}

// fakeDecorator records RenderCell calls.
type fakeDecorator struct {
	calls []decorationCall
}

type decorationCall struct {
	facadePath string
	cellIndex  int
	facade     bool
	target     notebook.ViewID
}

func (d *fakeDecorator) RenderCell(st *notebook.State, cellIndex int, facade bool, target View) {
	d.calls = append(d.calls, decorationCall{
		facadePath: st.FacadePath,
		cellIndex:  cellIndex,
		facade:     facade,
		target:     target.ID(),
	})
}

// fakeOverlay closes a pretend single-cell edit overlay; closing it unfloats
// the window it was hosted in.
type fakeOverlay struct {
	active bool
	closed int
	window *fakeWindow
}

func (o *fakeOverlay) Close(*notebook.State) {
	if !o.active {
		return
	}
	o.active = false
	o.closed++
	if o.window != nil {
		o.window.floating = false
	}
}

var errViewGone = errors.New("view already disposed")
