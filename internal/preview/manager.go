package preview

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/nbshadow/internal/identity"
	"github.com/dshills/nbshadow/internal/logging"
	"github.com/dshills/nbshadow/internal/notebook"
)

// Manager populates, locks, redirects, and sweeps preview views.
type Manager struct {
	codec     *identity.Codec
	notebooks *notebook.Registry
	host      Host
	decorator Decorator
	overlay   OverlayCloser
	log       *logging.Logger

	mu       sync.Mutex
	sessions map[notebook.ViewID]string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDecorator sets the cell decoration collaborator.
func WithDecorator(d Decorator) ManagerOption {
	return func(m *Manager) {
		m.decorator = d
	}
}

// WithOverlayCloser sets the edit-overlay collaborator.
func WithOverlayCloser(o OverlayCloser) ManagerOption {
	return func(m *Manager) {
		m.overlay = o
	}
}

// WithLogger sets the manager's logger.
func WithLogger(log *logging.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log.WithComponent("preview")
	}
}

// NewManager creates a preview manager.
func NewManager(codec *identity.Codec, notebooks *notebook.Registry, host Host, opts ...ManagerOption) *Manager {
	m := &Manager{
		codec:     codec,
		notebooks: notebooks,
		host:      host,
		log:       logging.Null,
		sessions:  make(map[notebook.ViewID]string),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Open populates a view opened under a synthetic identifier with the owning
// facade's current live content, then locks it read-only. If the identifier
// does not resolve to an open notebook the view is left empty and nothing
// else happens.
func (m *Manager) Open(view View) {
	if view == nil || !view.Valid() {
		return
	}

	st, ok := m.resolve(view.Name())
	if !ok {
		m.log.Debug("unresolvable identifier %q, leaving view empty", view.Name())
		return
	}

	facadeView, ok := m.facadeView(st)
	if !ok {
		m.log.Debug("no live facade view for %s", st.FacadePath)
		return
	}

	_ = view.SetOption(OptScratch, true)
	_ = view.SetOption(OptListed, false)
	_ = view.SetOption(OptModifiable, true)

	// Verbatim copy so line numbers shown by pickers line up exactly.
	if err := view.SetLines(facadeView.Lines()); err != nil {
		m.log.Warn("populate preview for %s: %v", st.FacadePath, err)
		return
	}
	_ = view.SetOption(OptLanguage, st.ShadowLanguage)

	if m.decorator != nil {
		for i := range st.Cells {
			m.decorator.RenderCell(st, i, false, view)
		}
	}

	_ = view.SetOption(OptModifiable, false)
	_ = view.SetOption(OptWipeOnHide, true)

	session := uuid.NewString()
	m.mu.Lock()
	m.sessions[view.ID()] = session
	m.mu.Unlock()

	m.log.WithField("session", session).Debug("preview populated for %s", st.FacadePath)
}

// RedirectIfStray handles a synthetic-identifier view becoming the active
// view of a window. Floating windows are left alone (after closing any
// active single-cell edit overlay); a normal window is switched back to the
// facade's live view and the stray synthetic view is disposed.
func (m *Manager) RedirectIfStray(win Window) {
	if win == nil {
		return
	}
	view := win.View()
	if view == nil || !m.codec.IsSynthetic(view.Name()) {
		return
	}

	st, ok := m.resolve(view.Name())
	if !ok {
		return
	}

	if win.Floating() {
		if m.overlay != nil {
			m.overlay.Close(st)
		}
		// Still floating after closing the overlay: a legitimate
		// preview popup, which must not be redirected away.
		if win.Floating() {
			return
		}
	}

	facadeView, ok := m.facadeView(st)
	if !ok {
		return
	}

	if err := win.SetView(facadeView); err != nil {
		m.log.Warn("redirect to facade view: %v", err)
		return
	}
	m.dispose(view)
	m.log.Debug("redirected stray synthetic view for %s", st.FacadePath)
}

// Cleanup disposes every open synthetic-identifier view belonging to this
// notebook. The sweep runs on the next scheduling turn, not inline, so a
// picker's own teardown of its views has settled first.
func (m *Manager) Cleanup(st *notebook.State) {
	if st == nil {
		return
	}

	m.host.Defer(func() {
		for _, view := range m.host.Views() {
			if view == nil || !view.Valid() {
				continue
			}
			name := view.Name()
			if !m.codec.IsSynthetic(name) {
				continue
			}
			if loc, ok := m.codec.Parse(name); ok && loc == st.FacadePath {
				m.dispose(view)
			}
		}
	})
}

// Sessions returns the session token recorded for a view, for debugging.
func (m *Manager) Sessions() map[notebook.ViewID]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[notebook.ViewID]string, len(m.sessions))
	for k, v := range m.sessions {
		out[k] = v
	}
	return out
}

// resolve maps a synthetic identifier to an open notebook.
func (m *Manager) resolve(name string) (*notebook.State, bool) {
	loc, ok := m.codec.Parse(name)
	if !ok {
		return nil, false
	}
	return m.notebooks.Get(loc)
}

// facadeView returns the live facade view for a notebook.
func (m *Manager) facadeView(st *notebook.State) (View, bool) {
	if st.FacadeView == 0 {
		return nil, false
	}
	view, ok := m.host.ViewByID(st.FacadeView)
	if !ok || !view.Valid() {
		return nil, false
	}
	return view, true
}

// dispose closes a view, swallowing failures: the view may already have
// been disposed by an unrelated path between enumeration and disposal.
func (m *Manager) dispose(view View) {
	if err := view.Close(); err != nil {
		m.log.Debug("dispose preview view: %v", err)
	}

	m.mu.Lock()
	delete(m.sessions, view.ID())
	m.mu.Unlock()
}
