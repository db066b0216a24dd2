package drag

import (
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/geom"
)

// Move drags a floating panel by its header.
type Move struct {
	session *dock.Session
	state   State
	panel   dock.PanelID

	startX, startY int
	start          geom.Rect
}

// NewMove returns an idle move controller.
func NewMove(s *dock.Session) *Move {
	return &Move{session: s}
}

// Active reports whether a drag is in progress.
func (m *Move) Active() bool { return m.state == StateActive }

// Panel returns the panel being dragged.
func (m *Move) Panel() dock.PanelID { return m.panel }

// Begin starts a drag at pointer (x, y). Docked, maximized and hidden panels
// do not move; Begin reports whether the drag started.
func (m *Move) Begin(id dock.PanelID, x, y int) bool {
	p := m.session.Panel(id)
	if !p.Visible() || !m.session.Floating(id) || p.Flags().Has(dock.FlagMaximized) {
		return false
	}
	m.state = StateActive
	m.panel = id
	m.startX, m.startY = x, y
	m.start = m.session.FloatRect(id)
	return true
}

// Update moves the panel by the pointer delta, keeping it inside the
// viewport with the configured margin.
func (m *Move) Update(x, y int) {
	if m.state != StateActive {
		return
	}
	vp := m.session.Viewport()
	margin := m.session.Metrics().MoveMargin
	shown := m.session.Panel(m.panel).Rect()

	r := m.start
	r.X = geom.Clamp(m.start.X+x-m.startX, margin, vp.W-shown.W-margin)
	r.Y = geom.Clamp(m.start.Y+y-m.startY, margin, vp.H-shown.H-margin)
	m.session.SetFloatRect(m.panel, r)
}

// End finishes the drag.
func (m *Move) End() {
	m.state = StateIdle
}
