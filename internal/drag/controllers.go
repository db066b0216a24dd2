package drag

import "github.com/pyducation/pyducation/internal/dock"

// Controllers bundles the three interactions of one session so a pointer
// sequence drives at most one of them.
type Controllers struct {
	Move     *Move
	Resize   *Resize
	Splitter *Splitter
}

// NewControllers returns idle controllers bound to s.
func NewControllers(s *dock.Session) *Controllers {
	return &Controllers{
		Move:     NewMove(s),
		Resize:   NewResize(s),
		Splitter: NewSplitter(s),
	}
}

// Busy reports whether any interaction is active.
func (c *Controllers) Busy() bool {
	return c.Move.Active() || c.Resize.Active() || c.Splitter.Active()
}

// Down starts the interaction matching t. It does nothing while another
// interaction is active and reports whether one started.
func (c *Controllers) Down(t Target, x, y int) bool {
	if c.Busy() {
		return false
	}
	switch t.Kind {
	case TargetSplitter:
		return c.Splitter.Begin(t.Edge)
	case TargetHandle:
		return c.Resize.Begin(t.Panel, t.Dir, x, y)
	case TargetHeader:
		return c.Move.Begin(t.Panel, x, y)
	}
	return false
}

// Motion feeds the pointer position to the active interaction.
func (c *Controllers) Motion(x, y int) bool {
	switch {
	case c.Splitter.Active():
		c.Splitter.Update(x, y)
	case c.Resize.Active():
		c.Resize.Update(x, y)
	case c.Move.Active():
		c.Move.Update(x, y)
	default:
		return false
	}
	return true
}

// Up ends whatever is active.
func (c *Controllers) Up() {
	c.Move.End()
	c.Resize.End()
	c.Splitter.End()
}
