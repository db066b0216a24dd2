package dock

// ToggleMinimize collapses a panel to its header or expands it back. The
// dock assignment is kept.
func (s *Session) ToggleMinimize(id PanelID) {
	p := s.panels[id]
	p.SetFlags(p.Flags().With(FlagMinimized, !p.Flags().Has(FlagMinimized)))
	s.Apply()
}

// ToggleMaximize fills the viewport with a panel, undocking it first, or
// restores it to the rectangle it occupied before maximizing.
func (s *Session) ToggleMaximize(id PanelID) {
	p := s.panels[id]
	if p.Flags().Has(FlagMaximized) {
		p.SetFlags(p.Flags().With(FlagMaximized, false))
		s.Apply()
		return
	}
	s.CaptureFloat(id)
	s.assign[id] = Float
	p.SetFlags(p.Flags().With(FlagMaximized, true).With(FlagMinimized, false))
	s.Apply()
}

// SetVisibility shows or hides a panel. A hidden panel keeps its dock
// assignment but stops occupying its edge.
func (s *Session) SetVisibility(id PanelID, visible bool) {
	s.panels[id].SetVisible(visible)
	s.Apply()
}

// Close hides a panel.
func (s *Session) Close(id PanelID) {
	s.SetVisibility(id, false)
}

// ToggleMini switches a panel between its compact and full body.
func (s *Session) ToggleMini(id PanelID) {
	p := s.panels[id]
	p.SetFlags(p.Flags().With(FlagMini, !p.Flags().Has(FlagMini)))
	s.Apply()
}
