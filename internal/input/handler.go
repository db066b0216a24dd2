// Package input routes keyboard and mouse messages to the pyducation
// desktop: overlays first, then the leader key, then the focused panel.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/app"
	"github.com/pyducation/pyducation/internal/dock"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return d, HandleKeyPress(msg, d)
	case tea.PasteMsg:
		return d, handlePaste(msg.Content, d)
	case tea.MouseClickMsg:
		return d, handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return d, handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return d, handleMouseRelease(d)
	case tea.MouseWheelMsg:
		return d, handleMouseWheel(msg, d)
	}
	return d, nil
}

// handlePaste inserts pasted text into whichever editor has focus.
func handlePaste(text string, d *app.Desktop) tea.Cmd {
	switch {
	case d.Modal != nil:
		if d.Modal.Kind == app.ModalPrompt {
			var cmd tea.Cmd
			d.Modal.Input, cmd = d.Modal.Input.Update(tea.PasteMsg{Content: firstLine(text)})
			return cmd
		}
	case d.Focused == dock.Explorer && d.Explorer.EditorFocused && d.Explorer.Model.Selected != "":
		d.Explorer.Editor.InsertString(text)
		d.Explorer.CommitEditor()
	case d.Focused == dock.REPL && !d.Repl.Running:
		d.Repl.Input.InsertString(text)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
