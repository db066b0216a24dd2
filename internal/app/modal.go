package app

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/geom"
)

// ModalKind selects between a yes/no question and a text prompt.
type ModalKind int

const (
	ModalConfirm ModalKind = iota
	ModalPrompt
)

// Modal is a blocking dialog. Exactly one of OnConfirm / OnSubmit is used.
type Modal struct {
	Kind    ModalKind
	Title   string
	Message string
	Input   textinput.Model
	// Selection is 0 for yes, 1 for no.
	Selection int

	OnConfirm func(d *Desktop) tea.Cmd
	OnSubmit  func(d *Desktop, value string) tea.Cmd
}

// Confirm opens a yes/no dialog.
func (d *Desktop) Confirm(title, message string, onYes func(d *Desktop) tea.Cmd) {
	d.Modal = &Modal{Kind: ModalConfirm, Title: title, Message: message, OnConfirm: onYes}
}

// Prompt opens a one-line text dialog pre-filled with value.
func (d *Desktop) Prompt(title, message, value string, onSubmit func(d *Desktop, value string) tea.Cmd) {
	d.Modal = &Modal{
		Kind:     ModalPrompt,
		Title:    title,
		Message:  message,
		Input:    newPromptInput(value),
		OnSubmit: onSubmit,
	}
}

// AcceptModal closes the dialog and runs its action.
func (d *Desktop) AcceptModal() tea.Cmd {
	m := d.Modal
	d.Modal = nil
	if m == nil {
		return nil
	}
	switch m.Kind {
	case ModalConfirm:
		if m.Selection == 0 && m.OnConfirm != nil {
			return m.OnConfirm(d)
		}
	case ModalPrompt:
		if m.OnSubmit != nil {
			return m.OnSubmit(d, m.Input.Value())
		}
	}
	return nil
}

// CancelModal closes the dialog without acting.
func (d *Desktop) CancelModal() {
	d.Modal = nil
}

// DockMenu lists the positions a panel can be sent to.
type DockMenu struct {
	Panel  dock.PanelID
	Cursor int
	// X, Y anchor the menu under the button that opened it.
	X, Y int
}

// DockMenuItems is Float followed by every dock position.
func DockMenuItems() []dock.Position {
	return append([]dock.Position{dock.Float}, dock.Positions...)
}

// OpenDockMenu shows the dock menu for id at (x, y).
func (d *Desktop) OpenDockMenu(id dock.PanelID, x, y int) {
	cur := 0
	for i, p := range DockMenuItems() {
		if p == d.Session.Assignment(id) {
			cur = i
		}
	}
	d.DockMenu = &DockMenu{Panel: id, Cursor: cur, X: x, Y: y}
}

// ChooseDockMenu docks the menu's panel at item i and closes the menu.
func (d *Desktop) ChooseDockMenu(i int) {
	m := d.DockMenu
	d.DockMenu = nil
	items := DockMenuItems()
	if m == nil || i < 0 || i >= len(items) {
		return
	}
	d.Focus(m.Panel)
	d.DockFocused(items[i])
}

// DockMenuRect is the on-screen box of the open dock menu, border included.
func (d *Desktop) DockMenuRect() geom.Rect {
	m := d.DockMenu
	if m == nil {
		return geom.Rect{}
	}
	items := DockMenuItems()
	w := 0
	for _, p := range items {
		w = max(w, len(p.String()))
	}
	w += 4 + 2
	h := len(items) + 2
	return geom.Rect{
		X: max(min(m.X, d.Width-w), 0),
		Y: max(min(m.Y, d.Height-h), 0),
		W: w,
		H: h,
	}
}

// DockMenuItemAt returns the menu item under (x, y).
func (d *Desktop) DockMenuItemAt(x, y int) (int, bool) {
	r := d.DockMenuRect()
	if x <= r.X || x >= r.Right()-1 || y <= r.Y || y >= r.Bottom()-1 {
		return 0, false
	}
	return y - r.Y - 1, true
}
