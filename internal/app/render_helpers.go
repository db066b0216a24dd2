package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/theme"
)

// TitleButton identifies a header control.
type TitleButton int

const (
	ButtonNone TitleButton = iota
	ButtonDockMenu
	ButtonMinimize
	ButtonMaximize
	ButtonClose
)

// PlacedButton is a header control at an absolute column.
type PlacedButton struct {
	Kind  TitleButton
	Glyph string
	X     int
}

// Width returns the number of cells the glyph takes.
func (b PlacedButton) Width() int { return ansi.StringWidth(b.Glyph) }

// TitleButtons lays out the header controls of a panel from the right,
// dropping the leftmost ones when the header is too narrow.
func (d *Desktop) TitleButtons(id dock.PanelID) []PlacedButton {
	p := d.Panel(id)
	r := p.Rect()
	all := []PlacedButton{
		{Kind: ButtonDockMenu, Glyph: config.GetButtonDockMenu()},
		{Kind: ButtonMinimize, Glyph: config.GetButtonMinimize()},
		{Kind: ButtonMaximize, Glyph: config.GetButtonMaximize(p.Flags().Has(dock.FlagMaximized))},
	}
	if id == dock.Explorer {
		all = append(all, PlacedButton{Kind: ButtonClose, Glyph: config.GetButtonClose()})
	}

	// Keep the corner and at least two title cells.
	x := r.Right() - 1
	limit := r.X + 3
	var out []PlacedButton
	for i := len(all) - 1; i >= 0; i-- {
		b := all[i]
		if x-b.Width() < limit {
			break
		}
		x -= b.Width()
		b.X = x
		out = append([]PlacedButton{b}, out...)
	}
	return out
}

// ButtonAt returns the header control under (x, y), checking panels top
// first. A panel's body hides the headers beneath it.
func (d *Desktop) ButtonAt(x, y int) (dock.PanelID, TitleButton) {
	for _, id := range d.Order() {
		r := d.Panel(id).Rect()
		if !r.Contains(x, y) {
			continue
		}
		if y != r.Y {
			return 0, ButtonNone
		}
		for _, b := range d.TitleButtons(id) {
			if x >= b.X && x < b.X+b.Width() {
				return id, b.Kind
			}
		}
		return id, ButtonNone
	}
	return 0, ButtonNone
}

// fitLine cuts or pads plain text to exactly width cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(expandTabs(s), width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// renderTitleLine draws the top border with the title on the left and the
// header controls on the right.
func renderTitleLine(title string, buttons []PlacedButton, x0, width int, border lipgloss.Border, borderColor color.Color) string {
	if width < 2 {
		return fg(borderColor).Render(strings.Repeat(border.Top, max(width, 0)))
	}
	bs := fg(borderColor)
	titleStyle := fg(theme.TitleFg()).Bold(true)
	btnStyle := fg(theme.ButtonFg())

	var b strings.Builder
	b.WriteString(bs.Render(border.TopLeft))
	col := x0 + 1

	btnStart := x0 + width - 1
	if len(buttons) > 0 {
		btnStart = buttons[0].X
	}
	if room := btnStart - col - 1; room > 0 && title != "" {
		t := ansi.Truncate(" "+title+" ", room, "")
		b.WriteString(titleStyle.Render(t))
		col += ansi.StringWidth(t)
	}
	if fill := btnStart - col; fill > 0 {
		b.WriteString(bs.Render(strings.Repeat(border.Top, fill)))
		col += fill
	}
	for _, btn := range buttons {
		st := btnStyle
		if btn.Kind == ButtonClose {
			st = fg(theme.ButtonClose())
		}
		b.WriteString(st.Render(btn.Glyph))
		col += btn.Width()
	}
	if fill := x0 + width - 1 - col; fill > 0 {
		b.WriteString(bs.Render(strings.Repeat(border.Top, fill)))
	}
	b.WriteString(bs.Render(border.TopRight))
	return b.String()
}

// renderFrame wraps pre-fitted body lines in the panel border. Each body
// line must already be width-2 cells wide.
func renderFrame(titleLine string, body []string, width int, border lipgloss.Border, borderColor color.Color) string {
	bs := fg(borderColor)
	lines := make([]string, 0, len(body)+2)
	lines = append(lines, titleLine)
	left, right := bs.Render(border.Left), bs.Render(border.Right)
	for _, l := range body {
		lines = append(lines, left+l+right)
	}
	lines = append(lines, bs.Render(border.BottomLeft+strings.Repeat(border.Bottom, max(width-2, 0))+border.BottomRight))
	return strings.Join(lines, "\n")
}

// listWidth is the width of the listing column inside a body w cells wide.
func (e *ExplorerPanel) listWidth(w int) int {
	if e.Mini() {
		return w
	}
	return min(config.ExplorerListWidth, w/2)
}

// ExplorerEntryAt maps a screen cell to a listing index.
func (d *Desktop) ExplorerEntryAt(x, y int) (int, bool) {
	e := d.Explorer
	r := e.Rect()
	if !e.Visible() || e.Minimized() || !r.Contains(x, y) {
		return 0, false
	}
	// One border cell and the cwd header precede the first entry.
	row := y - r.Y - 2
	col := x - r.X - 1
	if row < 0 || col < 0 || col >= e.listWidth(r.W-2) || y >= r.Bottom()-1 {
		return 0, false
	}
	i := e.ListOffset + row
	if i >= len(e.Model.Entries) {
		return 0, false
	}
	return i, true
}

// ExplorerEditorAt reports whether a screen cell lies in the editor column.
func (d *Desktop) ExplorerEditorAt(x, y int) bool {
	e := d.Explorer
	r := e.Rect()
	if !e.Visible() || e.Minimized() || e.Mini() || !r.Contains(x, y) {
		return false
	}
	col := x - r.X - 1
	return y > r.Y && y < r.Bottom()-1 && col > e.listWidth(r.W-2) && col < r.W-2
}
