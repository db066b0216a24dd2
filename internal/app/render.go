package app

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/theme"
)

// GetCanvas composes every layer of the desktop.
func (d *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(max(d.Width, 1), max(d.Height, 1))
	var layers []*lipgloss.Layer

	order := d.Order()
	for i, id := range order {
		content := d.renderPanel(id)
		if content == "" {
			continue
		}
		r := d.Panel(id).Rect()
		z := config.ZIndexPanel + len(order) - i
		layers = append(layers, lipgloss.NewLayer(content).X(r.X).Y(r.Y).Z(z).ID(id.String()))
	}

	for _, sp := range d.Session.Splitters() {
		c := theme.Splitter()
		if d.Drag.Splitter.Active() && d.Drag.Splitter.Edge() == sp.Edge {
			c = theme.SplitterActive()
		}
		glyph := "─"
		if !sp.Edge.Side() {
			glyph = "│"
		}
		if config.UseASCIIOnly {
			glyph = map[bool]string{true: "-", false: "|"}[sp.Edge.Side()]
		}
		row := strings.Repeat(glyph, max(sp.Rect.W, 0))
		rows := make([]string, max(sp.Rect.H, 0))
		for i := range rows {
			rows[i] = row
		}
		layers = append(layers, lipgloss.NewLayer(fg(c).Render(strings.Join(rows, "\n"))).
			X(sp.Rect.X).Y(sp.Rect.Y).Z(config.ZIndexSplitter).ID("splitter-"+sp.Edge.String()))
	}

	if eb := d.Session.ExpandButton(); eb.Visible {
		f, b := theme.ExpandButton()
		label := lipgloss.NewStyle().Foreground(f).Background(b).Bold(true).Render(fitLine(eb.Label, eb.Rect.W))
		layers = append(layers, lipgloss.NewLayer(label).
			X(eb.Rect.X).Y(eb.Rect.Y).Z(config.ZIndexExpandButton).ID("expand"))
	}

	layers = append(layers, d.renderStatusBar())
	layers = append(layers, d.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the desktop.
func (d *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

func (d *Desktop) borderColor(id dock.PanelID) color.Color {
	switch {
	case d.Drag.Move.Active() && d.Drag.Move.Panel() == id,
		d.Drag.Resize.Active() && d.Drag.Resize.Panel() == id:
		return theme.BorderDragging()
	case d.Focused == id:
		return theme.BorderFocused()
	}
	return theme.BorderUnfocused()
}

func (d *Desktop) panelTitle(id dock.PanelID) string {
	if id == dock.REPL {
		title := "Python REPL"
		if d.Repl.Running {
			title += " (running)"
		}
		return title
	}
	m := d.Explorer.Model
	title := "Explorer " + m.Cwd
	if m.Dirty {
		title += " " + config.GetIconDirty()
	}
	return title
}

// renderPanel draws a panel frame and its body at its current size.
func (d *Desktop) renderPanel(id dock.PanelID) string {
	p := d.Panel(id)
	r := p.Rect()
	if !p.Visible() || r.W <= 0 || r.H <= 0 {
		return ""
	}
	border := config.GetBorderForStyle()
	bc := d.borderColor(id)
	title := renderTitleLine(d.panelTitle(id), d.TitleButtons(id), r.X, r.W, border, bc)
	if r.H == 1 {
		return title
	}

	w, h := r.W-2, max(r.H-2, 0)
	var body []string
	if id == dock.REPL {
		body = d.replBody(w, h)
	} else {
		body = d.explorerBody(w, h)
	}
	return renderFrame(title, body, r.W, border, bc)
}

var lineStyles = map[LineKind]func() color.Color{
	LineInput:     theme.Prompt,
	LineStdout:    theme.Stdout,
	LineStderr:    theme.Stderr,
	LineTraceback: theme.Traceback,
	LineSystem:    theme.SystemMessage,
}

func (d *Desktop) replBody(w, h int) []string {
	r := d.Repl
	body := make([]string, 0, h)

	input := d.inputLines(w, h)
	avail := h - len(input)
	if avail < 0 {
		return input[len(input)-h:]
	}

	end := len(r.Output) - r.Scroll
	start := max(0, end-avail)
	for _, l := range r.Output[start:end] {
		body = append(body, fg(lineStyles[l.Kind]()).Render(fitLine(l.Text, w)))
	}
	body = append(body, input...)
	for len(body) < h {
		body = append(body, strings.Repeat(" ", w))
	}
	return body
}

// inputLines renders the input editor, one row per line up to half the
// body, with a cursor while the REPL is focused.
func (d *Desktop) inputLines(w, h int) []string {
	r := d.Repl
	if r.Running {
		return []string{fg(theme.Prompt()).Render(fitLine("... running", w))}
	}
	rows := max(min(r.Input.LineCount(), h/2), 1)
	focused := d.Focused == dock.REPL && d.Modal == nil
	return editorView(&r.Input, w, rows, focused)
}

func (d *Desktop) explorerBody(w, h int) []string {
	e := d.Explorer
	m := e.Model
	listW := e.listWidth(w)

	list := make([]string, 0, h)
	header := m.Cwd
	if e.Filtering || m.Filter != "" {
		header = "/" + m.Filter
	}
	list = append(list, fg(theme.SystemMessage()).Render(fitLine(" "+header, listW)))

	rows := h - 1
	e.EnsureCursorVisible(rows)
	cf, cb := theme.ExplorerCursor()
	for i := e.ListOffset; i < len(m.Entries) && len(list) < h; i++ {
		ent := m.Entries[i]
		text := fitLine(" "+config.GetEntryIcon(ent.Name, ent.IsDir)+ent.Name, listW)
		st := fg(theme.ExplorerFile())
		if ent.IsDir {
			st = fg(theme.ExplorerDir())
		}
		if i == m.Cursor {
			st = lipgloss.NewStyle().Foreground(cf).Background(cb)
		}
		list = append(list, st.Render(text))
	}
	for len(list) < h {
		list = append(list, strings.Repeat(" ", listW))
	}
	if e.Mini() {
		return list
	}

	edW := w - listW - 1
	editor := d.editorLines(edW, h)
	sep := fg(theme.BorderUnfocused()).Render("│")
	if config.UseASCIIOnly {
		sep = fg(theme.BorderUnfocused()).Render("|")
	}
	out := make([]string, h)
	for i := range out {
		out[i] = list[i] + sep + editor[i]
	}
	return out
}

func (d *Desktop) editorLines(w, h int) []string {
	e := d.Explorer
	m := e.Model
	out := make([]string, 0, h)
	if m.Selected == "" {
		out = append(out, fg(theme.SystemMessage()).Render(fitLine(" no file open", w)))
	} else {
		name := " " + m.Selected
		if m.Dirty {
			name += " " + config.GetIconDirty()
		}
		st := fg(theme.TitleFg())
		if m.Dirty {
			st = fg(theme.ExplorerDirty())
		}
		out = append(out, st.Render(fitLine(name, w)))

		focused := d.Focused == dock.Explorer && e.EditorFocused && d.Modal == nil
		if rows := h - 1; rows > 0 && w > 0 {
			out = append(out, editorView(&e.Editor, w, rows, focused)...)
		}
	}
	for len(out) < h {
		out = append(out, strings.Repeat(" ", max(w, 0)))
	}
	return out[:h]
}

// statusText is the left part of the status line.
func (d *Desktop) statusText() string {
	parts := []string{"pyducation"}
	if d.PrefixActive {
		parts = append(parts, "LEADER "+d.KeybindRegistry.Leader())
	}
	parts = append(parts, "focus: "+d.Focused.String())
	switch {
	case d.Repl.Running:
		parts = append(parts, "running")
	case d.RuntimeReady || d.Runtime.Ready():
		parts = append(parts, "ready")
	default:
		parts = append(parts, "starting python...")
	}
	if d.HasStats {
		parts = append(parts, fmt.Sprintf("pid %d  %.1f MB  %.1f%% cpu",
			d.Stats.PID, float64(d.Stats.RSS)/(1<<20), d.Stats.CPUPercent))
	}
	return " " + strings.Join(parts, " | ")
}

func (d *Desktop) renderStatusBar() *lipgloss.Layer {
	w := max(d.Width, 1)
	right := ""
	if config.ShowClock {
		right = time.Now().Format("15:04") + " "
	}
	left := fitLine(d.statusText(), max(w-len(right), 0))
	bar := lipgloss.NewStyle().Foreground(theme.StatusFg()).Background(theme.StatusBg()).
		Render(left + fg(theme.StatusAccent()).Background(theme.StatusBg()).Render(right))
	return lipgloss.NewLayer(bar).X(0).Y(max(d.Height-config.StatusBarHeight, 0)).Z(config.ZIndexStatus).ID("status")
}
