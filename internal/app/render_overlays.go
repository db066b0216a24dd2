package app

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/theme"
)

func (d *Desktop) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if d.DockMenu != nil {
		layers = append(layers, d.renderDockMenu())
	}
	if d.ShowHelp {
		layers = append(layers, d.centered(d.renderHelp(), config.ZIndexOverlay, "help"))
	}
	if d.ShowLogs {
		layers = append(layers, d.centered(d.renderLogs(), config.ZIndexOverlay, "logs"))
	}
	if d.Modal != nil {
		layers = append(layers, d.centered(d.renderModal(), config.ZIndexModal, "modal"))
	}
	layers = append(layers, d.renderNotifications()...)
	return layers
}

func (d *Desktop) centered(box string, z int, id string) *lipgloss.Layer {
	x := max((d.Width-lipgloss.Width(box))/2, 0)
	y := max((d.Height-lipgloss.Height(box))/2, 0)
	return lipgloss.NewLayer(box).X(x).Y(y).Z(z).ID(id)
}

func (d *Desktop) overlayBox(accent color.Color, lines []string, width int) string {
	return lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(accent).
		Background(theme.OverlayBg()).
		Padding(1, 2).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// helpLines flattens the help sections into display lines.
func (d *Desktop) helpLines() []string {
	keyStyle := fg(theme.HelpKey()).Bold(true)
	titleStyle := fg(theme.TitleFg()).Bold(true).Underline(true)
	leader := d.KeybindRegistry.Leader()

	lines := []string{"Keys in the first column follow " + keyStyle.Render(leader) + ".", ""}
	for _, section := range config.GetKeybindings(d.KeybindRegistry) {
		if section.Title != "" {
			lines = append(lines, titleStyle.Render(section.Title))
		}
		keyW, directW := 0, 0
		for _, b := range section.Bindings {
			keyW = max(keyW, lipgloss.Width(b.Key))
			directW = max(directW, lipgloss.Width(b.Direct))
		}
		for _, b := range section.Bindings {
			line := "  "
			if keyW > 0 {
				line += keyStyle.Render(b.Key) + strings.Repeat(" ", keyW-lipgloss.Width(b.Key)+2)
			}
			if directW > 0 {
				line += keyStyle.Render(b.Direct) + strings.Repeat(" ", directW-lipgloss.Width(b.Direct)+2)
			}
			lines = append(lines, line+b.Description)
		}
		lines = append(lines, "")
	}
	return lines
}

func (d *Desktop) renderHelp() string {
	all := d.helpLines()
	perPage := max(d.Height-10, 4)
	maxScroll := max(len(all)-perPage, 0)
	d.HelpScrollOffset = max(0, min(d.HelpScrollOffset, maxScroll))

	lines := []string{fg(theme.HelpKey()).Bold(true).Render("Keybindings"), ""}
	lines = append(lines, all[d.HelpScrollOffset:min(len(all), d.HelpScrollOffset+perPage)]...)
	hint := "esc to close"
	if maxScroll > 0 {
		hint += ", up/down to scroll"
	}
	lines = append(lines, fg(theme.BorderUnfocused()).Render(hint))
	return d.overlayBox(theme.HelpKey(), lines, min(72, max(d.Width-4, 20)))
}

func (d *Desktop) renderLogs() string {
	perPage := max(d.Height-12, 4)
	maxScroll := max(len(d.LogMessages)-perPage, 0)
	d.LogScrollOffset = max(0, min(d.LogScrollOffset, maxScroll))

	width := min(90, max(d.Width-4, 20))
	lines := []string{fg(theme.HelpKey()).Bold(true).Render("Logs"), ""}
	if len(d.LogMessages) == 0 {
		lines = append(lines, fg(theme.BorderUnfocused()).Render("nothing logged yet"))
	}
	end := min(len(d.LogMessages), d.LogScrollOffset+perPage)
	for _, m := range d.LogMessages[d.LogScrollOffset:end] {
		level := fg(theme.LogLevel(m.Level)).Render(fmt.Sprintf("[%-5s]", m.Level))
		first, _, _ := strings.Cut(m.Message, "\n")
		lines = append(lines, m.Time.Format("15:04:05")+" "+level+" "+fitLine(first, max(width-22, 8)))
	}
	if maxScroll > 0 {
		lines = append(lines, "", fg(theme.BorderUnfocused()).Render(
			fmt.Sprintf("showing %d-%d of %d", d.LogScrollOffset+1, end, len(d.LogMessages))))
	}
	lines = append(lines, "", fg(theme.BorderUnfocused()).Render("esc to close, up/down to scroll"))
	return d.overlayBox(theme.SystemMessage(), lines, width)
}

func (d *Desktop) renderModal() string {
	m := d.Modal
	accent := theme.BorderFocused()
	lines := []string{fg(accent).Bold(true).Render(m.Title)}
	if m.Message != "" {
		lines = append(lines, "", m.Message)
	}
	width := min(60, max(d.Width-4, 20))

	switch m.Kind {
	case ModalConfirm:
		button := func(label string, selected bool) string {
			st := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
			if selected {
				return st.Foreground(theme.BorderFocused()).BorderForeground(theme.BorderFocused()).Bold(true).Render(label)
			}
			return st.Foreground(theme.BorderUnfocused()).BorderForeground(theme.BorderUnfocused()).Render(label)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			button("yes", m.Selection == 0), "   ", button("no", m.Selection == 1))
		lines = append(lines, "", row)
	case ModalPrompt:
		m.Input.SetWidth(max(width-8, 1))
		lines = append(lines, "", fitLine(m.Input.View(), width-6))
		lines = append(lines, "", fg(theme.BorderUnfocused()).Render("enter to accept, esc to cancel"))
	}
	return d.overlayBox(accent, lines, width)
}

func (d *Desktop) renderDockMenu() *lipgloss.Layer {
	m := d.DockMenu
	box := d.DockMenuRect()
	cf, cb := theme.ExplorerCursor()
	width := box.W - 2

	items := DockMenuItems()
	lines := make([]string, len(items))
	for i, p := range items {
		mark := "  "
		if p == d.Session.Assignment(m.Panel) {
			mark = "* "
		}
		label := fitLine(mark+p.String(), width)
		if i == m.Cursor {
			lines[i] = lipgloss.NewStyle().Foreground(cf).Background(cb).Render(label)
			continue
		}
		lines[i] = lipgloss.NewStyle().Foreground(theme.Fg()).Background(theme.OverlayBg()).Render(label)
	}
	content := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.BorderFocused()).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewLayer(content).X(box.X).Y(box.Y).Z(config.ZIndexOverlay + 1).ID("dock-menu")
}

func (d *Desktop) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	y := 1
	for i, n := range d.Notifications {
		if i >= 3 {
			break
		}
		var icon string
		bg := theme.NotificationInfo()
		switch n.Type {
		case "error":
			bg, icon = theme.NotificationError(), config.NotificationIconError
		case "warning":
			bg, icon = theme.NotificationWarning(), config.NotificationIconWarning
		case "success":
			bg, icon = theme.NotificationSuccess(), config.NotificationIconSuccess
		default:
			icon = config.NotificationIconInfo
		}
		maxW := min(max(d.Width-8, 20), config.MaxNotificationWidth)
		first, _, _ := strings.Cut(n.Message, "\n")
		box := lipgloss.NewStyle().
			Background(bg).
			Foreground(theme.Bg()).
			Bold(true).
			Padding(0, 1).
			Render(icon + " " + fitLine(first, max(maxW-len(icon)-3, 4)))
		x := max(d.Width-lipgloss.Width(box)-2, 0)
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(config.ZIndexNotifications).ID("notif-"+n.ID))
		y += 2
	}
	return layers
}
