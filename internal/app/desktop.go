// Package app provides the pyducation desktop: a Bubble Tea model hosting
// the REPL and explorer panels on top of the docking engine.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/dock"
	"github.com/pyducation/pyducation/internal/drag"
	"github.com/pyducation/pyducation/internal/explorer"
	"github.com/pyducation/pyducation/internal/geom"
	"github.com/pyducation/pyducation/internal/pyrt"
	"github.com/pyducation/pyducation/internal/tape"
)

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// StatsSource is implemented by runtimes that can sample their interpreter.
type StatsSource interface {
	Stats() (pyrt.Stats, error)
}

// Options configures a Desktop.
type Options struct {
	Runtime pyrt.Runtime
	// Boot brings the interpreter up in the background. Nil means the
	// runtime is usable as is.
	Boot func(context.Context) error
	// Watcher, when set, refreshes the explorer on filesystem changes.
	Watcher *pyrt.Watcher

	Config          *config.UserConfig
	KeybindRegistry *config.KeybindRegistry
	Logger          *log.Logger

	// Metrics defaults to dock.CellMetrics.
	Metrics dock.Metrics

	// LayoutPath is where the layout is saved on quit. Empty disables it.
	LayoutPath string
	// Restore loads LayoutPath on the first resize.
	Restore bool

	// Script is played once the first layout is in place.
	Script []tape.Command

	Width  int
	Height int
}

// Desktop is the application state: the dock session, both panels, the
// pointer controllers and every overlay.
type Desktop struct {
	Session  *dock.Session
	Drag     *drag.Controllers
	Repl     *ReplPanel
	Explorer *ExplorerPanel

	Runtime         pyrt.Runtime
	Config          *config.UserConfig
	KeybindRegistry *config.KeybindRegistry
	Logger          *log.Logger

	Width   int
	Height  int
	Focused dock.PanelID

	PrefixActive   bool
	LastPrefixTime time.Time

	ShowHelp         bool
	HelpScrollOffset int
	ShowLogs         bool
	LogMessages      []LogMessage
	LogScrollOffset  int
	Notifications    []Notification

	Modal    *Modal
	DockMenu *DockMenu

	// RuntimeReady is set once Boot finished.
	RuntimeReady bool
	Stats        pyrt.Stats
	HasStats     bool

	LayoutPath string
	restore    bool
	laidOut    bool

	boot    func(context.Context) error
	watcher *pyrt.Watcher
	script  []tape.Command
	tape    *tapePlayback
}

// NewDesktop builds the desktop. Panels are placed on the first resize,
// once the viewport is known.
func NewDesktop(opts Options) *Desktop {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	registry := opts.KeybindRegistry
	if registry == nil {
		registry = config.NewKeybindRegistry(cfg)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	metrics := opts.Metrics
	if metrics == (dock.Metrics{}) {
		metrics = dock.CellMetrics()
	}
	rt := opts.Runtime
	if rt == nil {
		rt = pyrt.NewMemory()
	}

	d := &Desktop{
		Repl:            NewReplPanel(),
		Explorer:        NewExplorerPanel(explorer.New(rt)),
		Runtime:         rt,
		Config:          cfg,
		KeybindRegistry: registry,
		Logger:          logger,
		Focused:         dock.REPL,
		LayoutPath:      opts.LayoutPath,
		restore:         opts.Restore,
		boot:            opts.Boot,
		watcher:         opts.Watcher,
		script:          opts.Script,
		RuntimeReady:    opts.Boot == nil && rt.Ready(),
	}
	d.Session = dock.NewSession(metrics, d.Repl, d.Explorer)
	d.Drag = drag.NewControllers(d.Session)

	if err := d.Explorer.Model.Refresh(context.Background()); err != nil {
		d.LogWarn("explorer refresh failed: %v", err)
	}
	if opts.Width > 0 && opts.Height > 0 {
		d.Resize(opts.Width, opts.Height)
	}
	return d
}

// Viewport is the area panels may occupy: the terminal minus the status line.
func (d *Desktop) Viewport() geom.Size {
	return geom.Size{W: d.Width, H: max(d.Height-config.StatusBarHeight, 0)}
}

// Resize records a terminal size change and re-lays out. The first call
// also places the panels.
func (d *Desktop) Resize(w, h int) {
	d.Width, d.Height = w, h
	d.Session.SetViewport(d.Viewport())
	if !d.laidOut {
		d.laidOut = true
		d.applyInitialLayout()
	}
}

func (d *Desktop) applyInitialLayout() {
	if d.restore && d.LayoutPath != "" {
		snap, err := config.LoadLayout(d.LayoutPath)
		switch {
		case err != nil:
			d.LogWarn("saved layout ignored: %v", err)
		case snap != nil:
			if err := d.Session.Restore(*snap); err != nil {
				d.LogWarn("saved layout ignored: %v", err)
			} else {
				d.LogInfo("restored layout from %s", d.LayoutPath)
				return
			}
		}
	}

	lc := d.Config.Layout
	d.Session.SetVisibility(dock.Explorer, d.Config.ExplorerVisibleEnabled())
	if lc.ExplorerMini {
		d.Session.ToggleMini(dock.Explorer)
	}
	for _, p := range []struct {
		id  dock.PanelID
		pos string
	}{{dock.REPL, lc.ReplDock}, {dock.Explorer, lc.ExplorerDock}} {
		pos, err := dock.ParsePosition(p.pos)
		if err != nil {
			d.LogWarn("%s: %v", p.id, err)
			continue
		}
		if err := d.Session.SetDockPosition(p.id, pos); err != nil {
			d.LogWarn("%s: %v", p.id, err)
		}
	}
}

// SaveLayout writes the current layout to LayoutPath.
func (d *Desktop) SaveLayout() error {
	if d.LayoutPath == "" || !d.laidOut {
		return nil
	}
	return config.SaveLayout(d.LayoutPath, d.Session.Snapshot())
}

// Panel returns the concrete panel for id.
func (d *Desktop) Panel(id dock.PanelID) dock.Panel {
	if id == dock.Explorer {
		return d.Explorer
	}
	return d.Repl
}

// Order returns the visible panels topmost first.
func (d *Desktop) Order() []dock.PanelID {
	ids := []dock.PanelID{d.Focused, d.Focused.Other()}
	out := ids[:0]
	for _, id := range ids {
		if d.Panel(id).Visible() {
			out = append(out, id)
		}
	}
	return out
}

// Focus raises a visible panel.
func (d *Desktop) Focus(id dock.PanelID) {
	if d.Panel(id).Visible() {
		d.Focused = id
	}
}

// FocusNext moves focus to the other panel when it is shown.
func (d *Desktop) FocusNext() {
	d.Focus(d.Focused.Other())
}

// ToggleExplorer shows or hides the explorer, focusing it when shown.
func (d *Desktop) ToggleExplorer() {
	visible := !d.Explorer.Visible()
	d.Session.SetVisibility(dock.Explorer, visible)
	if visible {
		d.Focused = dock.Explorer
	} else {
		d.Focused = dock.REPL
	}
}

// ClosePanel hides a panel. The REPL cannot be closed.
func (d *Desktop) ClosePanel(id dock.PanelID) {
	if id == dock.REPL {
		d.ShowNotification("The REPL cannot be closed", "warning", config.NotificationDuration)
		return
	}
	d.Session.Close(id)
	if d.Focused == id {
		d.Focused = id.Other()
	}
}

// DockFocused assigns the focused panel to pos.
func (d *Desktop) DockFocused(pos dock.Position) {
	if err := d.Session.SetDockPosition(d.Focused, pos); err != nil {
		d.LogError("%v", err)
		return
	}
	d.LogInfo("%s docked %s", d.Focused, pos)
}

// Log adds a new log message to the log buffer.
func (d *Desktop) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	d.LogMessages = append(d.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(d.LogMessages) > config.MaxLogMessages {
		d.LogMessages = d.LogMessages[len(d.LogMessages)-config.MaxLogMessages:]
	}

	switch level {
	case "ERROR":
		d.Logger.Error(message)
	case "WARN":
		d.Logger.Warn(message)
	default:
		d.Logger.Info(message)
	}
}

// LogInfo logs an informational message.
func (d *Desktop) LogInfo(format string, args ...any) {
	d.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (d *Desktop) LogWarn(format string, args ...any) {
	d.Log("WARN", format, args...)
}

// LogError logs an error message.
func (d *Desktop) LogError(format string, args ...any) {
	d.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification and logs it.
func (d *Desktop) ShowNotification(message, notifType string, duration time.Duration) {
	d.Notifications = append(d.Notifications, Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		d.LogError("%s", message)
	case "warning":
		d.LogWarn("%s", message)
	default:
		d.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (d *Desktop) CleanupNotifications() {
	now := time.Now()
	active := d.Notifications[:0]
	for _, n := range d.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	d.Notifications = active
}

// Cleanup releases the runtime and watcher and saves the layout.
func (d *Desktop) Cleanup() {
	if d.Config.RememberLayoutEnabled() {
		if err := d.SaveLayout(); err != nil {
			d.LogError("save layout: %v", err)
		}
	}
	if d.watcher != nil {
		_ = d.watcher.Close()
	}
	if err := d.Runtime.Close(); err != nil {
		d.LogError("close runtime: %v", err)
	}
}
