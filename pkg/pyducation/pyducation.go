// Package pyducation provides the pyducation desktop as a Bubble Tea model
// that can be embedded in other programs or run on its own.
//
// # Basic Usage
//
//	model := pyducation.New()
//	p := tea.NewProgram(model, pyducation.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//	model.Cleanup()
//
// Without a runtime the REPL cannot run code and files live in memory.
// Supply one with WithRuntime.
package pyducation

import (
	tea "charm.land/bubbletea/v2"

	"github.com/pyducation/pyducation/internal/app"
	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/input"
	"github.com/pyducation/pyducation/internal/pyrt"
)

// Model is the pyducation desktop. It implements tea.Model.
type Model = app.Desktop

// Runtime executes Python and serves the /persist and /tmp trees.
type Runtime = pyrt.Runtime

// Options configures a pyducation instance.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord").
	// Leave empty to use standard terminal colors.
	Theme string

	// ASCIIOnly uses ASCII characters instead of Nerd Font icons.
	ASCIIOnly bool

	// BorderStyle sets the panel border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// Runtime runs the REPL. Nil uses an in-memory runtime that is never
	// ready to execute.
	Runtime Runtime

	// Width and Height lay the panels out immediately when both are set.
	Width  int
	Height int

	// UserConfig is a custom user configuration. If nil, the config file
	// is loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring pyducation.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only mode (no Nerd Font icons).
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the panel border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithRuntime sets the Python runtime.
func WithRuntime(rt Runtime) Option {
	return func(o *Options) {
		o.Runtime = rt
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a new pyducation model with the given options.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}
	// An unknown theme is reported through the same warning as the CLI flag.
	config.ApplyOverrides(config.Overrides{
		ThemeName:   options.Theme,
		ASCIIOnly:   options.ASCIIOnly,
		BorderStyle: options.BorderStyle,
	}, userConfig)

	return app.NewDesktop(app.Options{
		Runtime:         options.Runtime,
		Config:          userConfig,
		KeybindRegistry: config.NewKeybindRegistry(userConfig),
		Width:           options.Width,
		Height:          options.Height,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// pyducation.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer motion
// unless a panel or splitter is being dragged.
//
// Usage:
//
//	p := tea.NewProgram(model, tea.WithFilter(pyducation.FilterMouseMotion))
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*Model)
	if !ok {
		return msg
	}
	if d.Drag.Busy() {
		return msg
	}
	return nil
}
