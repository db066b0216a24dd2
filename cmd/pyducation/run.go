package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"

	"github.com/pyducation/pyducation/internal/app"
	"github.com/pyducation/pyducation/internal/config"
	"github.com/pyducation/pyducation/internal/input"
	"github.com/pyducation/pyducation/internal/pyrt"
	"github.com/pyducation/pyducation/internal/tape"
	"github.com/pyducation/pyducation/pkg/pyducation"
)

// newLogger returns the debug logger. Without --debug everything is dropped;
// the TUI owns the terminal, so the log never goes to stderr.
func newLogger() (*log.Logger, func(), error) {
	if !debugMode {
		return log.New(io.Discard), func() {}, nil
	}
	path, err := xdg.StateFile("pyducation/debug.log")
	if err != nil {
		return nil, nil, fmt.Errorf("debug log path: %w", err)
	}
	// #nosec G304 - path comes from the XDG state directory
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "pyducation",
	})
	return logger, func() { _ = f.Close() }, nil
}

// openRuntime opens the python runtime, falling back to the in-memory one
// when /persist cannot be restored.
func openRuntime(ctx context.Context, cfg *config.UserConfig, logger *log.Logger) (pyrt.Runtime, func(context.Context) error, *pyrt.Watcher, error) {
	storePath, err := cfg.StorePath()
	if err != nil {
		return nil, nil, nil, err
	}
	py, err := pyrt.Open(ctx, pyrt.Options{
		Python:      cfg.Runtime.Python,
		StorePath:   storePath,
		ExecTimeout: cfg.ExecTimeoutDuration(),
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	w, err := pyrt.Watch(py.Base, config.WatchDebounce, logger)
	if err != nil {
		logger.Warn("file watching disabled", "err", err)
		w = nil
	}
	return py, py.Boot, w, nil
}

func loadScript(path string) ([]tape.Command, error) {
	if path == "" {
		return nil, nil
	}
	// #nosec G304 - the script path is given on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	cmds, err := tape.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

func runLocal() error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:   asciiOnly,
		BorderStyle: borderStyle,
		ThemeName:   themeName,
		Python:      pythonBin,
		PersistDir:  persistDir,
		NoRestore:   noRestore,
	}, userConfig)

	script, err := loadScript(scriptPath)
	if err != nil {
		return err
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				logger.Warn("failed to close CPU profile file", "err", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	app.SetInputHandler(input.HandleInput)

	opts := app.Options{
		Config:          userConfig,
		KeybindRegistry: config.NewKeybindRegistry(userConfig),
		Logger:          logger,
		Restore:         userConfig.RememberLayoutEnabled(),
		Script:          script,
	}
	if userConfig.RememberLayoutEnabled() {
		if path, err := config.LayoutStatePath(); err == nil {
			opts.LayoutPath = path
		} else {
			logger.Warn("layout will not be saved", "err", err)
		}
	}

	rt, boot, watcher, rtErr := openRuntime(context.Background(), userConfig, logger)
	if rtErr != nil {
		logger.Error("python runtime unavailable", "err", rtErr)
		rt = pyrt.NewMemory()
	} else {
		opts.Boot = boot
		opts.Watcher = watcher
	}
	opts.Runtime = rt

	desktop := app.NewDesktop(opts)
	if rtErr != nil {
		desktop.LogError("python runtime unavailable, files are kept in memory: %v", rtErr)
		desktop.ShowNotification("Python unavailable: files are not saved", "error", config.NotificationDuration*3)
	}
	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting", "config", configPath, "layout", opts.LayoutPath)
	}

	p := tea.NewProgram(
		desktop,
		append(pyducation.ProgramOptions(),
			tea.WithoutSignalHandler(),
			tea.WithFilter(pyducation.FilterMouseMotion),
		)...,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if final, ok := finalModel.(*app.Desktop); ok {
		final.Cleanup()
	} else {
		desktop.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
