package pyrt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Options configures a Python runtime.
type Options struct {
	// Python is the interpreter binary. Defaults to "python3".
	Python string
	// StorePath is the SQLite file holding /persist.
	StorePath string
	// ScratchDir hosts both roots. A temporary directory is used when empty
	// and removed on Close.
	ScratchDir string
	// ExecTimeout bounds a single snippet. Zero means no limit.
	ExecTimeout time.Duration
	Logger      *log.Logger
}

// Python is the Runtime backed by a local python interpreter. File
// operations work as soon as Open returns; Execute waits for Boot.
type Python struct {
	*Scratch

	opts        Options
	store       *Store
	ownsScratch bool
	logger      *log.Logger

	mu     sync.Mutex
	interp *Interpreter
}

var _ Runtime = (*Python)(nil)

// Open prepares the scratch roots and restores /persist from the store. A
// fresh store seeds /persist/Documents.
func Open(ctx context.Context, opts Options) (*Python, error) {
	if opts.Python == "" {
		opts.Python = "python3"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	base := opts.ScratchDir
	owns := false
	if base == "" {
		dir, err := os.MkdirTemp("", "pyducation-*")
		if err != nil {
			return nil, fmt.Errorf("create scratch: %w", err)
		}
		base, owns = dir, true
	}
	sc, err := NewScratch(base)
	if err != nil {
		return nil, err
	}
	store, err := OpenStore(opts.StorePath, logger)
	if err != nil {
		return nil, err
	}

	empty, err := store.Empty(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("inspect store: %w", err)
	}
	if empty {
		err = os.MkdirAll(filepath.Join(sc.PersistDir(), "Documents"), 0o755)
	} else {
		err = store.Load(ctx, sc.PersistDir())
	}
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("restore /persist: %w", err)
	}

	return &Python{
		Scratch:     sc,
		opts:        opts,
		store:       store,
		ownsScratch: owns,
		logger:      logger,
	}, nil
}

// Boot starts the interpreter. It is safe to call from a goroutine while the
// filesystem is already in use.
func (p *Python) Boot(ctx context.Context) error {
	if _, err := exec.LookPath(p.opts.Python); err != nil {
		return fmt.Errorf("python interpreter %q not found: %w", p.opts.Python, err)
	}
	interp, err := StartInterpreter(ctx, p.opts.Python, p.Scratch, p.logger)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.interp = interp
	p.mu.Unlock()
	return nil
}

func (p *Python) interpreter() *Interpreter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interp
}

// Ready reports whether Boot has completed.
func (p *Python) Ready() bool {
	in := p.interpreter()
	return in != nil && in.Ready()
}

// Execute runs code in the shared interpreter namespace.
func (p *Python) Execute(ctx context.Context, code string) (Output, error) {
	in := p.interpreter()
	if in == nil {
		return Output{}, ErrNotReady
	}
	if p.opts.ExecTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.ExecTimeout)
		defer cancel()
	}
	return in.Execute(ctx, code)
}

// Flush writes /persist to the store.
func (p *Python) Flush(ctx context.Context) error {
	return p.store.Save(ctx, p.PersistDir())
}

// Reload replaces /persist with the stored copy.
func (p *Python) Reload(ctx context.Context) error {
	return p.store.Load(ctx, p.PersistDir())
}

// Wipe empties /persist and flushes the empty tree.
func (p *Python) Wipe(ctx context.Context) error {
	if err := clearDir(p.PersistDir()); err != nil {
		return err
	}
	return p.store.Wipe(ctx)
}

// Stats samples the interpreter process.
func (p *Python) Stats() (Stats, error) {
	in := p.interpreter()
	if in == nil {
		return Stats{}, ErrNotReady
	}
	return ProcessStats(in.PID())
}

// Close stops the interpreter, closes the store and removes an owned scratch
// directory.
func (p *Python) Close() error {
	var g errgroup.Group
	if in := p.interpreter(); in != nil {
		g.Go(in.Close)
	}
	g.Go(p.store.Close)
	err := g.Wait()
	if p.ownsScratch {
		if rmErr := os.RemoveAll(p.Base); err == nil {
			err = rmErr
		}
	}
	return err
}
