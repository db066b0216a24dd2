package pyrt

import (
	"bufio"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

//go:embed driver.py
var driverSource string

const readySentinel = "\x00PYDUCATION_READY\x00"

// StartTimeout bounds how long the interpreter may take to come up.
var StartTimeout = 15 * time.Second

type request struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

type response struct {
	ID        string `json:"id"`
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr"`
	Traceback string `json:"traceback"`
}

// Interpreter is a long-lived python child that runs one snippet at a time
// over a JSON-lines protocol.
type Interpreter struct {
	python  string
	scratch *Scratch
	logger  *log.Logger

	mu         sync.Mutex
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	responses  chan response
	exited     chan struct{}
	stderrDone chan struct{}
	ready      atomic.Bool
	pid        atomic.Int64
}

// reapTimeout bounds how long kill waits for the pipe readers, in case a
// grandchild still holds the pipes open.
const reapTimeout = 2 * time.Second

// StartInterpreter launches python against the scratch roots and waits for
// the driver to report ready.
func StartInterpreter(ctx context.Context, python string, scratch *Scratch, logger *log.Logger) (*Interpreter, error) {
	in := &Interpreter{python: python, scratch: scratch, logger: logger}
	if err := in.start(ctx); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *Interpreter) start(ctx context.Context) error {
	cmd := exec.Command(in.python, "-u", "-c", driverSource)
	cmd.Dir = in.scratch.PersistDir()
	cmd.Env = append(os.Environ(),
		"PYDUCATION_PERSIST="+in.scratch.PersistDir(),
		"PYDUCATION_TMP="+in.scratch.TmpDir(),
		"PYTHONIOENCODING=utf-8",
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", in.python, err)
	}

	in.cmd = cmd
	in.stdin = stdin
	in.responses = make(chan response, 8)
	in.exited = make(chan struct{})
	in.stderrDone = make(chan struct{})
	in.pid.Store(int64(cmd.Process.Pid))

	readyCh := make(chan struct{})
	go in.readStderr(stderr, readyCh, in.stderrDone)
	go in.readStdout(stdout, in.responses, in.exited)

	timer := time.NewTimer(StartTimeout)
	defer timer.Stop()
	select {
	case <-readyCh:
		in.ready.Store(true)
		in.logger.Debug("interpreter ready", "pid", cmd.Process.Pid)
		return nil
	case <-in.exited:
		in.kill()
		return fmt.Errorf("start %s: interpreter exited before ready", in.python)
	case <-timer.C:
		in.kill()
		return fmt.Errorf("start %s: timed out after %s", in.python, StartTimeout)
	case <-ctx.Done():
		in.kill()
		return ctx.Err()
	}
}

func (in *Interpreter) readStderr(r io.Reader, readyCh, done chan<- struct{}) {
	defer close(done)
	sc := bufio.NewScanner(r)
	signalled := false
	for sc.Scan() {
		line := sc.Text()
		if !signalled && strings.Contains(line, readySentinel) {
			signalled = true
			close(readyCh)
			continue
		}
		in.logger.Debug("interpreter stderr", "line", line)
	}
}

func (in *Interpreter) readStdout(r io.Reader, out chan<- response, exited chan<- struct{}) {
	defer close(exited)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		var resp response
		if err := json.Unmarshal(sc.Bytes(), &resp); err != nil {
			in.logger.Warn("interpreter sent garbage", "err", err)
			continue
		}
		out <- resp
	}
}

// Ready reports whether the interpreter accepts snippets.
func (in *Interpreter) Ready() bool { return in.ready.Load() }

// PID returns the process id of the interpreter, or 0. It does not wait for
// a running snippet.
func (in *Interpreter) PID() int { return int(in.pid.Load()) }

// Execute runs code and waits for its output. When ctx ends first the
// interpreter is restarted, losing its globals.
func (in *Interpreter) Execute(ctx context.Context, code string) (Output, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.ready.Load() {
		return Output{}, ErrNotReady
	}
	req := request{ID: uuid.New().String(), Code: code}
	line, err := json.Marshal(req)
	if err != nil {
		return Output{}, err
	}
	if _, err := in.stdin.Write(append(line, '\n')); err != nil {
		return Output{}, in.restartAfter(fmt.Errorf("send snippet: %w", err))
	}

	for {
		select {
		case resp := <-in.responses:
			if resp.ID != req.ID {
				in.logger.Warn("dropping stale response", "id", resp.ID)
				continue
			}
			return Output{Stdout: resp.Stdout, Stderr: resp.Stderr, Traceback: resp.Traceback}, nil
		case <-in.exited:
			return Output{}, in.restartAfter(errors.New("interpreter exited"))
		case <-ctx.Done():
			return Output{}, in.restartAfter(fmt.Errorf("execution interrupted: %w", ctx.Err()))
		}
	}
}

// restartAfter replaces a dead or stuck interpreter and returns cause,
// annotated when the restart itself fails.
func (in *Interpreter) restartAfter(cause error) error {
	in.kill()
	if err := in.start(context.Background()); err != nil {
		return fmt.Errorf("%w (restart failed: %v)", cause, err)
	}
	return fmt.Errorf("%w; interpreter restarted", cause)
}

// kill stops the child and reaps it once both pipe readers are done, since
// Wait closes the pipes under them.
func (in *Interpreter) kill() {
	in.ready.Store(false)
	in.pid.Store(0)
	if in.cmd == nil || in.cmd.Process == nil {
		return
	}
	_ = in.stdin.Close()
	_ = in.cmd.Process.Kill()

	timer := time.NewTimer(reapTimeout)
	defer timer.Stop()
	stdoutDone, stderrDone := in.exited, in.stderrDone
	for stdoutDone != nil || stderrDone != nil {
		select {
		case <-in.responses:
		case <-stdoutDone:
			stdoutDone = nil
		case <-stderrDone:
			stderrDone = nil
		case <-timer.C:
			in.logger.Warn("interpreter pipes still open after kill")
			stdoutDone, stderrDone = nil, nil
		}
	}
	_ = in.cmd.Wait()
}

// Close stops the interpreter.
func (in *Interpreter) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.kill()
	in.cmd = nil
	return nil
}
