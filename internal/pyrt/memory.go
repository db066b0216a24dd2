package pyrt

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
)

// Memory is an in-process Runtime with no interpreter. It backs the desktop
// when python is unavailable and stands in for Python in tests.
type Memory struct {
	mu      sync.Mutex
	files   map[string][]byte
	dirs    map[string]bool
	stored  map[string][]byte
	sdirs   map[string]bool
	ready   bool
	flushes int

	// Exec, when set, answers Execute.
	Exec func(code string) (Output, error)
	// Fail makes the named operation ("write", "read", "delete", "list",
	// "mkdir", "flush", "reload", "wipe", "exec") return the error.
	Fail map[string]error
}

var _ Runtime = (*Memory)(nil)

// NewMemory returns an empty runtime with both roots and /persist/Documents.
func NewMemory() *Memory {
	m := &Memory{
		files: map[string][]byte{},
		dirs:  map[string]bool{PersistRoot: true, TmpRoot: true, PersistRoot + "/Documents": true},
		Fail:  map[string]error{},
	}
	m.stored, m.sdirs = m.snapshot()
	return m
}

// SetReady toggles whether Execute is accepted.
func (m *Memory) SetReady(ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = ready
}

// Flushes returns how many times Flush succeeded.
func (m *Memory) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

func (m *Memory) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

func (m *Memory) fail(op string) error {
	if err := m.Fail[op]; err != nil {
		return err
	}
	return nil
}

func (m *Memory) Execute(_ context.Context, code string) (Output, error) {
	m.mu.Lock()
	ready, exec := m.ready, m.Exec
	err := m.fail("exec")
	m.mu.Unlock()
	if !ready {
		return Output{}, ErrNotReady
	}
	if err != nil {
		return Output{}, err
	}
	if exec == nil {
		return Output{}, fmt.Errorf("no interpreter available")
	}
	return exec(code)
}

func (m *Memory) ListDirectory(_ context.Context, dir string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list"); err != nil {
		return nil, err
	}
	dir, err := Clean(dir)
	if err != nil {
		return nil, err
	}
	if !m.dirs[dir] {
		if _, ok := m.files[dir]; ok {
			return nil, ErrNotDirectory
		}
		return nil, ErrNotFound
	}
	var entries []Entry
	for d := range m.dirs {
		if path.Dir(d) == dir && d != dir {
			entries = append(entries, Entry{Name: path.Base(d), IsDir: true})
		}
	}
	for f := range m.files {
		if path.Dir(f) == dir {
			entries = append(entries, Entry{Name: path.Base(f)})
		}
	}
	SortEntries(entries)
	return entries, nil
}

func (m *Memory) ReadFile(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("read"); err != nil {
		return nil, err
	}
	name, err := Clean(name)
	if err != nil {
		return nil, err
	}
	if m.dirs[name] {
		return nil, ErrIsDirectory
	}
	data, ok := m.files[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) WriteFile(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("write"); err != nil {
		return err
	}
	name, err := Clean(name)
	if err != nil {
		return err
	}
	if m.dirs[name] {
		return ErrIsDirectory
	}
	for d := path.Dir(name); !IsRoot(d) && d != "/"; d = path.Dir(d) {
		m.dirs[d] = true
	}
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) DeleteEntry(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete"); err != nil {
		return err
	}
	name, err := Clean(name)
	if err != nil {
		return err
	}
	if IsRoot(name) {
		return fmt.Errorf("delete %s: cannot remove a root", name)
	}
	if _, ok := m.files[name]; ok {
		delete(m.files, name)
		return nil
	}
	if !m.dirs[name] {
		return ErrNotFound
	}
	for p := range m.files {
		if strings.HasPrefix(p, name+"/") {
			return fmt.Errorf("delete %s: directory not empty", name)
		}
	}
	for d := range m.dirs {
		if strings.HasPrefix(d, name+"/") {
			return fmt.Errorf("delete %s: directory not empty", name)
		}
	}
	delete(m.dirs, name)
	return nil
}

func (m *Memory) Mkdir(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("mkdir"); err != nil {
		return err
	}
	name, err := Clean(name)
	if err != nil {
		return err
	}
	if _, ok := m.files[name]; ok || m.dirs[name] {
		return ErrExists
	}
	if !m.dirs[path.Dir(name)] {
		return ErrNotFound
	}
	m.dirs[name] = true
	return nil
}

func (m *Memory) Flush(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("flush"); err != nil {
		return err
	}
	m.stored, m.sdirs = m.snapshot()
	m.flushes++
	return nil
}

func (m *Memory) Reload(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("reload"); err != nil {
		return err
	}
	for p := range m.files {
		if UnderPersist(p) {
			delete(m.files, p)
		}
	}
	for d := range m.dirs {
		if UnderPersist(d) && d != PersistRoot {
			delete(m.dirs, d)
		}
	}
	for p, data := range m.stored {
		m.files[p] = append([]byte(nil), data...)
	}
	for d := range m.sdirs {
		m.dirs[d] = true
	}
	return nil
}

func (m *Memory) Wipe(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("wipe"); err != nil {
		return err
	}
	for p := range m.files {
		if UnderPersist(p) {
			delete(m.files, p)
		}
	}
	for d := range m.dirs {
		if UnderPersist(d) && d != PersistRoot {
			delete(m.dirs, d)
		}
	}
	m.stored, m.sdirs = map[string][]byte{}, map[string]bool{}
	return nil
}

func (m *Memory) Close() error { return nil }

// snapshot copies the /persist part of the tree. Callers hold mu.
func (m *Memory) snapshot() (map[string][]byte, map[string]bool) {
	files := map[string][]byte{}
	dirs := map[string]bool{}
	for p, data := range m.files {
		if UnderPersist(p) {
			files[p] = append([]byte(nil), data...)
		}
	}
	for d := range m.dirs {
		if UnderPersist(d) && d != PersistRoot {
			dirs[d] = true
		}
	}
	return files, dirs
}
