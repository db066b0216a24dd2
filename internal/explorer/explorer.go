// Package explorer is the file browser behind the explorer panel. It walks
// the runtime's virtual filesystem, keeps one open file in an edit buffer and
// saves it back, flushing the persistent root after every change there.
//
// Every operation either succeeds or leaves the model untouched.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyducation/pyducation/internal/pyrt"
	"github.com/sahilm/fuzzy"
)

var (
	// ErrAboveRoot is returned by Up at the top of a root.
	ErrAboveRoot = errors.New("already at the root")
	// ErrNoSelection is returned when no file is open.
	ErrNoSelection = errors.New("no file selected")
	// ErrInvalidName is returned for empty names or names containing a slash.
	ErrInvalidName = errors.New("invalid name")
)

// Model is the explorer state.
type Model struct {
	rt pyrt.Runtime

	Root string
	Cwd  string
	// Selected is the path of the file loaded into Buffer.
	Selected string
	Buffer   string
	Dirty    bool
	Filter   string
	// Cursor indexes Entries.
	Cursor int
	// Entries is the filtered listing of Cwd.
	Entries []pyrt.Entry

	all []pyrt.Entry
}

// New returns a model rooted at /persist. Call Refresh to populate it.
func New(rt pyrt.Runtime) *Model {
	return &Model{rt: rt, Root: pyrt.PersistRoot, Cwd: pyrt.PersistRoot}
}

// Failure formats an error the way the output panel reports it.
func Failure(op string, err error) string {
	return fmt.Sprintf("[explorer] %s failed:\n%v", op, err)
}

// Refresh re-reads the current directory.
func (m *Model) Refresh(ctx context.Context) error {
	entries, err := m.rt.ListDirectory(ctx, m.Cwd)
	if err != nil {
		return err
	}
	m.setListing(m.Cwd, entries)
	return nil
}

func (m *Model) setListing(dir string, entries []pyrt.Entry) {
	if dir != m.Cwd {
		m.Filter = ""
		m.Cursor = 0
	}
	m.Cwd = dir
	m.all = entries
	m.applyFilter()
}

// SetFilter narrows Entries to names fuzzily matching q.
func (m *Model) SetFilter(q string) {
	m.Filter = q
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.Filter == "" {
		m.Entries = m.all
	} else {
		names := make([]string, len(m.all))
		for i, e := range m.all {
			names[i] = e.Name
		}
		matches := fuzzy.Find(m.Filter, names)
		m.Entries = make([]pyrt.Entry, 0, len(matches))
		for _, match := range matches {
			m.Entries = append(m.Entries, m.all[match.Index])
		}
	}
	if m.Cursor >= len(m.Entries) {
		m.Cursor = len(m.Entries) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// MoveCursor moves the highlight by delta, clamped to the listing.
func (m *Model) MoveCursor(delta int) {
	m.Cursor += delta
	if m.Cursor >= len(m.Entries) {
		m.Cursor = len(m.Entries) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// Current returns the highlighted entry.
func (m *Model) Current() (pyrt.Entry, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Entries) {
		return pyrt.Entry{}, false
	}
	return m.Entries[m.Cursor], true
}

// Open enters a directory or loads a file into the buffer, discarding any
// unsaved edits. Callers confirm with the user first when Dirty is set.
func (m *Model) Open(ctx context.Context, e pyrt.Entry) error {
	p := pyrt.Join(m.Cwd, e.Name)
	if e.IsDir {
		entries, err := m.rt.ListDirectory(ctx, p)
		if err != nil {
			return err
		}
		m.setListing(p, entries)
		return nil
	}
	data, err := m.rt.ReadFile(ctx, p)
	if err != nil {
		return err
	}
	m.Selected = p
	m.Buffer = string(data)
	m.Dirty = false
	return nil
}

// Up moves to the parent directory, never above Root.
func (m *Model) Up(ctx context.Context) error {
	if m.Cwd == m.Root {
		return ErrAboveRoot
	}
	parent := pyrt.Parent(m.Cwd)
	entries, err := m.rt.ListDirectory(ctx, parent)
	if err != nil {
		return err
	}
	m.setListing(parent, entries)
	return nil
}

// SwitchRoot jumps to /persist or /tmp.
func (m *Model) SwitchRoot(ctx context.Context, root string) error {
	if !pyrt.IsRoot(root) {
		return fmt.Errorf("%s: %w", root, pyrt.ErrOutsideRoots)
	}
	entries, err := m.rt.ListDirectory(ctx, root)
	if err != nil {
		return err
	}
	m.Root = root
	m.setListing(root, entries)
	return nil
}

// NewFile creates an empty file in Cwd and opens it for editing. An existing
// file keeps its contents on disk until the buffer is saved.
func (m *Model) NewFile(ctx context.Context, name string) error {
	p, err := m.child(name)
	if err != nil {
		return err
	}
	exists := false
	for _, e := range m.all {
		if e.Name != name {
			continue
		}
		if e.IsDir {
			return fmt.Errorf("%s: %w", p, pyrt.ErrIsDirectory)
		}
		exists = true
	}
	if !exists {
		if err := m.rt.WriteFile(ctx, p, nil); err != nil {
			return err
		}
		if err := m.flushIfPersistent(ctx, p); err != nil {
			return err
		}
	}
	m.Selected = p
	m.Buffer = ""
	m.Dirty = true
	m.refreshAfterChange(ctx, name)
	return nil
}

// NewFolder creates a directory in Cwd.
func (m *Model) NewFolder(ctx context.Context, name string) error {
	p, err := m.child(name)
	if err != nil {
		return err
	}
	if err := m.rt.Mkdir(ctx, p); err != nil {
		return err
	}
	if err := m.flushIfPersistent(ctx, p); err != nil {
		return err
	}
	m.refreshAfterChange(ctx, name)
	return nil
}

// Edit replaces the buffer contents.
func (m *Model) Edit(text string) {
	if m.Selected == "" || text == m.Buffer {
		return
	}
	m.Buffer = text
	m.Dirty = true
}

// Save writes the buffer back and returns the message to show.
func (m *Model) Save(ctx context.Context) (string, error) {
	if m.Selected == "" {
		return "", ErrNoSelection
	}
	if err := m.rt.WriteFile(ctx, m.Selected, []byte(m.Buffer)); err != nil {
		return "", err
	}
	if err := m.flushIfPersistent(ctx, m.Selected); err != nil {
		return "", err
	}
	m.Dirty = false
	m.refreshAfterChange(ctx, "")
	return "[explorer] saved: " + m.Selected, nil
}

// Delete removes a file or empty directory from Cwd. Deleting the open file
// clears the buffer.
func (m *Model) Delete(ctx context.Context, name string) error {
	p, err := m.child(name)
	if err != nil {
		return err
	}
	if err := m.rt.DeleteEntry(ctx, p); err != nil {
		return err
	}
	if err := m.flushIfPersistent(ctx, p); err != nil {
		return err
	}
	if m.Selected == p {
		m.Selected, m.Buffer, m.Dirty = "", "", false
	}
	m.refreshAfterChange(ctx, "")
	return nil
}

// Import copies a host file into Cwd under its base name and returns the
// virtual path it was written to.
func (m *Model) Import(ctx context.Context, hostPath string) (string, error) {
	data, err := os.ReadFile(hostPath)
	if err != nil {
		return "", err
	}
	name := filepath.Base(hostPath)
	p, err := m.child(name)
	if err != nil {
		return "", err
	}
	if err := m.rt.WriteFile(ctx, p, data); err != nil {
		return "", err
	}
	if err := m.flushIfPersistent(ctx, p); err != nil {
		return "", err
	}
	m.refreshAfterChange(ctx, name)
	return p, nil
}

// Export writes the open file to the host. A directory target receives the
// file under its own name. It returns the host path written.
func (m *Model) Export(ctx context.Context, hostPath string) (string, error) {
	if m.Selected == "" {
		return "", ErrNoSelection
	}
	data, err := m.rt.ReadFile(ctx, m.Selected)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(hostPath); err == nil && info.IsDir() {
		hostPath = filepath.Join(hostPath, pathBase(m.Selected))
	}
	if err := os.WriteFile(hostPath, data, 0o644); err != nil {
		return "", err
	}
	return hostPath, nil
}

func (m *Model) child(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return pyrt.Join(m.Cwd, name), nil
}

func (m *Model) flushIfPersistent(ctx context.Context, p string) error {
	if !pyrt.UnderPersist(p) {
		return nil
	}
	return m.rt.Flush(ctx)
}

// refreshAfterChange re-lists Cwd after a successful mutation and highlights
// name when given. A failed listing keeps the stale one.
func (m *Model) refreshAfterChange(ctx context.Context, name string) {
	if err := m.Refresh(ctx); err != nil {
		return
	}
	if name == "" {
		return
	}
	for i, e := range m.Entries {
		if e.Name == name {
			m.Cursor = i
			return
		}
	}
}

func pathBase(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
