// Package pyrt is the bridge to the Python runtime behind the REPL and
// explorer panels. It exposes code execution and a small virtual
// filesystem with two roots: /tmp, which starts empty every session, and
// /persist, which survives restarts once flushed to the persistent store.
package pyrt

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Virtual filesystem roots.
const (
	PersistRoot = "/persist"
	TmpRoot     = "/tmp"
)

var (
	// ErrNotReady is returned while the interpreter is still starting.
	ErrNotReady = errors.New("runtime not ready yet")
	// ErrNotFound is returned for paths that do not exist.
	ErrNotFound = errors.New("no such file or directory")
	// ErrIsDirectory is returned when a file operation targets a directory.
	ErrIsDirectory = errors.New("is a directory")
	// ErrNotDirectory is returned when listing a file.
	ErrNotDirectory = errors.New("not a directory")
	// ErrExists is returned when creating over an existing entry.
	ErrExists = errors.New("already exists")
	// ErrOutsideRoots is returned for paths outside /persist and /tmp.
	ErrOutsideRoots = errors.New("path outside /persist and /tmp")
)

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// Output is the result of running a snippet.
type Output struct {
	Stdout string
	Stderr string
	// Traceback is set when the snippet raised.
	Traceback string
}

// Text joins the streams the way the output panel shows them.
func (o Output) Text() string {
	var parts []string
	for _, s := range []string{o.Stdout, o.Stderr, o.Traceback} {
		if s = strings.TrimRight(s, "\n"); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// Failed reports whether the snippet raised.
func (o Output) Failed() bool { return o.Traceback != "" }

// Runtime is the capability set the panels consume. Every method may block
// until the runtime answers and honours ctx.
type Runtime interface {
	Ready() bool
	Execute(ctx context.Context, code string) (Output, error)
	ListDirectory(ctx context.Context, dir string) ([]Entry, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, data []byte) error
	DeleteEntry(ctx context.Context, name string) error
	Mkdir(ctx context.Context, name string) error
	Flush(ctx context.Context) error
	Reload(ctx context.Context) error
	Wipe(ctx context.Context) error
	Close() error
}

// Clean normalises a virtual path and checks that it lies under one of the
// two roots.
func Clean(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		p = PersistRoot + "/" + p
	}
	p = path.Clean(p)
	for _, root := range []string{PersistRoot, TmpRoot} {
		if p == root || strings.HasPrefix(p, root+"/") {
			return p, nil
		}
	}
	return "", ErrOutsideRoots
}

// IsRoot reports whether p is /persist or /tmp.
func IsRoot(p string) bool { return p == PersistRoot || p == TmpRoot }

// UnderPersist reports whether p lives in the persistent root.
func UnderPersist(p string) bool {
	return p == PersistRoot || strings.HasPrefix(p, PersistRoot+"/")
}

// RootOf returns the root p lives under.
func RootOf(p string) string {
	if UnderPersist(p) {
		return PersistRoot
	}
	return TmpRoot
}

// Join appends a name to a virtual directory.
func Join(dir, name string) string {
	return path.Join(dir, name)
}

// Parent returns the parent of p, stopping at its root.
func Parent(p string) string {
	if IsRoot(p) {
		return p
	}
	return path.Dir(p)
}

// hostPath maps a cleaned virtual path onto the scratch directory.
func hostPath(base, virt string) string {
	return filepath.Join(base, filepath.FromSlash(strings.TrimPrefix(virt, "/")))
}

// SortEntries orders directories first, then by name.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}

// mapFSError turns host errors into the package sentinels.
func mapFSError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrExist):
		return ErrExists
	}
	return err
}
