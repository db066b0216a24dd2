package pyrt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Scratch is the host directory holding both virtual roots.
type Scratch struct {
	Base string
}

// NewScratch creates base/persist and base/tmp, emptying tmp.
func NewScratch(base string) (*Scratch, error) {
	if err := os.RemoveAll(filepath.Join(base, "tmp")); err != nil {
		return nil, fmt.Errorf("reset tmp: %w", err)
	}
	for _, dir := range []string{"persist", "tmp"} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create scratch: %w", err)
		}
	}
	return &Scratch{Base: base}, nil
}

// Host returns the host path of a virtual path.
func (s *Scratch) Host(virt string) (string, error) {
	clean, err := Clean(virt)
	if err != nil {
		return "", err
	}
	return hostPath(s.Base, clean), nil
}

// PersistDir is the host directory behind /persist.
func (s *Scratch) PersistDir() string { return filepath.Join(s.Base, "persist") }

// TmpDir is the host directory behind /tmp.
func (s *Scratch) TmpDir() string { return filepath.Join(s.Base, "tmp") }

func (s *Scratch) ListDirectory(_ context.Context, dir string) ([]Entry, error) {
	host, err := s.Host(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(host)
	if err != nil {
		return nil, mapFSError(err)
	}
	if !info.IsDir() {
		return nil, ErrNotDirectory
	}
	des, err := os.ReadDir(host)
	if err != nil {
		return nil, mapFSError(err)
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	SortEntries(entries)
	return entries, nil
}

func (s *Scratch) ReadFile(_ context.Context, name string) ([]byte, error) {
	host, err := s.Host(name)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(host); err == nil && info.IsDir() {
		return nil, ErrIsDirectory
	}
	data, err := os.ReadFile(host)
	return data, mapFSError(err)
}

// WriteFile creates missing parent directories, like write_text does.
func (s *Scratch) WriteFile(_ context.Context, name string, data []byte) error {
	host, err := s.Host(name)
	if err != nil {
		return err
	}
	if info, err := os.Stat(host); err == nil && info.IsDir() {
		return ErrIsDirectory
	}
	if err := os.MkdirAll(filepath.Dir(host), 0o755); err != nil {
		return mapFSError(err)
	}
	return mapFSError(os.WriteFile(host, data, 0o644))
}

// DeleteEntry removes a file or an empty directory. Roots cannot be removed.
func (s *Scratch) DeleteEntry(_ context.Context, name string) error {
	clean, err := Clean(name)
	if err != nil {
		return err
	}
	if IsRoot(clean) {
		return fmt.Errorf("delete %s: cannot remove a root", clean)
	}
	return mapFSError(os.Remove(hostPath(s.Base, clean)))
}

func (s *Scratch) Mkdir(_ context.Context, name string) error {
	host, err := s.Host(name)
	if err != nil {
		return err
	}
	return mapFSError(os.Mkdir(host, 0o755))
}

// clearDir removes everything inside dir but keeps dir itself.
func clearDir(dir string) error {
	des, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, de := range des {
		if err := os.RemoveAll(filepath.Join(dir, de.Name())); err != nil {
			return err
		}
	}
	return nil
}
