package explorer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pyducation/pyducation/internal/pyrt"
)

func newModel(t *testing.T) (*Model, *pyrt.Memory) {
	t.Helper()
	rt := pyrt.NewMemory()
	ctx := context.Background()
	for p, body := range map[string]string{
		"/persist/main.py":          "print('hi')\n",
		"/persist/lib/util.py":      "X = 1\n",
		"/persist/notes/readme.txt": "notes",
		"/tmp/scratch.txt":          "tmp",
	} {
		if err := rt.WriteFile(ctx, p, []byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	m := New(rt)
	if err := m.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return m, rt
}

func names(entries []pyrt.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRefreshListsDirectoriesFirst(t *testing.T) {
	m, _ := newModel(t)
	want := []string{"Documents", "lib", "notes", "main.py"}
	if got := names(m.Entries); !equal(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}
}

func TestNavigation(t *testing.T) {
	m, _ := newModel(t)
	ctx := context.Background()

	if err := m.Up(ctx); !errors.Is(err, ErrAboveRoot) {
		t.Errorf("Up at root error = %v, want ErrAboveRoot", err)
	}
	if err := m.Open(ctx, pyrt.Entry{Name: "lib", IsDir: true}); err != nil {
		t.Fatalf("Open(lib): %v", err)
	}
	if m.Cwd != "/persist/lib" {
		t.Errorf("Cwd = %q, want /persist/lib", m.Cwd)
	}
	if got := names(m.Entries); !equal(got, []string{"util.py"}) {
		t.Errorf("Entries = %v", got)
	}
	if err := m.Up(ctx); err != nil || m.Cwd != "/persist" {
		t.Errorf("Up = %v, Cwd = %q", err, m.Cwd)
	}

	if err := m.SwitchRoot(ctx, "/tmp"); err != nil {
		t.Fatalf("SwitchRoot: %v", err)
	}
	if m.Root != "/tmp" || m.Cwd != "/tmp" {
		t.Errorf("Root/Cwd = %q/%q", m.Root, m.Cwd)
	}
	if err := m.Up(ctx); !errors.Is(err, ErrAboveRoot) {
		t.Errorf("Up at /tmp error = %v", err)
	}
	if err := m.SwitchRoot(ctx, "/etc"); !errors.Is(err, pyrt.ErrOutsideRoots) {
		t.Errorf("SwitchRoot(/etc) error = %v", err)
	}
	if m.Root != "/tmp" {
		t.Errorf("failed SwitchRoot changed Root to %q", m.Root)
	}
}

func TestOpenFileAndSave(t *testing.T) {
	m, rt := newModel(t)
	ctx := context.Background()

	if err := m.Open(ctx, pyrt.Entry{Name: "main.py"}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if m.Selected != "/persist/main.py" || m.Buffer != "print('hi')\n" || m.Dirty {
		t.Fatalf("after open: %q %q dirty=%v", m.Selected, m.Buffer, m.Dirty)
	}

	m.Edit("print('bye')\n")
	if !m.Dirty {
		t.Error("Edit should mark the buffer dirty")
	}
	msg, err := m.Save(ctx)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if msg != "[explorer] saved: /persist/main.py" {
		t.Errorf("Save message = %q", msg)
	}
	if m.Dirty {
		t.Error("Save should clear Dirty")
	}
	if rt.Flushes() != 1 {
		t.Errorf("Flushes = %d, want 1", rt.Flushes())
	}
	data, _ := rt.ReadFile(ctx, "/persist/main.py")
	if string(data) != "print('bye')\n" {
		t.Errorf("file = %q", data)
	}
}

func TestSaveUnderTmpDoesNotFlush(t *testing.T) {
	m, rt := newModel(t)
	ctx := context.Background()
	if err := m.SwitchRoot(ctx, "/tmp"); err != nil {
		t.Fatal(err)
	}
	if err := m.Open(ctx, pyrt.Entry{Name: "scratch.txt"}); err != nil {
		t.Fatal(err)
	}
	m.Edit("changed")
	if _, err := m.Save(ctx); err != nil {
		t.Fatal(err)
	}
	if rt.Flushes() != 0 {
		t.Errorf("Flushes = %d, want 0", rt.Flushes())
	}
}

func TestFailedSaveKeepsState(t *testing.T) {
	m, rt := newModel(t)
	ctx := context.Background()
	if err := m.Open(ctx, pyrt.Entry{Name: "main.py"}); err != nil {
		t.Fatal(err)
	}
	m.Edit("new")
	rt.Fail["write"] = errors.New("disk full")

	if _, err := m.Save(ctx); err == nil {
		t.Fatal("expected Save to fail")
	}
	if !m.Dirty || m.Buffer != "new" {
		t.Errorf("state changed after failed save: dirty=%v buffer=%q", m.Dirty, m.Buffer)
	}
	if got := Failure("save", errors.New("disk full")); got != "[explorer] save failed:\ndisk full" {
		t.Errorf("Failure = %q", got)
	}
}

func TestNewFileAndFolder(t *testing.T) {
	m, rt := newModel(t)
	ctx := context.Background()

	if err := m.NewFile(ctx, "lib"); !errors.Is(err, pyrt.ErrIsDirectory) {
		t.Errorf("NewFile over a directory error = %v", err)
	}
	if err := m.NewFile(ctx, "a/b"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("NewFile(a/b) error = %v", err)
	}

	if err := m.NewFile(ctx, "hello.py"); err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if m.Selected != "/persist/hello.py" || !m.Dirty || m.Buffer != "" {
		t.Errorf("after NewFile: %q dirty=%v", m.Selected, m.Dirty)
	}
	if cur, ok := m.Current(); !ok || cur.Name != "hello.py" {
		t.Errorf("Current = %+v, %v, want hello.py", cur, ok)
	}

	if err := m.NewFolder(ctx, "data"); err != nil {
		t.Fatalf("NewFolder: %v", err)
	}
	if err := m.NewFolder(ctx, "data"); !errors.Is(err, pyrt.ErrExists) {
		t.Errorf("second NewFolder error = %v", err)
	}
	want := []string{"Documents", "data", "lib", "notes", "hello.py", "main.py"}
	if got := names(m.Entries); !equal(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}
	if rt.Flushes() != 2 {
		t.Errorf("Flushes = %d, want 2", rt.Flushes())
	}
}

func TestNewFileKeepsExistingContents(t *testing.T) {
	m, rt := newModel(t)
	ctx := context.Background()

	if err := m.NewFile(ctx, "main.py"); err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if m.Selected != "/persist/main.py" || !m.Dirty || m.Buffer != "" {
		t.Errorf("after NewFile: %q dirty=%v buffer=%q", m.Selected, m.Dirty, m.Buffer)
	}
	data, err := rt.ReadFile(ctx, "/persist/main.py")
	if err != nil || string(data) != "print('hi')\n" {
		t.Errorf("main.py = %q, %v, want the original contents", data, err)
	}
	if rt.Flushes() != 0 {
		t.Errorf("Flushes = %d, want 0", rt.Flushes())
	}
}

func TestDeleteOpenFileClearsBuffer(t *testing.T) {
	m, _ := newModel(t)
	ctx := context.Background()
	if err := m.Open(ctx, pyrt.Entry{Name: "main.py"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, "main.py"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Selected != "" || m.Buffer != "" {
		t.Errorf("buffer not cleared: %q %q", m.Selected, m.Buffer)
	}
	if err := m.Delete(ctx, "lib"); err == nil {
		t.Error("deleting a non-empty directory should fail")
	}
	if got := names(m.Entries); !equal(got, []string{"Documents", "lib", "notes"}) {
		t.Errorf("Entries = %v", got)
	}
}

func TestFilter(t *testing.T) {
	m, _ := newModel(t)
	m.Cursor = 3
	m.SetFilter("mai")
	if got := names(m.Entries); !equal(got, []string{"main.py"}) {
		t.Errorf("filtered = %v, want [main.py]", got)
	}
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
	m.SetFilter("")
	if len(m.Entries) != 4 {
		t.Errorf("unfiltered len = %d, want 4", len(m.Entries))
	}
}

func TestImportExport(t *testing.T) {
	m, _ := newModel(t)
	ctx := context.Background()
	dir := t.TempDir()

	src := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(src, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := m.Import(ctx, src)
	if err != nil || p != "/persist/data.csv" {
		t.Fatalf("Import = %q, %v", p, err)
	}
	if err := m.Open(ctx, pyrt.Entry{Name: "data.csv"}); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatal(err)
	}
	host, err := m.Export(ctx, out)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if host != filepath.Join(out, "data.csv") {
		t.Errorf("Export path = %q", host)
	}
	data, err := os.ReadFile(host)
	if err != nil || string(data) != "a,b\n" {
		t.Errorf("exported = %q, %v", data, err)
	}

	if _, err := m.Import(ctx, filepath.Join(dir, "missing")); err == nil {
		t.Error("Import of a missing file should fail")
	}
}
