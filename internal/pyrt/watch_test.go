package pyrt

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWatcherReportsNestedChanges(t *testing.T) {
	root := t.TempDir()
	w, err := Watch(root, 20*time.Millisecond, log.New(io.Discard))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for a new file")
	}

	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for a new directory")
	}

	// The new directory is watched too.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "b.txt"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported inside a new directory")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestProcessStatsSelf(t *testing.T) {
	st, err := ProcessStats(os.Getpid())
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	if st.PID != os.Getpid() || st.RSS == 0 {
		t.Errorf("ProcessStats = %+v", st)
	}
}
