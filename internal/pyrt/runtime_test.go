package pyrt

import (
	"errors"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"/persist", "/persist", nil},
		{"/persist/a/../b.py", "/persist/b.py", nil},
		{"notes.txt", "/persist/notes.txt", nil},
		{"/tmp/x/", "/tmp/x", nil},
		{"/persist/../etc/passwd", "", ErrOutsideRoots},
		{"/persistent", "", ErrOutsideRoots},
		{"/", "", ErrOutsideRoots},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Clean(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Clean(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParentStopsAtRoot(t *testing.T) {
	if got := Parent("/persist/a/b"); got != "/persist/a" {
		t.Errorf("Parent = %q", got)
	}
	if got := Parent("/tmp"); got != "/tmp" {
		t.Errorf("Parent(/tmp) = %q, want /tmp", got)
	}
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{{Name: "b.py"}, {Name: "z", IsDir: true}, {Name: "a.txt"}, {Name: "docs", IsDir: true}}
	SortEntries(entries)
	want := []string{"docs", "z", "a.txt", "b.py"}
	for i, e := range entries {
		if e.Name != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Name, want[i])
		}
	}
}

func TestOutputText(t *testing.T) {
	out := Output{Stdout: "hello\n", Traceback: "Traceback...\nValueError\n"}
	if got, want := out.Text(), "hello\nTraceback...\nValueError"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if !out.Failed() {
		t.Error("Failed() = false, want true")
	}
}
