package config

import (
	"errors"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"ctrl+b", "ctrl+b", false},
		{"Shift+Ctrl+Tab", "ctrl+shift+tab", false},
		{"opt+h", "alt+h", false},
		{"W", "W", false},
		{"Enter", "enter", false},
		{"+", "+", false},
		{"ctrl+", "", true},
		{"hyper+x", "", true},
		{"  ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeKey(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("NormalizeKey(%q) error = %v, want ErrInvalidKey", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestKeybindRegistry(t *testing.T) {
	r := NewKeybindRegistry(DefaultConfig())

	if !r.IsLeader("ctrl+b") || r.IsLeader("ctrl+a") {
		t.Error("leader should be ctrl+b")
	}
	tests := []struct {
		key    string
		action string
	}{
		{"h", ActionDockLeft},
		{"N", ActionDockBottomRight},
		{"n", ActionDockRightBottom},
		{"tab", ActionFocusNext},
		{"W", ActionWipe},
		{"f", ActionFloat},
	}
	for _, tt := range tests {
		if got, ok := r.PrefixAction(tt.key); !ok || got != tt.action {
			t.Errorf("PrefixAction(%q) = %q, %v, want %q", tt.key, got, ok, tt.action)
		}
	}
	if _, ok := r.PrefixAction("Z"); ok {
		t.Error("Z should be unbound")
	}
	if got, ok := r.DirectAction("ctrl+q"); !ok || got != ActionQuit {
		t.Errorf("DirectAction(ctrl+q) = %q, %v", got, ok)
	}
	if got := r.GetKeysForDisplay(ActionFocusNext); got != "tab, o" {
		t.Errorf("GetKeysForDisplay = %q, want the prefix keys only", got)
	}
	if got := r.GetDirectKeysForDisplay(ActionFocusNext); got != "f2" {
		t.Errorf("GetDirectKeysForDisplay = %q, want f2", got)
	}
	if got := r.GetKeysForDisplay(ActionQuit); got != "q" {
		t.Errorf("GetKeysForDisplay(quit) = %q, want q", got)
	}
}

func TestGetKeybindingsSections(t *testing.T) {
	sections := GetKeybindings(nil)
	if len(sections) == 0 || sections[0].Title != "DOCKING" {
		t.Fatalf("first section = %+v", sections)
	}
	if len(sections[0].Bindings) != 13 {
		t.Errorf("DOCKING bindings = %d, want 13", len(sections[0].Bindings))
	}
	for _, sec := range sections {
		for _, b := range sec.Bindings {
			if b.Description == "Focus other panel" && (b.Key != "tab, o" || b.Direct != "f2") {
				t.Errorf("focus binding = %+v, want prefix keys and direct keys apart", b)
			}
		}
	}
}
