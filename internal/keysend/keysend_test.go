package keysend

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		target string
		want   string
		ok     bool
	}{
		{target: "F13", want: "f13", ok: true},
		{target: " f24 ", want: "f24", ok: true},
		{target: "volume mute key", want: "volume mute", ok: true},
		{target: "Play/Pause Media", want: "play/pause media", ok: true},
		{target: "F25", ok: false},
		{target: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			k, ok := lookup(tt.target)
			if ok != tt.ok {
				t.Fatalf("lookup(%q) ok = %v, want %v", tt.target, ok, tt.ok)
			}
			if ok && k.name != tt.want {
				t.Errorf("lookup(%q) = %q, want %q", tt.target, k.name, tt.want)
			}
		})
	}
}

func TestTargetsAreUniqueAndKnown(t *testing.T) {
	seen := make(map[string]bool)
	vks := make(map[uint16]bool)
	for _, name := range Targets() {
		if seen[name] {
			t.Errorf("duplicate target %q", name)
		}
		seen[name] = true
		if !IsKnown(name) {
			t.Errorf("listed target %q is not known", name)
		}
		k, _ := lookup(name)
		if vks[k.vk] {
			t.Errorf("virtual key %#x used twice", k.vk)
		}
		vks[k.vk] = true
	}
	if len(seen) != 42 {
		t.Errorf("got %d targets, want 42 (F1-F24 plus 18 browser/media keys)", len(seen))
	}
}

func TestPressUnknownTarget(t *testing.T) {
	err := NewSender(nil).Press("hyper")
	if !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("Press() error = %v, want ErrUnknownTarget", err)
	}
}
