package hotkey

import (
	"fmt"
	"strings"
)

// Modifier and Key hold the platform codes the hotkey library expects
// (X11 masks and keysyms, Win32 MOD_* and virtual keys, Carbon flags and
// kVK codes). The legacy backend converts them to the library's types.
type (
	Modifier uint32
	Key      uint32
)

// Chord is a parsed hotkey.
type Chord struct {
	Modifiers []Modifier
	Key       Key
}

// ParseChord converts chord text (e.g. "ctrl+alt+v") into platform codes.
// Modifier names are mapped per OS by modifierFor.
func ParseChord(chord string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")

	// Get the key (last part)
	keyStr := parts[len(parts)-1]
	key, exists := keyCodes[keyStr]
	if !exists {
		return Chord{}, &UnknownKeyError{Key: keyStr}
	}

	var modifiers []Modifier
	for _, part := range parts[:len(parts)-1] {
		mod, ok := modifierFor(part)
		if !ok {
			return Chord{}, &UnknownKeyError{Key: part, Modifier: true}
		}
		modifiers = append(modifiers, mod)
	}

	return Chord{Modifiers: modifiers, Key: key}, nil
}

func addRange(m map[string]Key, from, to rune, base Key) {
	for r := from; r <= to; r++ {
		m[string(r)] = base + Key(r-from)
	}
}

func addFunctionKeys(m map[string]Key, n int, f1 Key) {
	for i := 0; i < n; i++ {
		m[fmt.Sprintf("f%d", i+1)] = f1 + Key(i)
	}
}
