//go:build windows

package hotkey

// RegisterHotKey modifier flags.
const (
	modAlt   Modifier = 0x1
	modCtrl  Modifier = 0x2
	modShift Modifier = 0x4
	modWin   Modifier = 0x8
)

func modifierFor(name string) (Modifier, bool) {
	switch name {
	case "ctrl":
		return modCtrl, true
	case "alt":
		return modAlt, true
	case "shift":
		return modShift, true
	case "super":
		return modWin, true
	}
	return 0, false
}

// keyCodes holds Windows virtual-key codes.
var keyCodes = func() map[string]Key {
	m := map[string]Key{
		"backspace": 0x08,
		"tab":       0x09,
		"enter":     0x0D,
		"escape":    0x1B,
		"space":     0x20,
		"pageup":    0x21,
		"pagedown":  0x22,
		"end":       0x23,
		"home":      0x24,
		"left":      0x25,
		"up":        0x26,
		"right":     0x27,
		"down":      0x28,
		"insert":    0x2D,
		"delete":    0x2E,
		"plus":      0xBB, // VK_OEM_PLUS
		"comma":     0xBC,
		"minus":     0xBD,
		"period":    0xBE,
	}
	addRange(m, 'a', 'z', 0x41)
	addRange(m, '0', '9', 0x30)
	addFunctionKeys(m, 24, 0x70)
	return m
}()

// Variants returns the chord's own modifiers; lock keys do not affect
// RegisterHotKey matching.
func (c Chord) Variants() [][]Modifier {
	return [][]Modifier{c.Modifiers}
}
