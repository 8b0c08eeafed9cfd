//go:build linux

package hotkey

// X11 modifier masks. Alt is usually Mod1 and Super Mod4; NumLock is
// usually Mod2.
const (
	modShift Modifier = 1 << 0
	modLock  Modifier = 1 << 1
	modCtrl  Modifier = 1 << 2
	modAlt   Modifier = 1 << 3
	modNum   Modifier = 1 << 4
	modSuper Modifier = 1 << 6
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
		return modSuper, true
	}
	return 0, false
}

// keyCodes holds X11 keysyms.
var keyCodes = func() map[string]Key {
	m := map[string]Key{
		"space":     0x0020,
		"plus":      0x002b,
		"comma":     0x002c,
		"minus":     0x002d,
		"period":    0x002e,
		"backspace": 0xff08,
		"tab":       0xff09,
		"enter":     0xff0d,
		"escape":    0xff1b,
		"home":      0xff50,
		"left":      0xff51,
		"up":        0xff52,
		"right":     0xff53,
		"down":      0xff54,
		"pageup":    0xff55,
		"pagedown":  0xff56,
		"end":       0xff57,
		"insert":    0xff63,
		"delete":    0xffff,
	}
	addRange(m, 'a', 'z', 0x61)
	addRange(m, '0', '9', 0x30)
	addFunctionKeys(m, 24, 0xffbe)
	return m
}()

// Variants returns the modifier sets to grab for the chord. XGrabKey
// matches the modifier state exactly, so without the lock masks a chord
// stops firing once NumLock or CapsLock is on. The first variant is the
// chord's own modifiers.
func (c Chord) Variants() [][]Modifier {
	locks := [][]Modifier{nil, {modNum}, {modLock}, {modNum, modLock}}
	variants := make([][]Modifier, 0, len(locks))
	for _, l := range locks {
		v := append([]Modifier(nil), c.Modifiers...)
		variants = append(variants, append(v, l...))
	}
	return variants
}
