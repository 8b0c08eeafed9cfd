//go:build darwin

package hotkey

// Carbon modifier flags.
const (
	modCmd    Modifier = 0x0100
	modShift  Modifier = 0x0200
	modOption Modifier = 0x0800
	modCtrl   Modifier = 0x1000
)

func modifierFor(name string) (Modifier, bool) {
	switch name {
	case "ctrl":
		return modCtrl, true
	case "alt":
		return modOption, true
	case "shift":
		return modShift, true
	case "super":
		return modCmd, true
	}
	return 0, false
}

// keyCodes holds macOS virtual key codes (kVK_*). They follow the ANSI
// layout position, so there is no table arithmetic here. "plus" is the
// "=" key, the only key printing "+". F21-F24 do not exist.
var keyCodes = map[string]Key{
	"a": 0x00, "s": 0x01, "d": 0x02, "f": 0x03, "h": 0x04, "g": 0x05,
	"z": 0x06, "x": 0x07, "c": 0x08, "v": 0x09, "b": 0x0B, "q": 0x0C,
	"w": 0x0D, "e": 0x0E, "r": 0x0F, "y": 0x10, "t": 0x11, "o": 0x1F,
	"u": 0x20, "i": 0x22, "p": 0x23, "l": 0x25, "j": 0x26, "k": 0x28,
	"n": 0x2D, "m": 0x2E,

	"1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "6": 0x16, "5": 0x17,
	"9": 0x19, "7": 0x1A, "8": 0x1C, "0": 0x1D,

	"plus":      0x18,
	"minus":     0x1B,
	"comma":     0x2B,
	"period":    0x2F,
	"enter":     0x24,
	"tab":       0x30,
	"space":     0x31,
	"backspace": 0x33,
	"escape":    0x35,
	"insert":    0x72, // Help
	"home":      0x73,
	"pageup":    0x74,
	"delete":    0x75, // forward delete
	"end":       0x77,
	"pagedown":  0x79,
	"left":      0x7B,
	"right":     0x7C,
	"down":      0x7D,
	"up":        0x7E,

	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F, "f13": 0x69, "f14": 0x6B, "f15": 0x71,
	"f16": 0x6A, "f17": 0x40, "f18": 0x4F, "f19": 0x50, "f20": 0x5A,
}

// Variants returns the chord's own modifiers; lock keys do not affect
// Carbon hotkey matching.
func (c Chord) Variants() [][]Modifier {
	return [][]Modifier{c.Modifiers}
}
