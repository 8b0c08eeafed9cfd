package remap

import "strings"

// keypadModifier is the token the key capture adds for numeric keypad keys.
// The hook service does not tell keypad keys apart, so it is dropped.
const keypadModifier = "num"

var modifierAliases = map[string]string{
	"control": "ctrl",
	"meta":    "super",
	"win":     "super",
	"cmd":     "super",
	"command": "super",
	"option":  "alt",
	"opt":     "alt",
}

var keyAliases = map[string]string{
	"return":   "enter",
	"esc":      "escape",
	"del":      "delete",
	"ins":      "insert",
	"pgup":     "pageup",
	"pgdown":   "pagedown",
	"spacebar": "space",
	"+":        "plus",
	"-":        "minus",
}

// SplitChord splits chord text such as "Ctrl+Shift+1" into its modifier
// tokens and its key. A trailing "++" means the "+" key itself.
func SplitChord(text string) (modifiers []string, key string) {
	var rest string
	switch {
	case text == "":
		return nil, ""
	case text == "+":
		return nil, "+"
	case strings.HasSuffix(text, "++"):
		rest, key = text[:len(text)-2], "+"
	default:
		i := strings.LastIndex(text, "+")
		if i < 0 {
			return nil, text
		}
		rest, key = text[:i], text[i+1:]
	}

	for _, tok := range strings.Split(rest, "+") {
		if tok = strings.TrimSpace(tok); tok != "" {
			modifiers = append(modifiers, tok)
		}
	}
	return modifiers, strings.TrimSpace(key)
}

// HookText converts stored chord text to the form the hook service
// parses: lower-case modifier tokens followed by one key token, joined
// by "+". It returns "" when the chord has no key.
func HookText(source string) string {
	modifiers, key := SplitChord(source)
	if key == "" {
		return ""
	}

	parts := make([]string, 0, len(modifiers)+1)
	for _, mod := range modifiers {
		mod = strings.ToLower(mod)
		if mod == keypadModifier {
			continue
		}
		if alias, ok := modifierAliases[mod]; ok {
			mod = alias
		}
		parts = append(parts, mod)
	}

	key = strings.ToLower(key)
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}
	return strings.Join(append(parts, key), "+")
}
