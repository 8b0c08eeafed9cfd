// Package keysend synthesizes the target key of a remapping.
package keysend

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/TanaroSch/keyremap/internal/logging"
)

// ErrUnknownTarget is returned for target names not in the key table.
var ErrUnknownTarget = errors.New("unknown target key")

// noMacKeyCode marks keys osascript cannot press by key code.
const noMacKeyCode = -1

type targetKey struct {
	name       string
	vk         uint16 // Windows virtual-key code
	keysym     string // X11 keysym, used by xdotool and wtype
	macKeyCode int
}

var targetKeys = []targetKey{
	{"f1", 0x70, "F1", 122},
	{"f2", 0x71, "F2", 120},
	{"f3", 0x72, "F3", 99},
	{"f4", 0x73, "F4", 118},
	{"f5", 0x74, "F5", 96},
	{"f6", 0x75, "F6", 97},
	{"f7", 0x76, "F7", 98},
	{"f8", 0x77, "F8", 100},
	{"f9", 0x78, "F9", 101},
	{"f10", 0x79, "F10", 109},
	{"f11", 0x7A, "F11", 103},
	{"f12", 0x7B, "F12", 111},
	{"f13", 0x7C, "F13", 105},
	{"f14", 0x7D, "F14", 107},
	{"f15", 0x7E, "F15", 113},
	{"f16", 0x7F, "F16", 106},
	{"f17", 0x80, "F17", 64},
	{"f18", 0x81, "F18", 79},
	{"f19", 0x82, "F19", 80},
	{"f20", 0x83, "F20", 90},
	{"f21", 0x84, "F21", noMacKeyCode},
	{"f22", 0x85, "F22", noMacKeyCode},
	{"f23", 0x86, "F23", noMacKeyCode},
	{"f24", 0x87, "F24", noMacKeyCode},

	// Browser, media and launch keys (VK 0xA6-0xB7)
	{"browser back", 0xA6, "XF86Back", noMacKeyCode},
	{"browser forward", 0xA7, "XF86Forward", noMacKeyCode},
	{"browser refresh", 0xA8, "XF86Refresh", noMacKeyCode},
	{"browser stop", 0xA9, "XF86Stop", noMacKeyCode},
	{"browser search", 0xAA, "XF86Search", noMacKeyCode},
	{"browser favorites", 0xAB, "XF86Favorites", noMacKeyCode},
	{"browser start and home", 0xAC, "XF86HomePage", noMacKeyCode},
	{"volume mute", 0xAD, "XF86AudioMute", noMacKeyCode},
	{"volume down", 0xAE, "XF86AudioLowerVolume", noMacKeyCode},
	{"volume up", 0xAF, "XF86AudioRaiseVolume", noMacKeyCode},
	{"next track", 0xB0, "XF86AudioNext", noMacKeyCode},
	{"previous track", 0xB1, "XF86AudioPrev", noMacKeyCode},
	{"stop media", 0xB2, "XF86AudioStop", noMacKeyCode},
	{"play/pause media", 0xB3, "XF86AudioPlay", noMacKeyCode},
	{"start mail", 0xB4, "XF86Mail", noMacKeyCode},
	{"select media", 0xB5, "XF86AudioMedia", noMacKeyCode},
	{"start application 1", 0xB6, "XF86MyComputer", noMacKeyCode},
	{"start application 2", 0xB7, "XF86Calculator", noMacKeyCode},
}

var targetsByName = func() map[string]targetKey {
	m := make(map[string]targetKey, len(targetKeys))
	for _, k := range targetKeys {
		m[k.name] = k
	}
	return m
}()

// Targets returns the supported target names in display order.
func Targets() []string {
	out := make([]string, 0, len(targetKeys))
	for _, k := range targetKeys {
		out = append(out, k.name)
	}
	return out
}

// lookup is case-insensitive and ignores a trailing " key"
// ("volume mute key" is "volume mute").
func lookup(target string) (targetKey, bool) {
	name := strings.ToLower(strings.TrimSpace(target))
	if k, ok := targetsByName[name]; ok {
		return k, true
	}
	k, ok := targetsByName[strings.TrimSuffix(name, " key")]
	return k, ok
}

// IsKnown reports whether target names a key Press can synthesize.
func IsKnown(target string) bool {
	_, ok := lookup(target)
	return ok
}

// Sender presses target keys on the local desktop.
type Sender struct {
	log *slog.Logger
}

// NewSender creates a sender. A nil logger discards output.
func NewSender(logger *slog.Logger) *Sender {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Sender{log: logger.With("component", "keysend")}
}

// Press synthesizes one press and release of target.
func (s *Sender) Press(target string) error {
	k, ok := lookup(target)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	s.log.Debug("pressing target key", "target", k.name)
	return s.press(k)
}
