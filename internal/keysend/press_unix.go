//go:build !windows

package keysend

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
)

// runCommand is replaced in tests.
var runCommand = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// press tries xdotool (X11), then wtype (Wayland), then osascript (macOS).
func (s *Sender) press(k targetKey) error {
	var errs []error

	if out, err := runCommand("xdotool", "key", k.keysym); err == nil {
		return nil
	} else {
		s.log.Debug("xdotool key failed (is it installed?)", "target", k.name, "error", err, "output", string(out))
		errs = append(errs, fmt.Errorf("xdotool: %w", err))
	}

	if out, err := runCommand("wtype", "-k", k.keysym); err == nil {
		return nil
	} else {
		s.log.Debug("wtype failed (is it installed?)", "target", k.name, "error", err, "output", string(out))
		errs = append(errs, fmt.Errorf("wtype: %w", err))
	}

	if runtime.GOOS == "darwin" && k.macKeyCode != noMacKeyCode {
		script := `tell application "System Events" to key code ` + strconv.Itoa(k.macKeyCode)
		if out, err := runCommand("osascript", "-e", script); err == nil {
			return nil
		} else {
			s.log.Debug("osascript failed", "target", k.name, "error", err, "output", string(out))
			errs = append(errs, fmt.Errorf("osascript: %w", err))
		}
	}

	return fmt.Errorf("no key synthesis method worked for %q: %w", k.name, errors.Join(errs...))
}
