//go:build !windows

package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// platformNotify goes through beeep: D-Bus notifications on Linux,
// osascript on macOS. keyremap ships no icon.
func (n *Notifier) platformNotify(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
