//go:build windows

package notify

import (
	"strings"

	"github.com/go-toast/toast"
)

func (n *Notifier) platformNotify(title, message string) error {
	notification := toast.Notification{
		AppID:   n.appName,
		Title:   title,
		Message: message,
	}

	err := notification.Push()
	if err != nil && strings.Contains(err.Error(), "notification platform is unavailable") {
		n.log.Info("toast notifications unavailable (they may be disabled in Windows Settings)")
	}
	return err
}
