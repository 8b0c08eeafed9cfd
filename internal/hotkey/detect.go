package hotkey

import (
	"os"
	"runtime"
)

// DisplayServer represents the type of display server in use
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerWindows
	DisplayServerX11
	DisplayServerWayland
	DisplayServerMacOS
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWayland:
		return "Wayland"
	case DisplayServerMacOS:
		return "macOS"
	default:
		return "Unknown"
	}
}

// getenv is replaced in tests.
var getenv = os.Getenv

// DetectDisplayServer determines which display server is currently in use.
// This function is safe to call on any platform.
func DetectDisplayServer() DisplayServer {
	return detectDisplayServer(runtime.GOOS)
}

func detectDisplayServer(goos string) DisplayServer {
	switch goos {
	case "windows":
		return DisplayServerWindows
	case "darwin":
		return DisplayServerMacOS
	}

	// Wayland first: XWayland sessions set DISPLAY as well.
	if getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// SupportsGlobalHotkeys reports whether golang.design/x/hotkey can grab
// keys on ds.
func (ds DisplayServer) SupportsGlobalHotkeys() bool {
	switch ds {
	case DisplayServerWindows, DisplayServerX11, DisplayServerMacOS:
		return true
	default:
		return false
	}
}
