//go:build !linux || !nox11

package main

// The grabbing backend needs an X11 display on Linux; build with
// -tags nox11 for Wayland or headless machines.
import _ "github.com/TanaroSch/keyremap/internal/hotkey/legacy"
