//go:build darwin

package cli

import "golang.design/x/hotkey/mainthread"

// runOnMainThread keeps the main thread for the Cocoa event loop the
// hotkey library dispatches registrations to.
func runOnMainThread(fn func()) {
	mainthread.Init(fn)
}
