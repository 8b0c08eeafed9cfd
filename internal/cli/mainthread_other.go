//go:build !darwin

package cli

func runOnMainThread(fn func()) {
	fn()
}
