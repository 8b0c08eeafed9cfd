//go:build !windows

package keysend

import (
	"errors"
	"reflect"
	"testing"
)

func stubRunCommand(t *testing.T, fail map[string]bool) *[][]string {
	t.Helper()
	var calls [][]string
	original := runCommand
	runCommand = func(name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		if fail[name] {
			return []byte("not found"), errors.New("exit status 127")
		}
		return nil, nil
	}
	t.Cleanup(func() { runCommand = original })
	return &calls
}

func TestPressUsesXdotoolFirst(t *testing.T) {
	calls := stubRunCommand(t, nil)

	if err := NewSender(nil).Press("F13"); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	want := [][]string{{"xdotool", "key", "F13"}}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("commands = %q, want %q", *calls, want)
	}
}

func TestPressFallsBackToWtype(t *testing.T) {
	calls := stubRunCommand(t, map[string]bool{"xdotool": true})

	if err := NewSender(nil).Press("volume up"); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	want := [][]string{{"xdotool", "key", "XF86AudioRaiseVolume"}, {"wtype", "-k", "XF86AudioRaiseVolume"}}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("commands = %q, want %q", *calls, want)
	}
}

func TestPressReportsWhenEveryMethodFails(t *testing.T) {
	stubRunCommand(t, map[string]bool{"xdotool": true, "wtype": true, "osascript": true})

	if err := NewSender(nil).Press("F21"); err == nil {
		t.Fatal("Press() succeeded with every method failing")
	}
}
