//go:build windows

package keysend

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	inputKeyboard  = 1
	keyeventfKeyUp = 0x0002
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

// keybdInput mirrors KEYBDINPUT.
type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors INPUT for keyboard events. The trailing padding covers the
// larger MOUSEINPUT member of the union so unsafe.Sizeof matches
// sizeof(INPUT) on both 32-bit and 64-bit Windows.
type input struct {
	inputType uint32
	ki        keybdInput
	_         [8]byte
}

func (s *Sender) press(k targetKey) error {
	inputs := []input{
		{inputType: inputKeyboard, ki: keybdInput{wVk: k.vk}},
		{inputType: inputKeyboard, ki: keybdInput{wVk: k.vk, dwFlags: keyeventfKeyUp}},
	}

	ret, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(ret) != len(inputs) {
		return fmt.Errorf("SendInput sent %d of %d inputs for %q: %w", ret, len(inputs), k.name, err)
	}
	return nil
}
