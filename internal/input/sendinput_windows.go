//go:build windows

// Package input injects keyboard and mouse input into one target window.
package input

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
)

const (
	keyeventfExtendedKey = 0x0001
	keyeventfScancode    = 0x0008
)

// mouseInput mirrors INPUT with the mouse union member.
type mouseInput struct {
	Type uint32
	Mi   win.MOUSEINPUT
}

// keyboardInput mirrors INPUT with the keyboard union member, padded to the
// size of the mouse member.
type keyboardInput struct {
	Type uint32
	Ki   win.KEYBDINPUT
	_    [8]byte
}

var inputSize = int32(unsafe.Sizeof(mouseInput{}))

// sendMouseInput dispatches a single mouse input event.
func sendMouseInput(flags uint32, dx, dy int32) error {
	in := mouseInput{
		Type: win.INPUT_MOUSE,
		Mi: win.MOUSEINPUT{
			Dx:      dx,
			Dy:      dy,
			DwFlags: flags,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&in), inputSize) != 1 {
		return fmt.Errorf("SendInput rejected mouse event %#x", flags)
	}
	return nil
}

// sendScancode dispatches a single scancode key event.
func sendScancode(code uint16, extended, up bool) error {
	flags := uint32(keyeventfScancode)
	if extended {
		flags |= keyeventfExtendedKey
	}
	if up {
		flags |= win.KEYEVENTF_KEYUP
	}
	in := keyboardInput{
		Type: win.INPUT_KEYBOARD,
		Ki:   win.KEYBDINPUT{WScan: code, DwFlags: flags},
	}
	if win.SendInput(1, unsafe.Pointer(&in), inputSize) != 1 {
		return fmt.Errorf("SendInput rejected scancode %#x", code)
	}
	return nil
}
