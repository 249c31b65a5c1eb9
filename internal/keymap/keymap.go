// Package keymap holds the canonical key vocabulary and native injection codes.
package keymap

import "sort"

// Mouse button names used on the wire.
const (
	LeftMouseButton   = "LeftMouseButton"
	MiddleMouseButton = "MiddleMouseButton"
	RightMouseButton  = "RightMouseButton"
)

// Scancode is a Set 1 keyboard scan code as consumed by SendInput.
type Scancode struct {
	Code     uint16
	Extended bool
}

// MouseFlags pairs the SendInput down/up flags for one button.
type MouseFlags struct {
	Down uint32
	Up   uint32
}

// Canonical returns every known key code, sorted.
func Canonical() []string {
	out := make([]string, 0, len(keysyms))
	for code := range keysyms {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// IsKey reports whether code is part of the canonical key vocabulary.
func IsKey(code string) bool {
	_, ok := keysyms[code]
	return ok
}

// IsMouseButton reports whether name is a known mouse button.
func IsMouseButton(name string) bool {
	_, ok := x11Buttons[name]
	return ok
}

// MouseButtons returns the known mouse button names.
func MouseButtons() []string {
	return []string{LeftMouseButton, MiddleMouseButton, RightMouseButton}
}

// Keysym returns the X11 keysym for a key code.
func Keysym(code string) (uint32, bool) {
	ks, ok := keysyms[code]
	return ks, ok
}

// WinScancode returns the Win32 scan code for a key code.
func WinScancode(code string) (Scancode, bool) {
	sc, ok := scancodes[code]
	return sc, ok
}

// X11Button returns the X11 core pointer button number.
func X11Button(name string) (byte, bool) {
	b, ok := x11Buttons[name]
	return b, ok
}

// WinMouseFlags returns the SendInput flags for a mouse button.
func WinMouseFlags(name string) (MouseFlags, bool) {
	f, ok := winButtons[name]
	return f, ok
}
