//go:build linux

// Package input injects keyboard and mouse input into one target window.
package input

import (
	"fmt"
	"os"
)

// Open connects to the X11 display. Wayland sessions are refused because
// synthetic input there cannot be tied to a single window.
func Open(opts Options) (Backend, error) {
	opts = opts.withDefaults()
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return nil, fmt.Errorf("%w: WAYLAND_DISPLAY is set", ErrDisplayProtocolUnsafe)
	}
	if os.Getenv("DISPLAY") == "" {
		return nil, fmt.Errorf("%w: DISPLAY is not set", ErrUnsupportedPlatform)
	}
	return newX11Backend(opts)
}
