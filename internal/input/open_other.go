//go:build !linux && !windows

// Package input injects keyboard and mouse input into one target window.
package input

// Open returns ErrUnsupportedPlatform.
func Open(opts Options) (Backend, error) {
	_ = opts
	return nil, ErrUnsupportedPlatform
}
