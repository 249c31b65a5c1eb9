// Package input injects keyboard and mouse input into one target window.
package input

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frudas24/crowdpad/internal/window"
	"github.com/frudas24/crowdpad/internal/wire"
)

var (
	// ErrUnsupportedPlatform indicates no backend exists for this OS.
	ErrUnsupportedPlatform = errors.New("input injection is not supported on this platform")
	// ErrDisplayProtocolUnsafe indicates synthetic input cannot be scoped to one window.
	ErrDisplayProtocolUnsafe = errors.New("display protocol cannot guarantee window-scoped input")
	// ErrUnknownKey indicates a code missing from the key table.
	ErrUnknownKey = errors.New("unknown key code")
	// ErrUnknownMouseButton indicates a mouse button name missing from the table.
	ErrUnknownMouseButton = errors.New("unknown mouse button")
	// ErrTargetLocked indicates a different target window was already selected.
	ErrTargetLocked = errors.New("target window already selected")
	// ErrNoTarget indicates a zero window id was offered as the target.
	ErrNoTarget = errors.New("no target window")
	// ErrNoForeground indicates the OS reports no foreground window.
	ErrNoForeground = errors.New("no foreground window")
)

// DefaultFocusSettle is how long FocusWindow waits for the OS to switch focus.
const DefaultFocusSettle = 200 * time.Millisecond

// Backend is the per-platform input capability set.
type Backend interface {
	ListWindows() ([]window.Window, error)
	FocusWindow(id window.ID) error
	ForegroundWindow() (window.ID, error)
	IsForeground() bool
	PressKey(codes string) error
	ReleaseKey(codes string) error
	PressMouseButton(name string) error
	ReleaseMouseButton(name string) error
	MoveMouse(dx, dy int) error
	Close() error
}

// Options configures backend construction.
type Options struct {
	FocusSettle time.Duration
	Logger      *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.FocusSettle <= 0 {
		o.FocusSettle = DefaultFocusSettle
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// GuardedPressKey presses codes only while the target window has focus.
func GuardedPressKey(b Backend, codes string) error {
	if !b.IsForeground() {
		return nil
	}
	return b.PressKey(codes)
}

// GuardedPressMouseButton presses a mouse button only while the target window has focus.
func GuardedPressMouseButton(b Backend, name string) error {
	if !b.IsForeground() {
		return nil
	}
	return b.PressMouseButton(name)
}

// GuardedMoveMouse moves the pointer only while the target window has focus.
func GuardedMoveMouse(b Backend, dx, dy int) error {
	if !b.IsForeground() {
		return nil
	}
	return b.MoveMouse(dx, dy)
}

// target records the run's window; it may be re-focused but never replaced.
type target struct {
	mu  sync.Mutex
	id  window.ID
	set bool
}

// lock records id as the target or verifies it matches the existing one.
func (t *target) lock(id window.ID) error {
	if id == 0 {
		return ErrNoTarget
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.set && t.id != id {
		return fmt.Errorf("%w: have %#x, requested %#x", ErrTargetLocked, t.id, id)
	}
	t.id = id
	t.set = true
	return nil
}

// get returns the target window, if one was selected.
func (t *target) get() (window.ID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id, t.set
}

// sameTopLevel reports whether two windows share a top-level ancestor.
func sameTopLevel(a, b window.ID, topLevel func(window.ID) (window.ID, error)) bool {
	at, err := topLevel(a)
	if err != nil {
		return false
	}
	bt, err := topLevel(b)
	if err != nil {
		return false
	}
	return at == bt
}

// forEachCode applies fn to every code of a comma-joined set.
func forEachCode(codes string, fn func(code string) error) error {
	var errs []error
	for _, code := range wire.SplitCodes(codes) {
		if err := fn(code); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
