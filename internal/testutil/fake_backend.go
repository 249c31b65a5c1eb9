// Package testutil provides fakes shared by package tests.
package testutil

import (
	"fmt"
	"sync"

	"github.com/frudas24/crowdpad/internal/input"
	"github.com/frudas24/crowdpad/internal/window"
)

// Call records a single backend action.
type Call struct {
	Name string
	Arg  string
	X    int
	Y    int
}

// FakeBackend implements input.Backend and records calls for tests.
type FakeBackend struct {
	mu         sync.Mutex
	calls      []Call
	windows    []window.Window
	foreground bool
	target     window.ID
	locked     bool
	fail       map[string]error
}

// Ensure FakeBackend implements the interface.
var _ input.Backend = (*FakeBackend)(nil)

// NewFakeBackend returns a fake offering the given windows, with focus held.
func NewFakeBackend(windows ...window.Window) *FakeBackend {
	return &FakeBackend{windows: windows, foreground: true, fail: map[string]error{}}
}

// SetForeground toggles whether the target reports focus.
func (f *FakeBackend) SetForeground(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.foreground = on
}

// FailOn makes every call named name return err.
func (f *FakeBackend) FailOn(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[name] = err
}

// Calls returns a copy of the recorded calls.
func (f *FakeBackend) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Reset clears the recorded calls.
func (f *FakeBackend) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Target returns the focused target, if any.
func (f *FakeBackend) Target() (window.ID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target, f.locked
}

func (f *FakeBackend) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.fail[c.Name]
}

// ListWindows returns the configured windows.
func (f *FakeBackend) ListWindows() ([]window.Window, error) {
	if err := f.record(Call{Name: "ListWindows"}); err != nil {
		return nil, err
	}
	return append([]window.Window(nil), f.windows...), nil
}

// FocusWindow locks the target like the real backends do.
func (f *FakeBackend) FocusWindow(id window.ID) error {
	if err := f.record(Call{Name: "FocusWindow", X: int(id)}); err != nil {
		return err
	}
	if id == 0 {
		return input.ErrNoTarget
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked && f.target != id {
		return fmt.Errorf("%w: %d", input.ErrTargetLocked, id)
	}
	f.target = id
	f.locked = true
	f.foreground = true
	return nil
}

// ForegroundWindow returns the target while it holds focus.
func (f *FakeBackend) ForegroundWindow() (window.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.foreground || !f.locked {
		return 0, input.ErrNoForeground
	}
	return f.target, nil
}

// IsForeground reports the toggled focus state.
func (f *FakeBackend) IsForeground() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.foreground && f.locked
}

// PressKey records a key press.
func (f *FakeBackend) PressKey(codes string) error {
	return f.record(Call{Name: "PressKey", Arg: codes})
}

// ReleaseKey records a key release.
func (f *FakeBackend) ReleaseKey(codes string) error {
	return f.record(Call{Name: "ReleaseKey", Arg: codes})
}

// PressMouseButton records a mouse button press.
func (f *FakeBackend) PressMouseButton(name string) error {
	return f.record(Call{Name: "PressMouseButton", Arg: name})
}

// ReleaseMouseButton records a mouse button release.
func (f *FakeBackend) ReleaseMouseButton(name string) error {
	return f.record(Call{Name: "ReleaseMouseButton", Arg: name})
}

// MoveMouse records a relative move.
func (f *FakeBackend) MoveMouse(dx, dy int) error {
	return f.record(Call{Name: "MoveMouse", X: dx, Y: dy})
}

// Close records the shutdown.
func (f *FakeBackend) Close() error {
	return f.record(Call{Name: "Close"})
}
