//go:build windows

// Package input injects keyboard and mouse input into one target window.
package input

import (
	"fmt"
	"log/slog"
	"syscall"
	"time"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/frudas24/crowdpad/internal/keymap"
	"github.com/frudas24/crowdpad/internal/window"
)

// Open returns the SendInput backend.
func Open(opts Options) (Backend, error) {
	opts = opts.withDefaults()
	return &win32Backend{settle: opts.FocusSettle, log: opts.Logger}, nil
}

// win32Backend injects scancodes and relative mouse motion with SendInput.
type win32Backend struct {
	target target
	settle time.Duration
	log    *slog.Logger
}

// ListWindows enumerates visible top-level windows that carry a title.
func (b *win32Backend) ListWindows() ([]window.Window, error) {
	var out []window.Window
	cb := syscall.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		if w, ok := describe(hwnd); ok {
			out = append(out, w)
		}
		return 1
	})
	if err := windows.EnumWindows(cb, nil); err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	return out, nil
}

func describe(hwnd windows.HWND) (window.Window, bool) {
	if !windows.IsWindowVisible(hwnd) {
		return window.Window{}, false
	}
	buf := make([]uint16, 512)
	n, err := windows.GetWindowText(hwnd, &buf[0], int32(len(buf)))
	if err != nil || n == 0 {
		return window.Window{}, false
	}
	var pid uint32
	_, _ = windows.GetWindowThreadProcessId(hwnd, &pid)
	return window.Window{
		ID:      window.ID(hwnd),
		Title:   windows.UTF16ToString(buf[:n]),
		PID:     int(pid),
		Process: window.ProcessName(int(pid)),
	}, true
}

// FocusWindow restores and foregrounds the target, then waits for the switch.
func (b *win32Backend) FocusWindow(id window.ID) error {
	if err := b.target.lock(id); err != nil {
		return err
	}
	hwnd := win.HWND(id)
	win.ShowWindow(hwnd, win.SW_RESTORE)
	if !win.SetForegroundWindow(hwnd) {
		b.log.Warn("SetForegroundWindow refused", "window", uint64(id))
	}
	time.Sleep(b.settle)
	return nil
}

// ForegroundWindow returns the OS foreground window.
func (b *win32Backend) ForegroundWindow() (window.ID, error) {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return 0, ErrNoForeground
	}
	return window.ID(hwnd), nil
}

// IsForeground reports whether the foreground window shares the target's root.
func (b *win32Backend) IsForeground() bool {
	id, ok := b.target.get()
	if !ok {
		return false
	}
	fg, err := b.ForegroundWindow()
	if err != nil {
		return false
	}
	return sameTopLevel(fg, id, rootOf)
}

func rootOf(id window.ID) (window.ID, error) {
	root := win.GetAncestor(win.HWND(id), win.GA_ROOT)
	if root == 0 {
		return 0, fmt.Errorf("no root ancestor for %#x", id)
	}
	return window.ID(root), nil
}

// PressKey presses every code of a comma-joined set.
func (b *win32Backend) PressKey(codes string) error {
	return forEachCode(codes, func(code string) error { return key(code, false) })
}

// ReleaseKey releases every code of a comma-joined set.
func (b *win32Backend) ReleaseKey(codes string) error {
	return forEachCode(codes, func(code string) error { return key(code, true) })
}

func key(code string, up bool) error {
	sc, ok := keymap.WinScancode(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, code)
	}
	return sendScancode(sc.Code, sc.Extended, up)
}

// PressMouseButton presses a named mouse button.
func (b *win32Backend) PressMouseButton(name string) error {
	flags, ok := keymap.WinMouseFlags(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMouseButton, name)
	}
	return sendMouseInput(flags.Down, 0, 0)
}

// ReleaseMouseButton releases a named mouse button.
func (b *win32Backend) ReleaseMouseButton(name string) error {
	flags, ok := keymap.WinMouseFlags(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMouseButton, name)
	}
	return sendMouseInput(flags.Up, 0, 0)
}

// MoveMouse sends relative motion; the OS keeps the cursor on screen.
func (b *win32Backend) MoveMouse(dx, dy int) error {
	return sendMouseInput(win.MOUSEEVENTF_MOVE, int32(dx), int32(dy))
}

// Close is a no-op; SendInput holds no resources.
func (b *win32Backend) Close() error {
	return nil
}
