//go:build linux

// Package input injects keyboard and mouse input into one target window.
package input

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"

	"github.com/frudas24/crowdpad/internal/keymap"
	"github.com/frudas24/crowdpad/internal/window"
)

// x11Backend injects through the XTEST extension.
type x11Backend struct {
	conn     *xgb.Conn
	root     xproto.Window
	width    int
	height   int
	keycodes map[uint32]xproto.Keycode
	target   target
	settle   time.Duration
	log      *slog.Logger
}

func newX11Backend(opts Options) (*x11Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X display: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: XTEST extension unavailable: %v", ErrDisplayProtocolUnsafe, err)
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	b := &x11Backend{
		conn:   conn,
		root:   screen.Root,
		width:  int(screen.WidthInPixels),
		height: int(screen.HeightInPixels),
		settle: opts.FocusSettle,
		log:    opts.Logger,
	}
	if err := b.loadKeycodes(setup); err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
}

// loadKeycodes maps every keysym of the active layout to its first keycode.
func (b *x11Backend) loadKeycodes(setup *xproto.SetupInfo) error {
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(b.conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return fmt.Errorf("get keyboard mapping: %w", err)
	}
	per := int(reply.KeysymsPerKeycode)
	b.keycodes = make(map[uint32]xproto.Keycode, int(count)*per)
	for i := 0; i < int(count); i++ {
		for j := 0; j < per; j++ {
			sym := uint32(reply.Keysyms[i*per+j])
			if sym == 0 {
				continue
			}
			if _, seen := b.keycodes[sym]; !seen {
				b.keycodes[sym] = xproto.Keycode(int(setup.MinKeycode) + i)
			}
		}
	}
	return nil
}

// atom returns an existing atom, or 0 when the server does not know it.
func (b *x11Backend) atom(name string) xproto.Atom {
	reply, err := xproto.InternAtom(b.conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return xproto.AtomNone
	}
	return reply.Atom
}

// property reads a window property; missing properties yield nil.
func (b *x11Backend) property(w xproto.Window, prop, typ xproto.Atom) []byte {
	if prop == xproto.AtomNone {
		return nil
	}
	reply, err := xproto.GetProperty(b.conn, false, w, prop, typ, 0, 1<<16).Reply()
	if err != nil || reply == nil {
		return nil
	}
	return reply.Value
}

// ListWindows returns the window manager's client list, or mapped root
// children when no EWMH manager is running.
func (b *x11Backend) ListWindows() ([]window.Window, error) {
	candidates := b.clientList()
	if len(candidates) == 0 {
		tree, err := xproto.QueryTree(b.conn, b.root).Reply()
		if err != nil {
			return nil, fmt.Errorf("query root tree: %w", err)
		}
		for _, child := range tree.Children {
			attrs, err := xproto.GetWindowAttributes(b.conn, child).Reply()
			if err != nil || attrs.MapState != xproto.MapStateViewable {
				continue
			}
			candidates = append(candidates, child)
		}
	}
	out := make([]window.Window, 0, len(candidates))
	for _, w := range candidates {
		title := b.title(w)
		if title == "" {
			continue
		}
		pid := b.pid(w)
		out = append(out, window.Window{
			ID:      window.ID(w),
			Title:   title,
			PID:     pid,
			Process: window.ProcessName(pid),
		})
	}
	return out, nil
}

func (b *x11Backend) clientList() []xproto.Window {
	raw := b.property(b.root, b.atom("_NET_CLIENT_LIST"), xproto.AtomWindow)
	out := make([]xproto.Window, 0, len(raw)/4)
	for i := 0; i+4 <= len(raw); i += 4 {
		out = append(out, xproto.Window(xgb.Get32(raw[i:])))
	}
	return out
}

func (b *x11Backend) title(w xproto.Window) string {
	if v := b.property(w, b.atom("_NET_WM_NAME"), b.atom("UTF8_STRING")); len(v) > 0 {
		return string(v)
	}
	return string(b.property(w, xproto.AtomWmName, xproto.GetPropertyTypeAny))
}

func (b *x11Backend) pid(w xproto.Window) int {
	v := b.property(w, b.atom("_NET_WM_PID"), xproto.AtomCardinal)
	if len(v) < 4 {
		return 0
	}
	return int(xgb.Get32(v))
}

// FocusWindow raises the target, asks the window manager to activate it,
// sets input focus and waits for the switch to settle.
func (b *x11Backend) FocusWindow(id window.ID) error {
	if err := b.target.lock(id); err != nil {
		return err
	}
	w := xproto.Window(id)
	if err := xproto.MapWindowChecked(b.conn, w).Check(); err != nil {
		return fmt.Errorf("map window %#x: %w", id, err)
	}
	if err := xproto.ConfigureWindowChecked(b.conn, w, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check(); err != nil {
		b.log.Debug("raise window failed", "window", id, "err", err)
	}
	b.requestActivate(w)
	if err := xproto.SetInputFocusChecked(b.conn, xproto.InputFocusParent, w, xproto.TimeCurrentTime).Check(); err != nil {
		return fmt.Errorf("set input focus %#x: %w", id, err)
	}
	time.Sleep(b.settle)
	return nil
}

// requestActivate sends the EWMH _NET_ACTIVE_WINDOW client message.
func (b *x11Backend) requestActivate(w xproto.Window) {
	active := b.atom("_NET_ACTIVE_WINDOW")
	if active == xproto.AtomNone {
		return
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   active,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{2, xproto.TimeCurrentTime, 0, 0, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	if err := xproto.SendEventChecked(b.conn, false, b.root, mask, string(ev.Bytes())).Check(); err != nil {
		b.log.Debug("activate request failed", "window", uint32(w), "err", err)
	}
}

// ForegroundWindow returns the window holding input focus.
func (b *x11Backend) ForegroundWindow() (window.ID, error) {
	reply, err := xproto.GetInputFocus(b.conn).Reply()
	if err != nil {
		return 0, fmt.Errorf("get input focus: %w", err)
	}
	if reply.Focus == xproto.WindowNone || reply.Focus == xproto.InputFocusPointerRoot {
		return 0, ErrNoForeground
	}
	return window.ID(reply.Focus), nil
}

// IsForeground reports whether focus sits inside the target's top-level window.
func (b *x11Backend) IsForeground() bool {
	id, ok := b.target.get()
	if !ok {
		return false
	}
	fg, err := b.ForegroundWindow()
	if err != nil {
		return false
	}
	return sameTopLevel(fg, id, b.topLevel)
}

// topLevel walks parents until the child of the root window.
func (b *x11Backend) topLevel(id window.ID) (window.ID, error) {
	w := xproto.Window(id)
	for {
		tree, err := xproto.QueryTree(b.conn, w).Reply()
		if err != nil {
			return 0, err
		}
		if tree.Parent == b.root || tree.Parent == xproto.WindowNone {
			return window.ID(w), nil
		}
		w = tree.Parent
	}
}

// PressKey presses every code of a comma-joined set.
func (b *x11Backend) PressKey(codes string) error {
	return forEachCode(codes, func(code string) error { return b.key(code, xproto.KeyPress) })
}

// ReleaseKey releases every code of a comma-joined set.
func (b *x11Backend) ReleaseKey(codes string) error {
	return forEachCode(codes, func(code string) error { return b.key(code, xproto.KeyRelease) })
}

func (b *x11Backend) key(code string, event byte) error {
	sym, ok := keymap.Keysym(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, code)
	}
	kc, ok := b.keycodes[sym]
	if !ok {
		return fmt.Errorf("%w: %s has no keycode in the active layout", ErrUnknownKey, code)
	}
	return xtest.FakeInputChecked(b.conn, event, byte(kc), 0, b.root, 0, 0, 0).Check()
}

// PressMouseButton presses a named mouse button.
func (b *x11Backend) PressMouseButton(name string) error {
	return b.button(name, xproto.ButtonPress)
}

// ReleaseMouseButton releases a named mouse button.
func (b *x11Backend) ReleaseMouseButton(name string) error {
	return b.button(name, xproto.ButtonRelease)
}

func (b *x11Backend) button(name string, event byte) error {
	detail, ok := keymap.X11Button(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMouseButton, name)
	}
	return xtest.FakeInputChecked(b.conn, event, detail, 0, b.root, 0, 0, 0).Check()
}

// MoveMouse moves the pointer relative to its position, kept on screen.
func (b *x11Backend) MoveMouse(dx, dy int) error {
	ptr, err := xproto.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		return fmt.Errorf("query pointer: %w", err)
	}
	x, y := clampToScreen(int(ptr.RootX)+dx, int(ptr.RootY)+dy, b.width, b.height)
	return xtest.FakeInputChecked(b.conn, xproto.MotionNotify, 0, 0, b.root, int16(x), int16(y), 0).Check()
}

// Close drops the display connection.
func (b *x11Backend) Close() error {
	b.conn.Close()
	return nil
}
