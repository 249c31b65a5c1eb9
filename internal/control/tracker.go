// Package control drives the target window from relay broadcasts.
package control

import (
	"log/slog"
	"slices"

	"github.com/frudas24/crowdpad/internal/input"
	"github.com/frudas24/crowdpad/internal/keymap"
	"github.com/frudas24/crowdpad/internal/whitelist"
	"github.com/frudas24/crowdpad/internal/wire"
)

// DefaultMouseExtent converts normalized movement to pixels.
const DefaultMouseExtent = 1280

// Tracker reconciles held keys and mouse buttons against each broadcast.
// It is driven by a single goroutine.
type Tracker struct {
	backend input.Backend
	allow   *whitelist.Validator
	extent  float64
	log     *slog.Logger
	keys    []string
	buttons []string
}

// NewTracker returns a tracker with nothing pressed. A nil whitelist allows
// every canonical code; a non-positive extent uses DefaultMouseExtent.
func NewTracker(backend input.Backend, allow *whitelist.Validator, extent int, log *slog.Logger) *Tracker {
	if allow == nil {
		allow = whitelist.All()
	}
	if extent <= 0 {
		extent = DefaultMouseExtent
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{backend: backend, allow: allow, extent: float64(extent), log: log}
}

// PressedKeys returns the keys currently considered held.
func (t *Tracker) PressedKeys() []string {
	return slices.Clone(t.keys)
}

// PressedMouseButtons returns the mouse buttons currently considered held.
func (t *Tracker) PressedMouseButtons() []string {
	return slices.Clone(t.buttons)
}

// Handle applies one raw broadcast. Losing focus releases everything before
// the message is even decoded; undecodable messages return wire.ErrMalformed.
func (t *Tracker) Handle(data []byte) error {
	if !t.backend.IsForeground() && (len(t.keys) > 0 || len(t.buttons) > 0) {
		t.log.Debug("target lost focus, releasing held input", "keys", t.keys, "buttons", t.buttons)
		t.ReleaseAll()
	}
	msg, err := wire.DecodeRelay(data)
	if err != nil {
		return err
	}
	t.Apply(msg)
	return nil
}

// Apply reconciles held input with a decoded broadcast.
func (t *Tracker) Apply(msg wire.RelayMessage) {
	keys := unique(t.allow.Filter(optional(msg.Button)))
	buttons := t.mouseButtons(optional(msg.MouseButton))

	for _, k := range t.keys {
		if !slices.Contains(keys, k) {
			t.warn("release key", k, t.backend.ReleaseKey(k))
		}
	}
	for _, b := range t.buttons {
		if !slices.Contains(buttons, b) {
			t.warn("release mouse button", b, t.backend.ReleaseMouseButton(b))
		}
	}
	for _, k := range keys {
		if !slices.Contains(t.keys, k) {
			t.warn("press key", k, input.GuardedPressKey(t.backend, k))
		}
	}
	t.keys = keys
	for _, b := range buttons {
		if !slices.Contains(t.buttons, b) {
			t.warn("press mouse button", b, input.GuardedPressMouseButton(t.backend, b))
		}
	}
	t.buttons = buttons

	if msg.MouseMovement == nil {
		return
	}
	dx := int(msg.MouseMovement.X * t.extent)
	dy := int(msg.MouseMovement.Y * t.extent)
	if dx == 0 && dy == 0 {
		return
	}
	if err := input.GuardedMoveMouse(t.backend, dx, dy); err != nil {
		t.log.Warn("move mouse failed", "dx", dx, "dy", dy, "err", err)
	}
}

// ReleaseAll releases every held key and mouse button and clears both sets.
func (t *Tracker) ReleaseAll() {
	for _, k := range t.keys {
		t.warn("release key", k, t.backend.ReleaseKey(k))
	}
	for _, b := range t.buttons {
		t.warn("release mouse button", b, t.backend.ReleaseMouseButton(b))
	}
	t.keys = nil
	t.buttons = nil
}

func (t *Tracker) mouseButtons(csv string) []string {
	var out []string
	for _, name := range wire.SplitCodes(csv) {
		if !keymap.IsMouseButton(name) {
			t.log.Debug("dropping unknown mouse button", "button", name)
			continue
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func (t *Tracker) warn(action, code string, err error) {
	if err != nil {
		t.log.Warn(action+" failed", "code", code, "err", err)
	}
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func unique(codes []string) []string {
	var out []string
	for _, c := range codes {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
