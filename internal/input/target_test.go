package input

import (
	"errors"
	"slices"
	"testing"

	"github.com/frudas24/crowdpad/internal/window"
)

// TestTarget_LockOnce verifies the target can be re-focused but not replaced.
func TestTarget_LockOnce(t *testing.T) {
	var tg target
	if _, ok := tg.get(); ok {
		t.Fatalf("expected no target before lock")
	}
	if err := tg.lock(0); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if err := tg.lock(7); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := tg.lock(7); err != nil {
		t.Fatalf("re-lock same window: %v", err)
	}
	if err := tg.lock(8); !errors.Is(err, ErrTargetLocked) {
		t.Fatalf("expected ErrTargetLocked, got %v", err)
	}
	if id, ok := tg.get(); !ok || id != 7 {
		t.Fatalf("expected target 7, got %d ok=%v", id, ok)
	}
}

// TestSameTopLevel verifies child windows match their top-level ancestor.
func TestSameTopLevel(t *testing.T) {
	parents := map[window.ID]window.ID{11: 10, 12: 11, 20: 20, 10: 10}
	top := func(id window.ID) (window.ID, error) {
		for {
			p, ok := parents[id]
			if !ok {
				return 0, errors.New("unknown window")
			}
			if p == id {
				return id, nil
			}
			id = p
		}
	}
	if !sameTopLevel(12, 10, top) {
		t.Fatalf("expected grandchild to share the top-level window")
	}
	if sameTopLevel(20, 10, top) {
		t.Fatalf("expected distinct top-level windows")
	}
	if sameTopLevel(99, 10, top) {
		t.Fatalf("expected unknown windows to fail")
	}
}

// TestForEachCode verifies every code is visited and errors are joined.
func TestForEachCode(t *testing.T) {
	var seen []string
	boom := errors.New("boom")
	err := forEachCode("ShiftLeft,KeyW,KeyQ", func(code string) error {
		seen = append(seen, code)
		if code == "KeyQ" {
			return boom
		}
		return nil
	})
	if !slices.Equal(seen, []string{"ShiftLeft", "KeyW", "KeyQ"}) {
		t.Fatalf("unexpected visit order: %v", seen)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
}
