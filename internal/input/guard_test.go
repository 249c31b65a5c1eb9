package input_test

import (
	"testing"

	"github.com/frudas24/crowdpad/internal/input"
	"github.com/frudas24/crowdpad/internal/testutil"
	"github.com/frudas24/crowdpad/internal/window"
)

// TestGuards_DropWithoutFocus verifies guarded actions are no-ops while unfocused.
func TestGuards_DropWithoutFocus(t *testing.T) {
	fake := testutil.NewFakeBackend(window.Window{ID: 1, Title: "Game"})
	if err := fake.FocusWindow(1); err != nil {
		t.Fatalf("focus: %v", err)
	}
	fake.Reset()
	fake.SetForeground(false)

	if err := input.GuardedPressKey(fake, "KeyW"); err != nil {
		t.Fatalf("press key: %v", err)
	}
	if err := input.GuardedPressMouseButton(fake, "LeftMouseButton"); err != nil {
		t.Fatalf("press mouse: %v", err)
	}
	if err := input.GuardedMoveMouse(fake, 5, 5); err != nil {
		t.Fatalf("move: %v", err)
	}
	if calls := fake.Calls(); len(calls) != 0 {
		t.Fatalf("expected no injected calls, got %+v", calls)
	}
}

// TestGuards_PassWithFocus verifies guarded actions reach the backend while focused.
func TestGuards_PassWithFocus(t *testing.T) {
	fake := testutil.NewFakeBackend(window.Window{ID: 1, Title: "Game"})
	if err := fake.FocusWindow(1); err != nil {
		t.Fatalf("focus: %v", err)
	}
	fake.Reset()

	_ = input.GuardedPressKey(fake, "KeyW")
	_ = input.GuardedPressMouseButton(fake, "RightMouseButton")
	_ = input.GuardedMoveMouse(fake, -3, 4)

	want := []testutil.Call{
		{Name: "PressKey", Arg: "KeyW"},
		{Name: "PressMouseButton", Arg: "RightMouseButton"},
		{Name: "MoveMouse", X: -3, Y: 4},
	}
	calls := fake.Calls()
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %+v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d: expected %+v, got %+v", i, want[i], calls[i])
		}
	}
}
