package vote

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/frudas24/crowdpad/internal/wire"
)

// fixedOrder returns a shuffler that always sorts ids, making ties deterministic.
func fixedOrder() Shuffler {
	return func(ids []string) { slices.Sort(ids) }
}

// TestSnapshot_Empty verifies an empty board yields absent winners and a zero mean.
func TestSnapshot_Empty(t *testing.T) {
	b := NewBoard()
	snap := b.Snapshot()
	if snap.Button != "" || snap.MouseButton != "" || snap.Voters != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Movement != (wire.Movement{}) {
		t.Fatalf("expected zero movement, got %+v", snap.Movement)
	}
}

// TestSnapshot_Plurality verifies the most common button wins.
func TestSnapshot_Plurality(t *testing.T) {
	b := NewBoard()
	b.Set("a", Selection{Button: "KeyW"})
	b.Set("b", Selection{Button: "KeyW"})
	b.Set("c", Selection{Button: "KeyA"})
	for i := 0; i < 50; i++ {
		if got := b.Snapshot().Button; got != "KeyW" {
			t.Fatalf("iteration %d: expected KeyW, got %q", i, got)
		}
	}
}

// TestTally_TieKeepsFirstLeader verifies equal counts never displace the leader.
func TestTally_TieKeepsFirstLeader(t *testing.T) {
	entries := map[string]Selection{
		"a": {Button: "KeyA", MouseButton: "RightMouseButton"},
		"b": {Button: "KeyB", MouseButton: "LeftMouseButton"},
		"c": {Button: "KeyB", MouseButton: "LeftMouseButton"},
		"d": {Button: "KeyA", MouseButton: "RightMouseButton"},
	}
	tests := []struct {
		name  string
		order []string
		want  string
		mouse string
	}{
		{name: "AFirst", order: []string{"a", "b", "c", "d"}, want: "KeyB", mouse: "LeftMouseButton"},
		{name: "BFirst", order: []string{"b", "a", "d", "c"}, want: "KeyA", mouse: "RightMouseButton"},
		{name: "Alternating", order: []string{"a", "b", "d", "c"}, want: "KeyA", mouse: "RightMouseButton"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Tally(tt.order, entries)
			second := Tally(tt.order, entries)
			if first.Button != tt.want || first.MouseButton != tt.mouse {
				t.Fatalf("expected %s/%s, got %+v", tt.want, tt.mouse, first)
			}
			if first != second {
				t.Fatalf("same order produced different results: %+v vs %+v", first, second)
			}
		})
	}
}

// TestSnapshot_WinnerWasSubmitted verifies the winner is always a submitted value.
func TestSnapshot_WinnerWasSubmitted(t *testing.T) {
	b := NewBoard()
	submitted := map[string]bool{}
	codes := []string{"KeyA", "KeyS", "KeyD", "KeyW", "Space"}
	for i := 0; i < 23; i++ {
		code := codes[i%len(codes)]
		submitted[code] = true
		b.Set(fmt.Sprintf("v%d", i), Selection{Button: code})
	}
	for i := 0; i < 100; i++ {
		if got := b.Snapshot().Button; !submitted[got] {
			t.Fatalf("winner %q was never submitted", got)
		}
	}
}

// TestSnapshot_AbsentVotesCompete verifies idle voters can outvote a key.
func TestSnapshot_AbsentVotesCompete(t *testing.T) {
	b := NewBoardWithShuffler(fixedOrder())
	b.Set("a", Selection{})
	b.Set("b", Selection{})
	b.Set("c", Selection{Button: "KeyW"})
	if got := b.Snapshot().Button; got != "" {
		t.Fatalf("expected absent winner, got %q", got)
	}
}

// TestSnapshot_MeanDelta verifies the component-wise mean over N voters.
func TestSnapshot_MeanDelta(t *testing.T) {
	b := NewBoard()
	b.Set("a", Selection{Delta: wire.Movement{X: 0.5, Y: -0.5}})
	b.Set("b", Selection{Delta: wire.Movement{X: 0.25, Y: 0.5}})
	b.Set("c", Selection{Delta: wire.Movement{X: -0.75, Y: 0.3}})
	got := b.Snapshot().Movement
	if !near(got.X, 0) || !near(got.Y, 0.1) {
		t.Fatalf("unexpected mean: %+v", got)
	}
}

// TestSnapshot_MeanCountsVotersWithoutDelta pins the denominator to every entry.
func TestSnapshot_MeanCountsVotersWithoutDelta(t *testing.T) {
	b := NewBoard()
	b.Set("mover", Selection{Delta: wire.Movement{X: 1, Y: 1}})
	b.Set("typist", Selection{Button: "KeyW"})
	got := b.Snapshot().Movement
	if got.X != 0.5 || got.Y != 0.5 {
		t.Fatalf("expected (0.5,0.5), got %+v", got)
	}
}

// TestRemove verifies disconnecting a voter drops their selection.
func TestRemove(t *testing.T) {
	b := NewBoard()
	b.Set("a", Selection{Button: "KeyW"})
	b.Remove("a")
	b.Remove("never-set")
	if b.Len() != 0 {
		t.Fatalf("expected empty board, got %d", b.Len())
	}
	if snap := b.Snapshot(); snap.Button != "" {
		t.Fatalf("unexpected winner after remove: %+v", snap)
	}
}

// TestBoard_ConcurrentAccess exercises writers and readers together.
func TestBoard_ConcurrentAccess(t *testing.T) {
	b := NewBoard()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			id := fmt.Sprintf("v%d", w)
			for i := 0; i < 200; i++ {
				b.Set(id, Selection{Button: "KeyW", Delta: wire.Movement{X: 1}})
				if i%10 == 0 {
					b.Remove(id)
				}
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap := b.Snapshot()
			if snap.Voters > 0 && snap.Button != "KeyW" {
				t.Errorf("unexpected winner %q", snap.Button)
				return
			}
		}
	}()
	wg.Wait()
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
