// Package vote aggregates per-voter selections into one action per tick.
package vote

import (
	"math/rand/v2"
	"sync"

	"github.com/frudas24/crowdpad/internal/wire"
)

// Selection is one voter's latest submission. Empty strings mean absent.
type Selection struct {
	Button      string
	MouseButton string
	Delta       wire.Movement
}

// Snapshot is the aggregated action for one tick.
type Snapshot struct {
	Button      string
	MouseButton string
	Movement    wire.Movement
	Voters      int
}

// Shuffler permutes voter ids in place.
type Shuffler func(ids []string)

// Board holds the live voter selections.
type Board struct {
	mu      sync.RWMutex
	entries map[string]Selection
	shuffle Shuffler
}

// NewBoard returns an empty board that breaks ties with math/rand.
func NewBoard() *Board {
	return NewBoardWithShuffler(func(ids []string) {
		rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	})
}

// NewBoardWithShuffler returns an empty board using the given permutation.
func NewBoardWithShuffler(shuffle Shuffler) *Board {
	if shuffle == nil {
		shuffle = func([]string) {}
	}
	return &Board{
		entries: make(map[string]Selection),
		shuffle: shuffle,
	}
}

// Set overwrites a voter's selection.
func (b *Board) Set(id string, sel Selection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[id] = sel
}

// Remove drops a voter's selection.
func (b *Board) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, id)
}

// Len returns the number of voters with a recorded selection.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Snapshot computes the current winners under a fresh random permutation.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	entries := make(map[string]Selection, len(b.entries))
	order := make([]string, 0, len(b.entries))
	for id, sel := range b.entries {
		entries[id] = sel
		order = append(order, id)
	}
	b.mu.RUnlock()

	b.shuffle(order)
	return Tally(order, entries)
}

// Tally aggregates entries walked in the given order.
//
// A value becomes leader only when its running count strictly exceeds the
// best count seen so far, so among tied values the one reaching the tie
// first in order wins. Absent selections compete like any other value.
// The mean delta divides by the number of entries, including entries that
// never sent a delta.
func Tally(order []string, entries map[string]Selection) Snapshot {
	snap := Snapshot{Voters: len(order)}
	if len(order) == 0 {
		return snap
	}

	buttons := make(map[string]int)
	mouseButtons := make(map[string]int)
	buttonMax, mouseMax := 0, 0
	var sumX, sumY float64

	for _, id := range order {
		sel := entries[id]

		buttons[sel.Button]++
		if buttons[sel.Button] > buttonMax {
			buttonMax = buttons[sel.Button]
			snap.Button = sel.Button
		}

		mouseButtons[sel.MouseButton]++
		if mouseButtons[sel.MouseButton] > mouseMax {
			mouseMax = mouseButtons[sel.MouseButton]
			snap.MouseButton = sel.MouseButton
		}

		sumX += sel.Delta.X
		sumY += sel.Delta.Y
	}

	n := float64(len(order))
	snap.Movement = wire.Movement{X: sumX / n, Y: sumY / n}
	return snap
}
