// Package relay collects voter selections and broadcasts the winners.
package relay

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/frudas24/crowdpad/internal/vote"
	"github.com/frudas24/crowdpad/internal/wire"
)

// ErrVoterExists indicates a client id already has a live connection.
var ErrVoterExists = errors.New("voter already connected")

// Listener receives every broadcast frame.
type Listener interface {
	Send(data []byte) error
	Close() error
}

// Registry tracks live voters and the ordered listener set.
type Registry struct {
	mu        sync.Mutex
	voters    map[string]struct{}
	listeners []Listener
	board     *vote.Board
}

// NewRegistry returns an empty registry feeding board.
func NewRegistry(board *vote.Board) *Registry {
	if board == nil {
		board = vote.NewBoard()
	}
	return &Registry{voters: map[string]struct{}{}, board: board}
}

// Board returns the aggregator fed by Submit.
func (r *Registry) Board() *vote.Board {
	return r.board
}

// AddVoter registers a live voter connection.
func (r *Registry) AddVoter(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.voters[id]; ok {
		return fmt.Errorf("%w: %s", ErrVoterExists, id)
	}
	r.voters[id] = struct{}{}
	return nil
}

// RemoveVoter drops the voter's connection and selection.
func (r *Registry) RemoveVoter(id string) {
	r.mu.Lock()
	delete(r.voters, id)
	r.mu.Unlock()
	r.board.Remove(id)
}

// Submit overwrites the voter's selection.
func (r *Registry) Submit(id string, v wire.Vote) {
	r.board.Set(id, vote.Selection{
		Button:      v.Key,
		MouseButton: v.MouseButton,
		Delta:       wire.Movement{X: v.Delta.XDelta, Y: v.Delta.YDelta},
	})
}

// AddListener appends a listener to the broadcast order.
func (r *Registry) AddListener(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// RemoveListener removes l and reports whether it was registered.
func (r *Registry) RemoveListener(l Listener) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := slices.Index(r.listeners, l)
	if idx < 0 {
		return false
	}
	r.listeners = slices.Delete(r.listeners, idx, idx+1)
	return true
}

// Listeners returns a copy of the listener set in registration order.
func (r *Registry) Listeners() []Listener {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.listeners)
}

// Counts returns the number of live voters and listeners.
func (r *Registry) Counts() (voters, listeners int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.voters), len(r.listeners)
}
