// Package relay collects voter selections and broadcasts the winners.
package relay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frudas24/crowdpad/internal/vote"
	"github.com/frudas24/crowdpad/internal/wire"
)

// DefaultTickInterval is the broadcast period.
const DefaultTickInterval = 100 * time.Millisecond

// Scheduler broadcasts the board's winners to every listener on a fixed period.
type Scheduler struct {
	reg      *Registry
	interval time.Duration
	log      *slog.Logger

	mu   sync.Mutex
	last vote.Snapshot
}

// NewScheduler returns a scheduler over reg.
func NewScheduler(reg *Registry, interval time.Duration, log *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{reg: reg, interval: interval, log: log}
}

// Run ticks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick pushes one snapshot to every listener in order. A listener whose send
// fails is removed and closed; the others still receive the frame.
func (s *Scheduler) Tick() vote.Snapshot {
	snap := s.reg.Board().Snapshot()
	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	data, err := wire.EncodeRelay(snap.Button, snap.MouseButton, snap.Movement)
	if err != nil {
		s.log.Error("encode broadcast failed", "err", err)
		return snap
	}
	s.log.Debug("tick", "button", snap.Button, "mouse_button", snap.MouseButton,
		"x", snap.Movement.X, "y", snap.Movement.Y, "voters", snap.Voters)

	for _, l := range s.reg.Listeners() {
		if err := l.Send(data); err != nil {
			if s.reg.RemoveListener(l) {
				_ = l.Close()
				s.log.Info("listener evicted", "err", err)
			}
		}
	}
	return snap
}

// Last returns the most recent broadcast snapshot.
func (s *Scheduler) Last() vote.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
