// Package app wires the relay's websocket servers, scheduler and HTTP routes.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/frudas24/crowdpad/internal/config"
	"github.com/frudas24/crowdpad/internal/relay"
	"github.com/frudas24/crowdpad/internal/signaling"
	"github.com/frudas24/crowdpad/internal/webrtc"
)

// App coordinates the voter and listener servers and the broadcast scheduler.
type App struct {
	mu        sync.Mutex
	cfg       config.Relay
	log       *slog.Logger
	registry  *relay.Registry
	scheduler *relay.Scheduler
	relay     *relay.Server
	signaling *signaling.Server
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates the relay application. peers may be nil only when WebRTC is disabled.
func New(cfg config.Relay, registry *relay.Registry, peers *webrtc.PeerFactory, log *slog.Logger) (*App, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.WebRTC && peers == nil {
		return nil, errors.New("webrtc peer factory is required")
	}
	if log == nil {
		log = slog.Default()
	}

	a := &App{
		cfg:       cfg,
		log:       log,
		registry:  registry,
		scheduler: relay.NewScheduler(registry, cfg.TickInterval, log),
		relay:     relay.NewServer(registry, log),
	}
	if cfg.WebRTC {
		a.signaling = signaling.NewServer(peers, registry, log)
	}
	return a, nil
}

// Start launches the broadcast scheduler.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return errors.New("already started")
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	go func() {
		defer close(a.done)
		a.scheduler.Run(ctx)
	}()
	a.log.Info("scheduler started", "interval", a.cfg.TickInterval)
	return nil
}

// Stop halts the scheduler and closes every listener.
func (a *App) Stop() error {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	var errs []error
	for _, l := range a.registry.Listeners() {
		if a.registry.RemoveListener(l) {
			errs = append(errs, l.Close())
		}
	}
	return errors.Join(errs...)
}

// Registry returns the voter and listener registry.
func (a *App) Registry() *relay.Registry {
	return a.registry
}

// Scheduler returns the broadcast scheduler.
func (a *App) Scheduler() *relay.Scheduler {
	return a.scheduler
}
