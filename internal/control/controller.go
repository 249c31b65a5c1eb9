// Package control drives the target window from relay broadcasts.
package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/crowdpad/internal/input"
	"github.com/frudas24/crowdpad/internal/whitelist"
	"github.com/frudas24/crowdpad/internal/window"
)

var (
	// ErrNoWindows indicates there is nothing to select.
	ErrNoWindows = errors.New("no windows found")
	// ErrInvalidSelection indicates the operator's answer is not a listed index.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrTransportClosed indicates the relay connection ended.
	ErrTransportClosed = errors.New("relay connection closed")
)

// DefaultStartDelay is the pause between focusing and listening.
const DefaultStartDelay = 500 * time.Millisecond

// State is a controller lifecycle phase.
type State int

const (
	// StateSelecting lists windows and waits for the operator.
	StateSelecting State = iota
	// StateFocusing brings the chosen window forward.
	StateFocusing
	// StateListening applies relay broadcasts.
	StateListening
	// StateTerminal means the controller has stopped for good.
	StateTerminal
)

// String returns the phase name.
func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateFocusing:
		return "focusing"
	case StateListening:
		return "listening"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Config holds controller runtime settings.
type Config struct {
	RelayURL    string
	MouseExtent int
	StartDelay  time.Duration
}

// Controller selects a target window and mirrors relay broadcasts into it.
type Controller struct {
	mu      sync.RWMutex
	state   State
	backend input.Backend
	tracker *Tracker
	cfg     Config
	dialer  *websocket.Dialer
	log     *slog.Logger
}

// NewController validates dependencies and returns a controller in StateSelecting.
func NewController(backend input.Backend, allow *whitelist.Validator, cfg Config, log *slog.Logger) (*Controller, error) {
	if backend == nil {
		return nil, errors.New("input backend is required")
	}
	if strings.TrimSpace(cfg.RelayURL) == "" {
		return nil, errors.New("relay url is required")
	}
	if cfg.StartDelay < 0 {
		cfg.StartDelay = 0
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		state:   StateSelecting,
		backend: backend,
		tracker: NewTracker(backend, allow, cfg.MouseExtent, log),
		cfg:     cfg,
		dialer:  websocket.DefaultDialer,
		log:     log,
	}, nil
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.log.Debug("controller state", "state", s.String())
}

// Tracker exposes the reconciliation state.
func (c *Controller) Tracker() *Tracker {
	return c.tracker
}

// Run selects, focuses and listens until the relay closes or ctx ends.
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	defer c.setState(StateTerminal)
	list, err := c.backend.ListWindows()
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}
	w, err := SelectWindow(in, out, list)
	if err != nil {
		return err
	}
	if err := c.Focus(ctx, w); err != nil {
		return err
	}
	return c.Listen(ctx)
}

// Focus activates the chosen window and waits the start delay.
func (c *Controller) Focus(ctx context.Context, w window.Window) error {
	c.setState(StateFocusing)
	if err := c.backend.FocusWindow(w.ID); err != nil {
		return fmt.Errorf("focus %q: %w", w.Title, err)
	}
	c.log.Info("target window selected", "title", w.Title, "process", w.Process, "pid", w.PID)
	if c.cfg.StartDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.cfg.StartDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Listen dials the relay and applies every broadcast until the connection
// ends. Held input is released on the way out.
func (c *Controller) Listen(ctx context.Context) error {
	c.setState(StateListening)
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.RelayURL, nil)
	if err != nil {
		return fmt.Errorf("dial relay %s: %w", c.cfg.RelayURL, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer c.tracker.ReleaseAll()
	c.log.Info("connected to relay", "url", c.cfg.RelayURL)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", ErrTransportClosed, err)
		}
		if err := c.tracker.Handle(data); err != nil {
			c.log.Debug("dropping broadcast", "err", err)
		}
	}
}

// SelectWindow prints a 1-based menu of list to out and reads the choice from in.
func SelectWindow(in io.Reader, out io.Writer, list []window.Window) (window.Window, error) {
	if len(list) == 0 {
		return window.Window{}, ErrNoWindows
	}
	fmt.Fprintln(out, "Running applications:")
	for i, w := range list {
		fmt.Fprintf(out, "%d. %s\n", i+1, w.Label())
	}
	fmt.Fprint(out, "Select window: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return window.Window{}, fmt.Errorf("read selection: %w", err)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return window.Window{}, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, strings.TrimSpace(line))
	}
	w, ok := window.GetByIndex(list, idx)
	if !ok {
		return window.Window{}, fmt.Errorf("%w: %d is out of range 1-%d", ErrInvalidSelection, idx, len(list))
	}
	return w, nil
}
