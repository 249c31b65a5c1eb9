// Package app wires the relay's websocket servers, scheduler and HTTP routes.
package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/frudas24/crowdpad/internal/web"
)

// RegisterRoutes wires websocket, API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("GET /ws/{clientID}", a.relay.HandleVoter)
	mux.HandleFunc("GET /listen", a.relay.HandleListener)
	if a.signaling != nil {
		mux.Handle("GET /ws/signal", a.signaling)
	}
	mux.HandleFunc("GET /api/state", a.handleState)
	mux.HandleFunc("/favicon.ico", handleFavicon)
	mux.Handle("/", staticFileServer(staticDir, a.log))
}

type movementResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type snapshotResponse struct {
	Button        *string          `json:"button"`
	MouseButton   *string          `json:"mouse_button"`
	MouseMovement movementResponse `json:"mouse_movement"`
}

type stateResponse struct {
	Voters    int              `json:"voters"`
	Listeners int              `json:"listeners"`
	Snapshot  snapshotResponse `json:"snapshot"`
}

// handleState reports connection counts and the last broadcast.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	voters, listeners := a.registry.Counts()
	snap := a.scheduler.Last()
	resp := stateResponse{
		Voters:    voters,
		Listeners: listeners,
		Snapshot: snapshotResponse{
			Button:        optional(snap.Button),
			MouseButton:   optional(snap.MouseButton),
			MouseMovement: movementResponse{X: snap.Movement.X, Y: snap.Movement.Y},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string, log *slog.Logger) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
		log.Warn("static dir unavailable, using embedded assets", "dir", staticDir)
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Error("static assets unavailable", "err", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
