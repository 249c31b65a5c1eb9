// Package relay collects voter selections and broadcasts the winners.
package relay

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/crowdpad/internal/wire"
)

// Server upgrades voter and listener websockets.
type Server struct {
	reg      *Registry
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewServer creates the websocket handlers for reg.
func NewServer(reg *Registry, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		reg: reg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleVoter serves GET /ws/{clientID}: every inbound frame replaces the
// voter's selection; malformed frames are dropped.
func (s *Server) HandleVoter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("clientID")
	if id == "" {
		http.Error(w, "client id is required", http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.reg.AddVoter(id); err != nil {
		s.log.Warn("voter rejected", "client", id, "err", err)
		rejectConn(conn, err.Error())
		return
	}
	s.log.Debug("voter connected", "client", id)
	defer func() {
		s.reg.RemoveVoter(id)
		_ = conn.Close()
		s.log.Debug("voter disconnected", "client", id)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		v, err := wire.DecodeVote(data)
		if err != nil {
			s.log.Debug("dropping vote", "client", id, "err", err)
			continue
		}
		s.reg.Submit(id, v)
	}
}

// HandleListener serves GET /listen. Inbound frames are read and discarded
// so close frames are noticed.
func (s *Server) HandleListener(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	l := NewWSListener(conn)
	s.reg.AddListener(l)
	s.log.Info("listener connected", "remote", r.RemoteAddr)
	defer func() {
		if s.reg.RemoveListener(l) {
			_ = l.Close()
		}
		s.log.Info("listener disconnected", "remote", r.RemoteAddr)
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// WSListener sends broadcasts over a websocket.
type WSListener struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSListener wraps conn as a listener.
func NewWSListener(conn *websocket.Conn) *WSListener {
	return &WSListener{conn: conn}
}

// Send writes data as a text frame.
func (l *WSListener) Send(data []byte) error {
	if l == nil || l.conn == nil {
		return errors.New("listener connection is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the websocket.
func (l *WSListener) Close() error {
	return l.conn.Close()
}

// rejectConn sends a policy violation close and closes the socket.
func rejectConn(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	_ = conn.Close()
}
