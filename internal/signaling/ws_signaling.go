// Package signaling negotiates WebRTC data-channel listeners over WebSocket.
package signaling

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"

	"github.com/frudas24/crowdpad/internal/relay"
	rtc "github.com/frudas24/crowdpad/internal/webrtc"
)

// Sink receives data-channel listeners once they open.
type Sink interface {
	AddListener(l relay.Listener)
	RemoveListener(l relay.Listener) bool
}

// Server handles WebRTC signaling over WebSocket, one peer per connection.
type Server struct {
	upgrader websocket.Upgrader
	peers    *rtc.PeerFactory
	sink     Sink
	log      *slog.Logger
}

// NewServer creates a signaling server registering listeners into sink.
func NewServer(peers *rtc.PeerFactory, sink Sink, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		peers: peers,
		sink:  sink,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// session is one signaling connection and its peer.
type session struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
	peer    *webrtc.PeerConnection

	mu       sync.Mutex
	listener *rtc.DataChannelListener
}

// ServeHTTP upgrades the request and runs the offer/answer loop.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	peer, err := s.peers.NewPeer()
	if err != nil {
		s.log.Warn("create peer failed", "err", err)
		_ = conn.Close()
		return
	}
	sess := &session{conn: conn, peer: peer}
	defer s.cleanup(sess)

	peer.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		candidate := c.ToJSON()
		_ = sess.send(Message{T: TypeICE, Candidate: &candidate})
	})
	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		s.attach(sess, dc)
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(sess, msg); err != nil {
			s.log.Debug("signaling failed", "remote", r.RemoteAddr, "err", err)
			_ = sess.send(Message{T: TypeError, Error: err.Error()})
			return
		}
	}
}

// attach registers the peer's first data channel as a listener once open.
func (s *Server) attach(sess *session, dc *webrtc.DataChannel) {
	l := rtc.NewDataChannelListener(dc)
	sess.mu.Lock()
	if sess.listener != nil {
		sess.mu.Unlock()
		s.log.Debug("ignoring extra data channel", "label", dc.Label())
		return
	}
	sess.listener = l
	sess.mu.Unlock()

	dc.OnOpen(func() {
		s.sink.AddListener(l)
		s.log.Info("data channel listener connected", "label", dc.Label())
	})
	dc.OnClose(func() {
		if s.sink.RemoveListener(l) {
			s.log.Info("data channel listener disconnected", "label", dc.Label())
		}
	})
}

// cleanup unregisters the listener and closes the peer and socket.
func (s *Server) cleanup(sess *session) {
	sess.mu.Lock()
	l := sess.listener
	sess.mu.Unlock()
	if l != nil {
		s.sink.RemoveListener(l)
	}
	_ = sess.peer.Close()
	_ = sess.conn.Close()
}

// handleMessage dispatches signaling messages.
func (s *Server) handleMessage(sess *session, msg Message) error {
	switch msg.T {
	case TypeOffer:
		return s.handleOffer(sess, msg.SDP)
	case TypeICE:
		if msg.Candidate == nil {
			return nil
		}
		return sess.peer.AddICECandidate(*msg.Candidate)
	default:
		return nil
	}
}

// handleOffer processes an SDP offer and replies with an answer.
func (s *Server) handleOffer(sess *session, sdp string) error {
	if sdp == "" {
		return errors.New("empty offer")
	}
	if err := sess.peer.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeOffer,
		SDP:  sdp,
	}); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}
	answer, err := sess.peer.CreateAnswer(nil)
	if err != nil {
		return fmt.Errorf("create answer: %w", err)
	}
	gatherComplete := webrtc.GatheringCompletePromise(sess.peer)
	if err := sess.peer.SetLocalDescription(answer); err != nil {
		return fmt.Errorf("set local description: %w", err)
	}
	<-gatherComplete
	local := sess.peer.LocalDescription()
	if local == nil {
		return errors.New("missing local description")
	}
	return sess.send(Message{T: TypeAnswer, SDP: local.SDP})
}

// send writes a message; gorilla allows one concurrent writer.
func (sess *session) send(msg Message) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	return sess.conn.WriteJSON(msg)
}
