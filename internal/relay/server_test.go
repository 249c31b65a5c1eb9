package relay

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/crowdpad/internal/wire"
)

func newTestRelay(t *testing.T) (*Registry, *Scheduler, string) {
	t.Helper()
	reg := NewRegistry(nil)
	srv := NewServer(reg, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/{clientID}", srv.HandleVoter)
	mux.HandleFunc("GET /listen", srv.HandleListener)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return reg, NewScheduler(reg, time.Hour, nil), "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestRelay_EndToEnd verifies votes flow from voters to a listener broadcast.
func TestRelay_EndToEnd(t *testing.T) {
	reg, sched, base := newTestRelay(t)
	votes := map[string]string{"v1": "KeyW", "v2": "KeyW", "v3": "KeyA"}
	for id, key := range votes {
		conn := dial(t, base+"/ws/"+id)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"key":"`+key+`","mouseButton":null,"mouseDelta":null}`)); err != nil {
			t.Fatalf("send vote: %v", err)
		}
	}
	listener := dial(t, base+"/listen")
	waitFor(t, "votes and listener", func() bool {
		_, listeners := reg.Counts()
		return reg.Board().Len() == 3 && listeners == 1
	})

	sched.Tick()

	_ = listener.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := listener.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	msg, err := wire.DecodeRelay(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Button == nil || *msg.Button != "KeyW" {
		t.Fatalf("expected KeyW, got %s", data)
	}
	if msg.MouseButton != nil {
		t.Fatalf("expected null mouse button, got %s", data)
	}
}

// TestRelay_MalformedVoteKeepsConnection verifies bad frames are dropped, not fatal.
func TestRelay_MalformedVoteKeepsConnection(t *testing.T) {
	reg, _, base := newTestRelay(t)
	conn := dial(t, base+"/ws/alice")
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{oops`))
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"key":"KeyD"}`))
	waitFor(t, "vote after malformed frame", func() bool { return reg.Board().Len() == 1 })
	if snap := reg.Board().Snapshot(); snap.Button != "KeyD" {
		t.Fatalf("expected KeyD, got %+v", snap)
	}
}

// TestRelay_DuplicateVoterRejected verifies a second connection with a live id is closed.
func TestRelay_DuplicateVoterRejected(t *testing.T) {
	reg, _, base := newTestRelay(t)
	dial(t, base+"/ws/alice")
	waitFor(t, "first voter", func() bool {
		voters, _ := reg.Counts()
		return voters == 1
	})

	dup := dial(t, base+"/ws/alice")
	_ = dup.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, _, err := dup.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close, got %v", err)
	}
	if voters, _ := reg.Counts(); voters != 1 {
		t.Fatalf("expected first voter kept, got %d", voters)
	}
}

// TestRelay_DisconnectRemovesVoter verifies a closed voter no longer counts.
func TestRelay_DisconnectRemovesVoter(t *testing.T) {
	reg, _, base := newTestRelay(t)
	conn := dial(t, base+"/ws/bob")
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"key":"KeyS"}`))
	waitFor(t, "vote", func() bool { return reg.Board().Len() == 1 })
	_ = conn.Close()
	waitFor(t, "voter removal", func() bool {
		voters, _ := reg.Counts()
		return voters == 0 && reg.Board().Len() == 0
	})
}
