package control

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/crowdpad/internal/testutil"
	"github.com/frudas24/crowdpad/internal/window"
)

var errTest = errors.New("injected failure")

// TestSelectWindow_Valid verifies the menu lists windows and returns the chosen one.
func TestSelectWindow_Valid(t *testing.T) {
	list := []window.Window{{ID: 1, Title: "Editor"}, {ID: 2, Title: "Game", Process: "game"}}
	var out bytes.Buffer
	w, err := SelectWindow(strings.NewReader("2\n"), &out, list)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if w.ID != 2 {
		t.Fatalf("expected window 2, got %+v", w)
	}
	if !strings.Contains(out.String(), "1. Editor") || !strings.Contains(out.String(), "2. Game (game)") {
		t.Fatalf("unexpected menu: %q", out.String())
	}
}

// TestSelectWindow_Errors verifies empty lists and bad answers are rejected.
func TestSelectWindow_Errors(t *testing.T) {
	list := []window.Window{{ID: 1, Title: "Editor"}}
	tests := []struct {
		name  string
		list  []window.Window
		input string
		want  error
	}{
		{name: "NoWindows", list: nil, input: "1\n", want: ErrNoWindows},
		{name: "NotNumber", list: list, input: "abc\n", want: ErrInvalidSelection},
		{name: "Zero", list: list, input: "0\n", want: ErrInvalidSelection},
		{name: "TooLarge", list: list, input: "5", want: ErrInvalidSelection},
		{name: "Empty", list: list, input: "", want: ErrInvalidSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectWindow(strings.NewReader(tt.input), &bytes.Buffer{}, tt.list)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestNewController_Validation verifies required dependencies are checked.
func TestNewController_Validation(t *testing.T) {
	if _, err := NewController(nil, nil, Config{RelayURL: "ws://x"}, nil); err == nil {
		t.Fatalf("expected error for nil backend")
	}
	if _, err := NewController(testutil.NewFakeBackend(), nil, Config{}, nil); err == nil {
		t.Fatalf("expected error for empty relay url")
	}
}

// TestRun_AppliesBroadcastsUntilClose verifies the full lifecycle against a relay stub.
func TestRun_AppliesBroadcastsUntilClose(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		frames := []string{
			`{"button":"KeyW","mouse_button":null,"mouse_movement":{"x":0,"y":0}}`,
			`garbage`,
			`{"button":"KeyW","mouse_button":"LeftMouseButton","mouse_movement":{"x":0.5,"y":0}}`,
		}
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	fake := testutil.NewFakeBackend(window.Window{ID: 9, Title: "Game"})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/listen"
	ctrl, err := NewController(fake, nil, Config{RelayURL: url}, nil)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ctrl.Run(ctx, strings.NewReader("1\n"), &bytes.Buffer{})
	if !errors.Is(err, ErrTransportClosed) {
		t.Fatalf("expected ErrTransportClosed, got %v", err)
	}
	if ctrl.State() != StateTerminal {
		t.Fatalf("expected terminal state, got %s", ctrl.State())
	}
	if id, ok := fake.Target(); !ok || id != 9 {
		t.Fatalf("expected target 9, got %d ok=%v", id, ok)
	}
	calls := fake.Calls()
	if got := names(calls, "PressKey"); !slices.Equal(got, []string{"KeyW"}) {
		t.Fatalf("unexpected key presses: %v", got)
	}
	if got := names(calls, "PressMouseButton"); !slices.Equal(got, []string{"LeftMouseButton"}) {
		t.Fatalf("unexpected mouse presses: %v", got)
	}
	if got := names(calls, "ReleaseKey"); !slices.Equal(got, []string{"KeyW"}) {
		t.Fatalf("expected held key released on close, got %v", got)
	}
	var moved bool
	for _, c := range calls {
		if c.Name == "MoveMouse" && c.X == 640 && c.Y == 0 {
			moved = true
		}
	}
	if !moved {
		t.Fatalf("expected a (640,0) move, got %+v", calls)
	}
}

// TestRun_InvalidSelection verifies a bad answer stops before focusing.
func TestRun_InvalidSelection(t *testing.T) {
	fake := testutil.NewFakeBackend(window.Window{ID: 9, Title: "Game"})
	ctrl, err := NewController(fake, nil, Config{RelayURL: "ws://127.0.0.1:1/listen"}, nil)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	err = ctrl.Run(context.Background(), strings.NewReader("7\n"), &bytes.Buffer{})
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
	if _, ok := fake.Target(); ok {
		t.Fatalf("expected no target after invalid selection")
	}
}

// TestState_String verifies phase names.
func TestState_String(t *testing.T) {
	if StateListening.String() != "listening" || State(42).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}
