package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/JaredCorduan/rush-hour-solver/game/service"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub.solves == nil {
		t.Error("Expected solves map to be initialized")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Expected hub channels to be initialized")
	}
}

func TestRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	hub.registerClient(client)

	if len(hub.solves["ab12"]) != 1 {
		t.Errorf("Expected 1 client for solve ab12, got %d", len(hub.solves["ab12"]))
	}
	if !hub.solves["ab12"][client] {
		t.Error("Expected client to be registered")
	}
}

func TestRegisterClient_MultiplePerSolve(t *testing.T) {
	hub := NewHub()

	first := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	second := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	other := &Client{hub: hub, send: make(chan []byte, 256), solveID: "cd34"}

	hub.registerClient(first)
	hub.registerClient(second)
	hub.registerClient(other)

	if len(hub.solves["ab12"]) != 2 {
		t.Errorf("Expected 2 clients for solve ab12, got %d", len(hub.solves["ab12"]))
	}
	if len(hub.solves["cd34"]) != 1 {
		t.Errorf("Expected 1 client for solve cd34, got %d", len(hub.solves["cd34"]))
	}
}

func TestUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	hub.registerClient(client)
	hub.unregisterClient(client)

	// The empty watcher set is removed entirely.
	if _, exists := hub.solves["ab12"]; exists {
		t.Error("Expected empty watcher set to be cleaned up")
	}

	// The send channel is closed.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("Expected send channel to be closed")
		}
	default:
		t.Error("Expected send channel to be closed, but it would block")
	}
}

func TestUnregisterClient_Unknown(t *testing.T) {
	hub := NewHub()

	// Unregistering a client that was never registered must not panic.
	client := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	hub.unregisterClient(client)
}

func TestBroadcastProgress(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	hub.register <- client

	hub.BroadcastProgress(service.ProgressEvent{
		SolveID:       "ab12",
		Layer:         3,
		FrontierSize:  17,
		NodesExplored: 120,
	})

	select {
	case data := <-client.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to unmarshal broadcast: %v", err)
		}
		if msg.Event != "progress" || msg.SolveID != "ab12" {
			t.Errorf("Unexpected message: %+v", msg)
		}
		if msg.Progress == nil || msg.Progress.Layer != 3 || msg.Progress.FrontierSize != 17 {
			t.Errorf("Unexpected progress payload: %+v", msg.Progress)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected a broadcast message")
	}
}

func TestBroadcastResult(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	hub.register <- client

	hub.BroadcastResult(&service.SolveInfo{
		ID:        "ab12",
		Status:    service.StatusFinished,
		Solvable:  true,
		MoveCount: 8,
	})

	select {
	case data := <-client.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to unmarshal broadcast: %v", err)
		}
		if msg.Event != "finished" {
			t.Errorf("Expected finished event, got %q", msg.Event)
		}
		if msg.Result == nil || !msg.Result.Solvable || msg.Result.MoveCount != 8 {
			t.Errorf("Unexpected result payload: %+v", msg.Result)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected a broadcast message")
	}
}

func TestBroadcast_OnlyMatchingSolve(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := &Client{hub: hub, send: make(chan []byte, 256), solveID: "ab12"}
	bystander := &Client{hub: hub, send: make(chan []byte, 256), solveID: "cd34"}
	hub.register <- watcher
	hub.register <- bystander

	hub.BroadcastProgress(service.ProgressEvent{SolveID: "ab12", Layer: 1})

	select {
	case <-watcher.send:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected the watcher to receive the broadcast")
	}

	select {
	case <-bystander.send:
		t.Fatal("Bystander received a broadcast for another solve")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestServeWS(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("solve"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?solve=ab12"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	defer conn.Close()

	// Give the hub a moment to process the registration.
	time.Sleep(50 * time.Millisecond)

	hub.BroadcastProgress(service.ProgressEvent{SolveID: "ab12", Layer: 0, FrontierSize: 1})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if msg.SolveID != "ab12" || msg.Event != "progress" {
		t.Errorf("Unexpected message: %+v", msg)
	}
}
