package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/engine"
	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/service"
	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/session"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()

	svc, err := service.NewTableService(session.NewManager(), engine.DefaultTableConfig())
	if err != nil {
		t.Fatalf("NewTableService() error: %v", err)
	}
	return NewDispatcher(svc)
}

func TestNewHub(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.clients == nil {
		t.Error("Hub clients map is nil")
	}

	if hub.inbound == nil {
		t.Error("Hub inbound channel is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))

	client := &Client{
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
		id:   "conn-1",
	}

	hub.registerClient(client)

	if _, exists := hub.clients["conn-1"]; !exists {
		t.Error("Client was not registered")
	}

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	// The client is greeted immediately on registration
	select {
	case data := <-client.send:
		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			t.Fatalf("Failed to unmarshal greeting: %v", err)
		}
		if envelope.Type != TypeConnectionStatus {
			t.Errorf("Greeting type = %q, want %q", envelope.Type, TypeConnectionStatus)
		}
		var status ConnectionStatusData
		if err := json.Unmarshal(envelope.Data, &status); err != nil {
			t.Fatalf("Failed to unmarshal greeting data: %v", err)
		}
		if status.Status != "connected" {
			t.Errorf("Greeting status = %q, want %q", status.Status, "connected")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No greeting received")
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))

	client := &Client{
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
		id:   "conn-1",
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.clients["conn-1"]; exists {
		t.Error("Client should have been removed")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	// A second unregister of the same client must be a no-op
	hub.unregisterClient(client)
}

func TestHubDispatchAfterUnregister(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))

	client := &Client{hub: hub, send: make(chan []byte, sendBufferSize), id: "conn-1"}

	// Replay the run-loop ordering for a connection that queued frames on
	// the buffered inbound channel and then closed: the unregister event
	// can be drained before the leftover frames. Dispatching them must not
	// panic on the closed send channel.
	hub.registerClient(client)
	hub.unregisterClient(client)
	hub.dispatcher.Dispatch(client, []byte(`{"type":"heartbeat"}`))
	hub.dispatcher.Dispatch(client, []byte(`{not json`))

	// Later connections are unaffected
	survivor := &Client{hub: hub, send: make(chan []byte, sendBufferSize), id: "conn-2"}
	hub.registerClient(survivor)
	<-survivor.send // greeting

	hub.dispatcher.Dispatch(survivor, []byte(`{"type":"heartbeat"}`))

	select {
	case data := <-survivor.send:
		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			t.Fatalf("Failed to unmarshal frame: %v", err)
		}
		if envelope.Type != TypeHeartbeat {
			t.Errorf("Frame type = %q, want %q", envelope.Type, TypeHeartbeat)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No heartbeat reply received")
	}
}

func TestHubBroadcastFrame(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))

	client1 := &Client{hub: hub, send: make(chan []byte, sendBufferSize), id: "conn-1"}
	client2 := &Client{hub: hub, send: make(chan []byte, sendBufferSize), id: "conn-2"}

	hub.registerClient(client1)
	hub.registerClient(client2)

	// Drain greetings
	<-client1.send
	<-client2.send

	hub.broadcastFrame(marshalMessage(TypeConnectionStatus, ConnectionStatusData{Status: "test"}))

	for _, client := range []*Client{client1, client2} {
		select {
		case <-client.send:
		case <-time.After(100 * time.Millisecond):
			t.Errorf("Client %s did not receive broadcast", client.id)
		}
	}
}

func TestHubBroadcastDropsStaleClient(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))

	// Zero-buffer send channel: the first broadcast cannot be delivered
	stale := &Client{hub: hub, send: make(chan []byte), id: "stale"}
	hub.clients[stale.id] = stale
	hub.count.Store(1)

	hub.broadcastFrame([]byte(`{"type":"connection_status"}`))

	if _, exists := hub.clients["stale"]; exists {
		t.Error("Stale client should have been dropped")
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// First frame is the connection greeting
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read greeting: %v", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("Failed to unmarshal greeting: %v", err)
	}
	if envelope.Type != TypeConnectionStatus {
		t.Errorf("Greeting type = %q, want %q", envelope.Type, TypeConnectionStatus)
	}

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	conn.Close()

	// Give the hub time to process the unregister
	deadline := time.Now().Add(1 * time.Second)
	for hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after close, want 0", hub.ClientCount())
	}
}

func TestWebSocketSessionInitRoundTrip(t *testing.T) {
	hub := NewHub(newTestDispatcher(t))
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Greeting first
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("Failed to read greeting: %v", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"session_init"}`)); err != nil {
		t.Fatalf("Failed to send session_init: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read session_init reply: %v", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("Failed to unmarshal reply: %v", err)
	}
	if envelope.Type != TypeGameStateUpdate {
		t.Fatalf("Reply type = %q, want %q", envelope.Type, TypeGameStateUpdate)
	}

	var snapshot engine.Snapshot
	if err := json.Unmarshal(envelope.Data, &snapshot); err != nil {
		t.Fatalf("Failed to unmarshal snapshot: %v", err)
	}
	if len(snapshot.Players) != engine.DefaultSeats {
		t.Errorf("Snapshot has %d players, want %d", len(snapshot.Players), engine.DefaultSeats)
	}
	if snapshot.CurrentPlayer != "p1" {
		t.Errorf("CurrentPlayer = %q, want %q", snapshot.CurrentPlayer, "p1")
	}
}
