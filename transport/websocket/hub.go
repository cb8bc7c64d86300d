package websocket

import (
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outbound buffer per client; a client that cannot keep up is dropped.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Client represents one WebSocket connection. The id is the stable
// connection identity sessions bind against.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string

	// closed is set when the hub unregisters the connection. It is written
	// and read only on the hub run goroutine, which also owns the channel
	// close, so no synchronization is needed.
	closed bool
}

// ID returns the connection's stable identity
func (c *Client) ID() string {
	return c.id
}

// trySend queues a frame for the write pump without blocking. Frames for
// closed or slow connections are dropped. Must be called from the hub run
// goroutine: it is what keeps the closed check and the channel close
// ordered. The inbound queue is buffered, so a frame can be dispatched
// after its connection has already unregistered; the closed check is what
// keeps that frame from hitting a closed channel.
func (c *Client) trySend(frame []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// inboundFrame pairs a raw text frame with the connection it came from
type inboundFrame struct {
	client  *Client
	payload []byte
}

// Hub is the connection registry. All registry mutations and all inbound
// dispatch run on the single Run goroutine, so message handling and every
// table mutation reached from it are strictly ordered.
type Hub struct {
	// Registered clients by connection id
	clients map[string]*Client

	// Inbound frames from clients, drained by Run
	inbound chan inboundFrame

	// Pre-encoded frames to fan out to every client
	broadcast chan []byte

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Registry size mirror for observability reads outside the run loop
	count atomic.Int64

	dispatcher *Dispatcher
}

// NewHub creates a hub that routes inbound frames to the dispatcher
func NewHub(dispatcher *Dispatcher) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		inbound:    make(chan inboundFrame, 64),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		dispatcher: dispatcher,
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case frame := <-h.inbound:
			h.dispatcher.Dispatch(frame.client, frame.payload)

		case data := <-h.broadcast:
			h.broadcastFrame(data)
		}
	}
}

// ServeWS upgrades an HTTP request and registers the connection
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		id:   uuid.NewString(),
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastState queues a game state update for every connected client
func (h *Hub) BroadcastState(snapshot *engine.Snapshot) {
	h.broadcast <- marshalMessage(TypeGameStateUpdate, snapshot)
}

// ClientCount returns the number of registered connections. The value is
// advisory; it may be stale by the time it is read.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// registerClient adds a connection and greets it
func (h *Hub) registerClient(client *Client) {
	h.clients[client.id] = client
	h.count.Store(int64(len(h.clients)))

	client.trySend(marshalMessage(TypeConnectionStatus, ConnectionStatusData{
		Status:  "connected",
		Message: "Welcome to the table",
	}))

	log.Printf("Connection %s opened (total connections: %d)", client.id, len(h.clients))
}

// unregisterClient removes a connection and lets the dispatcher run its
// close hook (opportunistic session sweep).
func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client.id]; !ok {
		return
	}
	delete(h.clients, client.id)
	h.count.Store(int64(len(h.clients)))
	client.closed = true
	close(client.send)

	log.Printf("Connection %s closed (remaining connections: %d)", client.id, len(h.clients))

	h.dispatcher.ConnectionClosed(client.id)
}

// broadcastFrame fans a frame out to a stable view of the registry.
// Clients whose buffers are full are dropped; delivery is best-effort.
func (h *Hub) broadcastFrame(data []byte) {
	var stale []*Client
	for _, client := range h.clients {
		if !client.trySend(data) {
			stale = append(stale, client)
		}
	}
	for _, client := range stale {
		h.unregisterClient(client)
	}
}

// readPump pumps frames from the WebSocket connection into the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.hub.inbound <- inboundFrame{client: c, payload: message}
	}
}

// writePump pumps frames from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
