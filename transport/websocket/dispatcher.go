package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/engine"
	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/service"
)

// Dispatcher routes inbound frames to the table service and writes
// responses back to the originating connection. It is invoked from the
// hub's run loop only, one frame at a time.
type Dispatcher struct {
	service service.TableService
}

// NewDispatcher creates a dispatcher over the given service
func NewDispatcher(svc service.TableService) *Dispatcher {
	return &Dispatcher{service: svc}
}

// Dispatch parses one inbound frame and routes it by type. No frame can
// terminate the connection: parse failures and internal failures are
// reported to the sender as error messages and the connection stays open.
func (d *Dispatcher) Dispatch(client *Client, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from dispatch panic on %s: %v", client.id, r)
			// A panic here would escape the deferred function and kill the
			// run loop; keep the error reply best-effort.
			defer func() { recover() }()
			d.reply(client, errorMessage(CodeServerError, "Internal server error"))
		}
	}()

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		d.reply(client, errorMessage(CodeParseError, fmt.Sprintf("Invalid JSON: %v", err)))
		return
	}

	if envelope.Type == "" {
		d.reply(client, errorMessage(CodeInvalidMessage, "Message must have a 'type' field"))
		return
	}

	switch envelope.Type {
	case TypeSessionInit:
		d.handleSessionInit(client)
	case TypeBetAction:
		d.handleBetAction(client, envelope.Data)
	case TypeHeartbeat:
		d.handleHeartbeat(client)
	case TypeLogout:
		d.handleLogout(client)
	default:
		d.reply(client, errorMessage(CodeUnknownMessageType, "Unknown message type: "+envelope.Type))
	}
}

// ConnectionClosed is the hub's close hook. The session stays alive so the
// player can resume; the close event only triggers a sweep of sessions
// that have already expired.
func (d *Dispatcher) ConnectionClosed(connID string) {
	if removed := d.service.SweepSessions(context.Background()); removed > 0 {
		log.Printf("Swept %d expired sessions after connection %s closed", removed, connID)
	}
}

// handleSessionInit resolves or creates the connection's session and
// always answers with the full table state.
func (d *Dispatcher) handleSessionInit(client *Client) {
	_, snapshot, err := d.service.InitSession(context.Background(), client.id)
	if err != nil {
		d.reply(client, errorMessage(CodeServerError, "Failed to initialize session"))
		return
	}
	d.reply(client, marshalMessage(TypeGameStateUpdate, snapshot))
}

// handleBetAction validates the session and payload, applies the action,
// and broadcasts the resulting snapshot to every connection.
func (d *Dispatcher) handleBetAction(client *Client, data json.RawMessage) {
	ctx := context.Background()

	// Session check comes first: an unbound connection gets invalid_token
	// regardless of payload shape.
	if !d.service.TouchConnection(ctx, client.id) {
		d.reply(client, errorMessage(CodeInvalidToken, "Invalid or expired session"))
		return
	}

	if len(data) == 0 {
		d.reply(client, errorMessage(CodeInvalidMessage, "Missing 'data' field"))
		return
	}

	var payload BetActionData
	if err := json.Unmarshal(data, &payload); err != nil {
		d.reply(client, errorMessage(CodeInvalidMessage, "Malformed 'data' field"))
		return
	}

	if payload.Action == nil {
		d.reply(client, errorMessage(CodeInvalidAction, "Missing 'action' field"))
		return
	}

	amount := 0
	if payload.Amount != nil {
		amount = int(*payload.Amount)
	}

	snapshot, err := d.service.SubmitAction(ctx, client.id, engine.Action(*payload.Action), amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			d.reply(client, errorMessage(CodeInvalidToken, "Invalid or expired session"))
		case errors.Is(err, engine.ErrUnknownAction):
			d.reply(client, errorMessage(CodeInvalidAction, fmt.Sprintf("Unknown action %q", *payload.Action)))
		case errors.Is(err, engine.ErrNotYourTurn),
			errors.Is(err, engine.ErrGameNotActive),
			errors.Is(err, service.ErrNoSeat):
			d.reply(client, errorMessage(CodeIllegalAction, err.Error()))
		default:
			d.reply(client, errorMessage(CodeServerError, "Internal server error"))
		}
		return
	}

	client.hub.BroadcastState(snapshot)
}

// handleHeartbeat echoes a timestamp. The only session side effect is the
// activity touch performed by resolving the connection's session, if any.
func (d *Dispatcher) handleHeartbeat(client *Client) {
	d.service.TouchConnection(context.Background(), client.id)
	d.reply(client, marshalMessage(TypeHeartbeat, HeartbeatData{
		Timestamp: time.Now().UnixMilli(),
	}))
}

// handleLogout removes the connection's session, if any
func (d *Dispatcher) handleLogout(client *Client) {
	if err := d.service.Logout(context.Background(), client.id); err != nil {
		d.reply(client, errorMessage(CodeServerError, "Failed to log out"))
		return
	}
	d.reply(client, marshalMessage(TypeConnectionStatus, ConnectionStatusData{
		Status:  "disconnected",
		Message: "Session closed",
	}))
}

// reply queues a frame for the sender. Drops are silent: a closed client
// has nowhere to send, and a slow one gets dropped by the next broadcast.
func (d *Dispatcher) reply(client *Client, frame []byte) {
	client.trySend(frame)
}
