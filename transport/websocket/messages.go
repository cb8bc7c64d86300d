package websocket

import "encoding/json"

// Inbound message types. Anything else is answered with an
// unknown_message_type error.
const (
	TypeSessionInit = "session_init"
	TypeBetAction   = "bet_action"
	TypeHeartbeat   = "heartbeat"
	TypeLogout      = "logout"
)

// Outbound message types
const (
	TypeConnectionStatus = "connection_status"
	TypeGameStateUpdate  = "game_state_update"
	TypeError            = "error"
)

// Error codes carried in error messages
const (
	CodeInvalidMessage     = "invalid_message"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidAction      = "invalid_action"
	CodeIllegalAction      = "illegal_action"
	CodeUnknownMessageType = "unknown_message_type"
	CodeParseError         = "parse_error"
	CodeServerError        = "server_error"
)

// Envelope is the bidirectional wire frame. Data is decoded per Type, so
// the protocol is a closed union of message kinds rather than a free-form
// object.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// BetActionData is the payload of a bet_action message. Pointer fields
// distinguish absent from zero-valued.
type BetActionData struct {
	Action *string  `json:"action"`
	Amount *float64 `json:"amount"`
}

// ConnectionStatusData is the payload of a connection_status message
type ConnectionStatusData struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HeartbeatData is the payload of a heartbeat reply
type HeartbeatData struct {
	Timestamp int64 `json:"timestamp"`
}

// ErrorData is the payload of an error message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// marshalMessage builds a wire frame from a type tag and payload. A
// payload that fails to marshal is a programming error surfaced as a
// server_error frame so the connection still receives something coherent.
func marshalMessage(msgType string, data interface{}) []byte {
	payload, err := json.Marshal(data)
	if err != nil {
		payload, _ = json.Marshal(ErrorData{
			Code:    CodeServerError,
			Message: "failed to encode response",
		})
		msgType = TypeError
	}
	frame, _ := json.Marshal(Envelope{Type: msgType, Data: payload})
	return frame
}

func errorMessage(code, message string) []byte {
	return marshalMessage(TypeError, ErrorData{Code: code, Message: message})
}
