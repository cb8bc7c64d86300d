// Command probe is a small WebSocket smoke client for the card table
// server. It connects, initializes a session, optionally submits a bet
// action, sends a heartbeat, and prints every frame it receives. Useful
// for checking a running server without a browser.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

var (
	addr   = flag.String("addr", "localhost:8080", "server address")
	action = flag.String("action", "", "bet action to submit after init (fold, check, call, raise)")
	amount = flag.Int("amount", 0, "amount for a raise action")
	logout = flag.Bool("logout", false, "log out before disconnecting")
)

func main() {
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws", *addr)
	fmt.Printf("Connecting to %s\n", url)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Printf("Dial failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Greeting arrives before anything is sent
	readFrame(conn, "greeting")

	send(conn, `{"type":"session_init"}`)
	readFrame(conn, "session_init reply")

	if *action != "" {
		frame := fmt.Sprintf(`{"type":"bet_action","data":{"action":%q,"amount":%d}}`, *action, *amount)
		send(conn, frame)
		readFrame(conn, "bet_action reply")
	}

	send(conn, `{"type":"heartbeat"}`)
	readFrame(conn, "heartbeat reply")

	if *logout {
		send(conn, `{"type":"logout"}`)
		readFrame(conn, "logout reply")
	}

	fmt.Println("Done")
}

func send(conn *websocket.Conn, frame string) {
	if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		fmt.Printf("Write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf(">> %s\n", frame)
}

func readFrame(conn *websocket.Conn, label string) {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		fmt.Printf("Read failed waiting for %s: %v\n", label, err)
		os.Exit(1)
	}

	// Re-indent for readability; fall back to the raw frame
	var pretty map[string]interface{}
	if err := json.Unmarshal(data, &pretty); err == nil {
		if out, err := json.MarshalIndent(pretty, "", "  "); err == nil {
			fmt.Printf("<< %s\n", out)
			return
		}
	}
	fmt.Printf("<< %s\n", data)
}
