package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// Smoke test for a running coordinator: two peers join one tictactoe room,
// ready up and trade the opening moves.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	dialer := websocket.DefaultDialer

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	connA, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?peer=smokeA", port), nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?peer=smokeB", port), nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	roomID := fmt.Sprintf("smoke-%d", time.Now().Unix())

	readerFor := func(name string, conn *websocket.Conn) chan envelope {
		out := make(chan envelope, 32)
		go func() {
			defer close(out)
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				var env envelope
				if err := json.Unmarshal(msg, &env); err != nil {
					log.Printf("%s: bad frame: %s", name, msg)
					continue
				}
				log.Printf("%s <- %s %s", name, env.Type, env.Payload)
				out <- env
			}
		}()
		return out
	}

	eventsA := readerFor("A", connA)
	eventsB := readerFor("B", connB)

	send := func(name string, conn *websocket.Conn, typ string, payload any) {
		body, _ := json.Marshal(payload)
		frame, _ := json.Marshal(envelope{Type: typ, Payload: body})
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Fatalf("%s send %s: %v", name, typ, err)
		}
	}

	join := map[string]any{"gameType": "tictactoe", "roomId": roomID}
	send("A", connA, "join-room", join)
	send("B", connB, "join-room", join)
	waitFor(eventsB, "player-joined")

	send("A", connA, "player-ready", map[string]any{"roomId": roomID})
	send("B", connB, "player-ready", map[string]any{"roomId": roomID})
	waitFor(eventsA, "game-start")
	waitFor(eventsB, "game-start")

	send("A", connA, "submit-move", map[string]any{
		"roomId": roomID,
		"move":   map[string]any{"type": "cell-click", "cellIndex": 4},
	})
	waitFor(eventsB, "game-update")

	send("B", connB, "submit-move", map[string]any{
		"roomId": roomID,
		"move":   map[string]any{"type": "cell-click", "cellIndex": 0},
	})
	waitFor(eventsA, "game-update")

	log.Println("smoke ok: room started and both moves applied")
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func waitFor(events chan envelope, typ string) envelope {
	deadline := time.After(5 * time.Second)
	for {
		select {
		case env, ok := <-events:
			if !ok {
				log.Fatalf("connection closed waiting for %s", typ)
			}
			if env.Type == typ {
				return env
			}
		case <-deadline:
			log.Fatalf("timeout waiting for %s", typ)
		}
	}
}
