package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"arcade_server/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
)

// Client is one websocket connection. The peer identity is fixed at upgrade
// time; the room membership is tracked so an ungraceful drop can be handed
// to the registry after the grace period.
type Client struct {
	ConnID string
	PeerID string
	Conn   *websocket.Conn
	Send   chan []byte

	hub *Hub

	mu     sync.Mutex
	roomID string
}

func NewClient(connID, peerID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ConnID: connID,
		PeerID: peerID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		hub:    hub,
	}
}

// Run pumps the connection until it drops. Blocks.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) setRoom(roomID string) {
	c.mu.Lock()
	c.roomID = roomID
	c.mu.Unlock()
}

func (c *Client) room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

func (c *Client) readPump() {
	defer c.hub.dropClient(c)

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read error", "conn", c.ConnID, "error", err)
			}
			return
		}
		c.hub.Dispatch(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("write error", "conn", c.ConnID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
