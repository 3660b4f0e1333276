package server

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection. Its ID doubles as the player identity
// while the connection is seated in a room; reconnection binds a fresh client
// ID to the old seat via the engine's UpdatePlayerID.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	srv  *Server

	// room is only touched from the read goroutine
	room *Room
}

// send queues an outbound event, dropping it if the client's buffer is full
// (a slow consumer must not block a room).
func (c *Client) sendEvent(event string, data any) {
	select {
	case c.send <- encodeEvent(event, data):
	default:
		c.srv.log.Warn("dropping message for slow client", "client", c.id, "event", event)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.srv.handleDisconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.srv.log.Debug("read error", "client", c.id, "err", err)
			}
			return
		}
		c.srv.handleMessage(c, raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
