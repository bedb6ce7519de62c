package ws

import (
	"github.com/gorilla/websocket"
)

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// ReadPump drains the connection until it errors. Clients only receive
// notifications; anything they send is discarded.
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) WritePump() {
	defer c.Conn.Close()

	for payload := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
}
