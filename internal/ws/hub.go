package ws

import (
	"encoding/json"
	"log/slog"

	"mindlyst/internal/events"
)

// Hub fans contact lifecycle events out to a user's open connections. A
// user can hold several connections (tabs, devices).
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	notify     chan notification
}

type notification struct {
	userID  string
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		notify:     make(chan notification),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true

		case client := <-h.unregister:
			if conns, ok := h.clients[client.UserID]; ok && conns[client] {
				delete(conns, client)
				close(client.Send)
				if len(conns) == 0 {
					delete(h.clients, client.UserID)
				}
			}

		case n := <-h.notify:
			for client := range h.clients[n.userID] {
				select {
				case client.Send <- n.payload:
				default:
					// Slow consumer: drop the connection rather than block
					// the hub loop.
					delete(h.clients[n.userID], client)
					close(client.Send)
				}
			}
		}
	}
}

// Notify implements the contact service's Notifier.
func (h *Hub) Notify(userID string, event events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode notification", "error", err)
		return
	}
	h.notify <- notification{userID: userID, payload: payload}
}
