// Package websocket tracks which users hold an open notification socket
// and pushes event payloads to them. The hub is created in main and passed
// to its consumers; it owns no ambient global state.
package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type outbound struct {
	userID  uuid.UUID
	payload any
}

type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*websocket.Conn

	register   chan *Client
	unregister chan *Client
	send       chan outbound
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan outbound, 64),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and outbound pushes until Shutdown is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			log.Printf("Client registered: %s", client.UserID)
			h.mu.Lock()
			h.clients[client.UserID] = client.Conn
			h.mu.Unlock()
		case client := <-h.unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			h.mu.Lock()
			if conn, ok := h.clients[client.UserID]; ok && conn == client.Conn {
				delete(h.clients, client.UserID)
			}
			h.mu.Unlock()
		case msg := <-h.send:
			h.deliver(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, conn := range h.clients {
		conn.Close()
		delete(h.clients, userID)
	}
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// SendToUser pushes payload to the user's open socket, if any. Delivery is
// best-effort; offline users are skipped silently.
func (h *Hub) SendToUser(userID uuid.UUID, payload any) {
	select {
	case h.send <- outbound{userID: userID, payload: payload}:
	default:
		log.Printf("Hub send queue full, dropping push for user %s", userID)
	}
}

func (h *Hub) deliver(msg outbound) {
	h.mu.RLock()
	conn, ok := h.clients[msg.userID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := conn.WriteJSON(msg.payload); err != nil {
		log.Printf("Error pushing to client %s: %v", msg.userID, err)
		conn.Close()
		h.mu.Lock()
		if cur, ok := h.clients[msg.userID]; ok && cur == conn {
			delete(h.clients, msg.userID)
		}
		h.mu.Unlock()
	}
}
