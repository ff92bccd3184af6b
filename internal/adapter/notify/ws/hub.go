// Package ws broadcasts kingdom news over WebSocket. The feed is one-way:
// clients subscribe and receive events, they never send commands.
package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is the wire shape of one news item.
type Event struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

const (
	EventNews      = "news"
	EventDethroned = "dethroned"
)

// Hub fans news out to every subscribed connection. It implements
// ports.NotificationSink: delivery is best effort and never blocks the
// game path.
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event
	quit       chan struct{}
	now        func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 256),
		quit:       make(chan struct{}),
		now:        time.Now,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case ev := <-h.events:
			h.broadcast(ev)

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) NotifyDethroned(oldName, newName, reason string) {
	h.enqueue(Event{
		Type:    EventDethroned,
		Message: oldName + " has fallen to " + newName + " (" + reason + ")",
		At:      h.now(),
	})
}

func (h *Hub) PublishNews(message string) {
	h.enqueue(Event{Type: EventNews, Message: message, At: h.now()})
}

func (h *Hub) enqueue(ev Event) {
	select {
	case h.events <- ev:
	default:
		log.Printf("ws: event queue full, dropping %s", ev.Type)
	}
}

func (h *Hub) broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("ws: client buffer full, dropping event")
		}
	}
}
