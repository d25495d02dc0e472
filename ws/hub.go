// Package ws - лента изменений сервера: после каждой успешной записи
// подписчики /api/ws получают событие коллекции.
package ws

import (
	"context"
	"sync"

	"hirehub/internal/logger"
)

// Event - изменение серверной коллекции
type Event struct {
	Collection string `json:"collection"`
	Action     string `json:"action"`
	ID         string `json:"id"`
	Record     any    `json:"record,omitempty"`
}

type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}

	// mu только для чтения счетчика снаружи; clients меняет один Run
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
	}
}

// Run обслуживает подписчиков до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("ws client registered", "user_id", c.UserID, "total", total)

		case c := <-h.unregister:
			h.remove(c)

		case ev := <-h.broadcast:
			h.fanout(ev)
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
		logger.Debug("ws client unregistered", "user_id", c.UserID, "total", len(h.clients))
	}
}

func (h *Hub) fanout(ev Event) {
	h.mu.RLock()
	var slow []*Client
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logger.Warn("ws client dropped, send buffer full", "user_id", c.UserID)
		h.remove(c)
	}
}

// Publish ставит событие в рассылку. Не блокирует: при переполнении событие теряется.
func (h *Hub) Publish(collection, action, id string, record any) {
	select {
	case h.broadcast <- Event{Collection: collection, Action: action, ID: id, Record: record}:
	default:
		logger.Warn("ws broadcast queue full, event dropped", "collection", collection, "id", id)
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
