package ws

import (
	"log"
	"sync"
)

type message struct {
	employerID string
	payload    []byte
}

// Hub fans application events out to the owning employer's connected
// dashboard sessions. Connections are grouped by employer id.
type Hub struct {
	clients    map[string]map[*Client]bool
	send       chan message
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		send:       make(chan message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			room := h.clients[client.employerID]
			if room == nil {
				room = make(map[*Client]bool)
				h.clients[client.employerID] = room
			}
			room[client] = true
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | employer=%s clients=%d", client.employerID, h.ClientCount())
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if room, ok := h.clients[client.employerID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
				}
				if len(room) == 0 {
					delete(h.clients, client.employerID)
				}
			}
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | employer=%s clients=%d", client.employerID, h.ClientCount())
			}

		case msg := <-h.send:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[msg.employerID]))
			for c := range h.clients[msg.employerID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send delivers payload to every connection of the given employer.
// Drops the message when the buffer is full rather than blocking the
// caller's request.
func (h *Hub) Send(employerID string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- message{employerID: employerID, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS send dropped | reason=buffer_full employer=%s", employerID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	total := 0
	for _, room := range h.clients {
		total += len(room)
	}
	return total
}
