package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/kiwari-pos/floor/internal/store"
)

// Topics a client can subscribe to. TopicFloor receives every event.
const (
	TopicFloor       = "floor"
	TopicOrder       = "order"
	TopicTable       = "table"
	TopicReservation = "reservation"
	TopicMenu        = "menu"
)

var topics = map[string]bool{
	TopicFloor:       true,
	TopicOrder:       true,
	TopicTable:       true,
	TopicReservation: true,
	TopicMenu:        true,
}

// ValidTopic reports whether clients may subscribe to topic.
func ValidTopic(topic string) bool {
	return topics[topic]
}

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// topicEvent is an internal struct for routing events to specific rooms
type topicEvent struct {
	Topic string
	Event Event
}

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	// Registered clients by topic
	rooms map[string]map[*Client]bool

	// Inbound messages from clients (register/unregister)
	register   chan *Client
	unregister chan *Client

	// Outbound messages to broadcast
	broadcast chan *topicEvent

	// Closed when Run returns
	done chan struct{}

	// Mutex for thread-safe room access
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *topicEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns when ctx is done.
// This should be called as a goroutine: go hub.Run(ctx)
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.topic] == nil {
				h.rooms[client.topic] = make(map[*Client]bool)
			}
			h.rooms[client.topic][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			// Marshal event to JSON once
			message, err := json.Marshal(event.Event)
			if err != nil {
				log.Printf("ERROR: marshal ws event %s: %v", event.Event.Type, err)
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[event.Topic] {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close and unregister
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) add(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.rooms[client.topic]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	// Clean up empty rooms
	if len(clients) == 0 {
		delete(h.rooms, client.topic)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, clients := range h.rooms {
		for client := range clients {
			close(client.send)
		}
		delete(h.rooms, topic)
	}
}

// Broadcast queues an event for every client subscribed to topic. It never
// blocks: when the queue is full the event is dropped and logged.
func (h *Hub) Broadcast(topic string, event Event) {
	select {
	case h.broadcast <- &topicEvent{Topic: topic, Event: event}:
	default:
		log.Printf("WARN: ws broadcast queue full, dropping %s event for %s", event.Type, topic)
	}
}

// Notify implements store.Notifier. Each notification goes to the room for
// its entity and to the floor room.
func (h *Hub) Notify(n store.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("ERROR: marshal notification %s: %v", n.Kind, err)
		return
	}
	event := Event{Type: n.Kind, Payload: payload}
	if n.Entity != "" && n.Entity != TopicFloor {
		h.Broadcast(n.Entity, event)
	}
	h.Broadcast(TopicFloor, event)
}
