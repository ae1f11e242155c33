package ws

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/hassankh203/IslamicSoccerClub/internal/models"
	"github.com/hassankh203/IslamicSoccerClub/internal/store"
)

// SendEvent is an inbound chat message from a client, already validated at
// the connection boundary.
type SendEvent struct {
	Sender   string
	Receiver string
	Body     string
}

type joinRequest struct {
	client *Client
	room   string
}

type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Room membership: room name -> joined connections. A participant's own
	// id doubles as their private inbox room, so private delivery is just a
	// broadcast to that room. Membership is ephemeral and rebuilt on
	// reconnect.
	rooms map[string]map[*Client]bool

	// Inbound messages from the clients.
	inbound chan SendEvent

	// Join requests from the clients.
	join chan joinRequest

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	store store.Store

	// DedupSelfEcho suppresses the second copy when a private message's
	// receiver and sender rooms share a connection. Whether the double echo
	// is a bug is unresolved, so it stays switchable rather than fixed.
	// Set before Run is started.
	DedupSelfEcho bool
}

func NewHub(store store.Store) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		inbound:    make(chan SendEvent),
		join:       make(chan joinRequest),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		store:      store,
	}
}

// Run serializes all registry mutation and routing on a single goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			h.disconnect(client)
		case req := <-h.join:
			h.joinRoom(req.client, req.room)
		case event := <-h.inbound:
			h.route(event)
		}
	}
}

// Join subscribes the client to a room. Unknown rooms are created on first
// join; joining twice is a no-op.
func (h *Hub) Join(client *Client, room string) {
	h.join <- joinRequest{client: client, room: room}
}

// Send hands an inbound message to the router.
func (h *Hub) Send(event SendEvent) {
	h.inbound <- event
}

func (h *Hub) joinRoom(client *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

func (h *Hub) disconnect(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	for room, members := range h.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.clients, client)
	close(client.send)
}

// route persists then fans out one send event. Persisting first guarantees
// history and the live view never diverge: a message that failed to persist
// is never delivered.
func (h *Hub) route(event SendEvent) {
	if strings.TrimSpace(event.Body) == "" {
		return
	}

	msg, err := h.store.AppendMessage(event.Sender, event.Receiver, event.Body)
	if err != nil {
		log.Printf("Error saving message: %v", err)
		return
	}

	if event.Receiver == models.GroupRoom {
		h.broadcast(models.GroupRoom, msg, nil)
		return
	}

	// Private: deliver to the receiver's inbox, then echo to the sender's
	// own room. The echo is the sender's only send confirmation.
	delivered := h.broadcast(event.Receiver, msg, nil)
	if h.DedupSelfEcho {
		h.broadcast(event.Sender, msg, delivered)
	} else {
		h.broadcast(event.Sender, msg, nil)
	}
}

// broadcast delivers msg to every connection joined to room, skipping any in
// skip, and reports who received it. Delivery is fire-and-forget: a client
// whose send buffer is full is dropped.
func (h *Hub) broadcast(room string, msg *models.Message, skip map[*Client]bool) map[*Client]bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error encoding message: %v", err)
		return nil
	}

	delivered := make(map[*Client]bool)
	for client := range h.rooms[room] {
		if skip[client] {
			continue
		}
		select {
		case client.send <- data:
			delivered[client] = true
		default:
			h.disconnect(client)
		}
	}
	return delivered
}
