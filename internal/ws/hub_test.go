package ws

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hassankh203/IslamicSoccerClub/internal/models"
	"github.com/hassankh203/IslamicSoccerClub/internal/store/sqlstore"
)

// failingStore refuses every operation, standing in for an unavailable
// database.
type failingStore struct{}

func (failingStore) AppendMessage(sender, receiver, body string) (*models.Message, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) RoomHistory(room string) ([]models.Message, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) PairHistory(a, b string) ([]models.Message, error) {
	return nil, errors.New("store unavailable")
}

func newTestHub(t *testing.T) *Hub {
	store, err := sqlstore.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return NewHub(store)
}

// newTestClient registers a client directly, bypassing the websocket
// upgrade. The hub only ever touches the send channel.
func newTestClient(h *Hub) *Client {
	c := &Client{id: "test", hub: h, send: make(chan []byte, 8)}
	h.clients[c] = true
	return c
}

func received(t *testing.T, c *Client) []models.Message {
	t.Helper()
	var messages []models.Message
	for {
		select {
		case data := <-c.send:
			var m models.Message
			if err := json.Unmarshal(data, &m); err != nil {
				t.Fatalf("Failed to decode delivered message: %v", err)
			}
			messages = append(messages, m)
		default:
			return messages
		}
	}
}

func TestHubRun(t *testing.T) {
	hub := newTestHub(t)
	go hub.Run()

	client := newTestClient(hub)
	hub.Join(client, models.GroupRoom)
	hub.Send(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: "Hello World"})

	// Give some time for the hub to process
	time.Sleep(100 * time.Millisecond)

	messages, err := hub.store.RoomHistory(models.GroupRoom)
	if err != nil {
		t.Fatalf("Failed to get messages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].Body != "Hello World" {
		t.Errorf("Expected body 'Hello World', got '%s'", messages[0].Body)
	}

	delivered := received(t, client)
	if len(delivered) != 1 {
		t.Fatalf("Expected 1 delivered message, got %d", len(delivered))
	}
	if delivered[0].Sender != "5551234" || delivered[0].Receiver != models.GroupRoom || delivered[0].Body != "Hello World" {
		t.Errorf("Unexpected delivered message: %+v", delivered[0])
	}
}

func TestGroupBroadcast(t *testing.T) {
	hub := newTestHub(t)

	member := newTestClient(hub)
	admin := newTestClient(hub)
	outsider := newTestClient(hub)
	hub.joinRoom(member, models.GroupRoom)
	hub.joinRoom(admin, models.GroupRoom)
	hub.joinRoom(outsider, "5559999")

	hub.route(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: "hello"})

	if got := received(t, member); len(got) != 1 {
		t.Errorf("Expected member to receive 1 message, got %d", len(got))
	}
	if got := received(t, admin); len(got) != 1 {
		t.Errorf("Expected admin to receive 1 message, got %d", len(got))
	}
	if got := received(t, outsider); len(got) != 0 {
		t.Errorf("Expected outsider to receive nothing, got %d", len(got))
	}
}

func TestPrivateSelfEcho(t *testing.T) {
	hub := newTestHub(t)

	sender := newTestClient(hub)
	receiver := newTestClient(hub)
	outsider := newTestClient(hub)
	hub.joinRoom(sender, "5551234")
	hub.joinRoom(receiver, models.AdminParticipant)
	hub.joinRoom(outsider, "5559999")

	hub.route(SendEvent{Sender: "5551234", Receiver: models.AdminParticipant, Body: "hi"})

	if got := received(t, receiver); len(got) != 1 {
		t.Errorf("Expected receiver to get 1 message, got %d", len(got))
	}
	if got := received(t, sender); len(got) != 1 {
		t.Errorf("Expected sender echo, got %d messages", len(got))
	}
	if got := received(t, outsider); len(got) != 0 {
		t.Errorf("Expected outsider to receive nothing, got %d", len(got))
	}

	history, err := hub.store.PairHistory("5551234", models.AdminParticipant)
	if err != nil {
		t.Fatalf("PairHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].Body != "hi" {
		t.Errorf("Expected persisted pair message, got %+v", history)
	}
}

func TestEmptyBodySkipped(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub)
	hub.joinRoom(client, models.GroupRoom)

	hub.route(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: "   "})
	hub.route(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: ""})

	if got := received(t, client); len(got) != 0 {
		t.Errorf("Expected no delivery for blank bodies, got %d", len(got))
	}

	history, err := hub.store.RoomHistory(models.GroupRoom)
	if err != nil {
		t.Fatalf("RoomHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected no persisted messages, got %d", len(history))
	}
}

func TestPersistenceFailureNoDelivery(t *testing.T) {
	// Store-then-forward: a message that failed to persist is never
	// delivered, so history and the live view cannot diverge.
	hub := NewHub(failingStore{})

	member := newTestClient(hub)
	admin := newTestClient(hub)
	hub.joinRoom(member, models.GroupRoom)
	hub.joinRoom(admin, models.AdminParticipant)

	hub.route(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: "hello"})
	hub.route(SendEvent{Sender: "5551234", Receiver: models.AdminParticipant, Body: "hi"})

	if got := received(t, member); len(got) != 0 {
		t.Errorf("Expected no group delivery on persistence failure, got %d", len(got))
	}
	if got := received(t, admin); len(got) != 0 {
		t.Errorf("Expected no private delivery on persistence failure, got %d", len(got))
	}
}

func TestJoinIdempotent(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub)
	hub.joinRoom(client, models.GroupRoom)
	hub.joinRoom(client, models.GroupRoom)

	hub.route(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: "once"})

	if got := received(t, client); len(got) != 1 {
		t.Errorf("Expected a single delivery after duplicate joins, got %d", len(got))
	}
}

func TestPrivateDoubleEchoOnSharedRooms(t *testing.T) {
	// A connection joined to both the receiver's and the sender's rooms gets
	// the message twice unless dedup is enabled.
	hub := newTestHub(t)
	client := newTestClient(hub)
	hub.joinRoom(client, "5551234")
	hub.joinRoom(client, models.AdminParticipant)

	hub.route(SendEvent{Sender: "5551234", Receiver: models.AdminParticipant, Body: "hi"})

	if got := received(t, client); len(got) != 2 {
		t.Errorf("Expected 2 deliveries without dedup, got %d", len(got))
	}

	dedupHub := newTestHub(t)
	dedupHub.DedupSelfEcho = true
	dedupClient := newTestClient(dedupHub)
	dedupHub.joinRoom(dedupClient, "5551234")
	dedupHub.joinRoom(dedupClient, models.AdminParticipant)

	dedupHub.route(SendEvent{Sender: "5551234", Receiver: models.AdminParticipant, Body: "hi"})

	if got := received(t, dedupClient); len(got) != 1 {
		t.Errorf("Expected 1 delivery with dedup, got %d", len(got))
	}
}

func TestDisconnectLeavesRooms(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub)
	other := newTestClient(hub)
	hub.joinRoom(client, models.GroupRoom)
	hub.joinRoom(other, models.GroupRoom)

	hub.disconnect(client)

	hub.route(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: "after"})

	if got := received(t, other); len(got) != 1 {
		t.Errorf("Expected remaining client to receive 1 message, got %d", len(got))
	}
	if _, ok := hub.rooms[models.GroupRoom][client]; ok {
		t.Error("Expected disconnected client to be removed from the room")
	}
	if _, ok := <-client.send; ok {
		t.Error("Expected send channel to be closed")
	}
}

func TestSlowClientDropped(t *testing.T) {
	hub := newTestHub(t)

	slow := newTestClient(hub)
	// Fill the buffer so the next delivery cannot go through.
	for i := 0; i < cap(slow.send); i++ {
		slow.send <- []byte("{}")
	}
	hub.joinRoom(slow, models.GroupRoom)

	hub.route(SendEvent{Sender: "5551234", Receiver: models.GroupRoom, Body: "overflow"})

	if _, ok := hub.clients[slow]; ok {
		t.Error("Expected slow client to be dropped")
	}
}
