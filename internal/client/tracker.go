package client

import "github.com/hassankh203/IslamicSoccerClub/internal/models"

// Tracker mirrors the chat widget's unread badge: a pure state machine fed
// by open/close, page-visibility and message-arrival events. It is not safe
// for concurrent use; one goroutine owns it.
type Tracker struct {
	open     bool
	visible  bool
	unread   int
	messages []models.Message
}

func NewTracker() *Tracker {
	return &Tracker{visible: true}
}

// Open marks the widget open and clears the unread badge.
func (t *Tracker) Open() {
	t.open = true
	t.unread = 0
}

// Close marks the widget closed. The badge keeps counting from zero the next
// time messages arrive.
func (t *Tracker) Close() {
	t.open = false
}

// SetVisible records page visibility. Regaining the foreground clears the
// badge, matching the widget's visibilitychange handling.
func (t *Tracker) SetVisible(visible bool) {
	t.visible = visible
	if visible {
		t.unread = 0
	}
}

// Receive appends msg to the buffer and bumps the badge when the widget is
// closed or the page is hidden. The two checks fire independently, so a
// message arriving while both hold counts twice; the original widget behaves
// this way and product has not signed off on changing it.
func (t *Tracker) Receive(msg models.Message) {
	t.messages = append(t.messages, msg)
	if !t.visible {
		t.unread++
	}
	if !t.open {
		t.unread++
	}
}

// LoadBacklog replaces the buffer with history fetched from the server.
func (t *Tracker) LoadBacklog(messages []models.Message) {
	t.messages = append([]models.Message(nil), messages...)
}

func (t *Tracker) Unread() int {
	return t.unread
}

// Messages returns the buffered messages in arrival order. Duplicates are
// kept as delivered.
func (t *Tracker) Messages() []models.Message {
	return t.messages
}
