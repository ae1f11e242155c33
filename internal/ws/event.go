package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventType enumerates the inbound protocol intents.
type EventType string

const (
	// EventJoinGroup subscribes the connection to the broadcast room.
	EventJoinGroup EventType = "join_group"
	// EventJoinPrivate subscribes the connection to its own private inbox.
	EventJoinPrivate EventType = "join_private"
	// EventSend submits a chat message for routing.
	EventSend EventType = "send"
)

// Event is the envelope every client frame decodes into. One payload shape
// is valid per type; frames are validated here, before the hub sees them.
type Event struct {
	Type EventType `json:"type"`

	// Participant is the caller's own id, set for join_private.
	Participant string `json:"participant,omitempty"`

	// Sender, Receiver and Body are set for send. Receiver is either the
	// group room marker or a participant id.
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver,omitempty"`
	Body     string `json:"body,omitempty"`
}

func decodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, err
	}

	switch ev.Type {
	case EventJoinGroup:
	case EventJoinPrivate:
		if ev.Participant == "" {
			return ev, errors.New("join_private requires a participant id")
		}
	case EventSend:
		if ev.Sender == "" || ev.Receiver == "" {
			return ev, errors.New("send requires sender and receiver")
		}
	default:
		return ev, fmt.Errorf("unknown event type %q", ev.Type)
	}
	return ev, nil
}
