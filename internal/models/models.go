package models

import "time"

// GroupRoom is the receiver marker for the shared broadcast room every
// member and admin may join.
const GroupRoom = "group"

// AdminParticipant identifies the club's administrative party. Every other
// participant is keyed by their phone number.
const AdminParticipant = "admin"

// Message is one persisted chat record. Messages are append-only: once
// stored they are never edited or deleted. Receiver is either GroupRoom or a
// participant id.
type Message struct {
	ID        int       `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}
