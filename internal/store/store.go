package store

import "github.com/hassankh203/IslamicSoccerClub/internal/models"

// Store persists chat messages and serves history queries. Implementations
// must be safe for concurrent callers.
type Store interface {
	// AppendMessage persists a message with a server-assigned timestamp and
	// returns the canonical record. Content is never rejected here;
	// empty-body filtering is the router's responsibility.
	AppendMessage(sender, receiver, body string) (*models.Message, error)

	// RoomHistory returns every message addressed to room, oldest first.
	// Unbounded: history grows with the room, there is no pagination yet.
	RoomHistory(room string) ([]models.Message, error)

	// PairHistory returns the conversation between a and b, oldest first.
	// Symmetric: PairHistory(a, b) and PairHistory(b, a) are identical.
	PairHistory(a, b string) ([]models.Message, error)
}
