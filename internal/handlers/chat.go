package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hassankh203/IslamicSoccerClub/internal/models"
	"github.com/hassankh203/IslamicSoccerClub/internal/store"
)

type ChatHandler struct {
	Store store.Store
}

// GetHistory serves GET /api/chat/history. Query parameters select the view:
// group=1 for the broadcast room, or user1 and user2 for a private pair.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		messages []models.Message
		err      error
	)
	switch {
	case q.Get("group") != "":
		messages, err = h.Store.RoomHistory(models.GroupRoom)
	case q.Get("user1") != "" && q.Get("user2") != "":
		messages, err = h.Store.PairHistory(q.Get("user1"), q.Get("user2"))
	default:
		http.Error(w, "Missing parameters", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch chat history", http.StatusInternalServerError)
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.Message{"messages": messages})
}
