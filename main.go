package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hassankh203/IslamicSoccerClub/internal/config"
	"github.com/hassankh203/IslamicSoccerClub/internal/handlers"
	"github.com/hassankh203/IslamicSoccerClub/internal/middleware"
	"github.com/hassankh203/IslamicSoccerClub/internal/store/sqlstore"
	"github.com/hassankh203/IslamicSoccerClub/internal/ws"
)

var addr = flag.String("addr", "", "http service address (overrides CHAT_ADDR)")

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	if *addr != "" {
		cfg.Addr = *addr
	}

	// Initialize the message store. Use CHAT_DB_DRIVER=postgres with a
	// connection string DSN to run against Postgres instead of SQLite.
	store, err := sqlstore.New(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// The hub owns all room membership and routing; it is constructed here
	// and handed to whoever needs it rather than living as a global.
	hub := ws.NewHub(store)
	hub.DedupSelfEcho = cfg.DedupSelfEcho
	go hub.Run()

	chatHandler := &handlers.ChatHandler{Store: store}

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)

	// History queries
	r.HandleFunc("/api/chat/history", chatHandler.GetHistory).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, w, r)
	})

	log.Println("Starting server on", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, r))
}
