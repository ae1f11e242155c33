package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"           // Postgres driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/hassankh203/IslamicSoccerClub/internal/models"
)

type SQLStore struct {
	db         *sql.DB
	driverName string
}

func New(driverName, dataSourceName string) (*SQLStore, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// An in-memory sqlite database exists per connection; a second pool
		// connection would see an empty schema. One writer also avoids
		// SQLITE_BUSY under concurrent appends.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLStore{db: db, driverName: driverName}
	if err := s.createTables(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) createTables() error {
	// Simplified for brevity, ideally use migrations
	query := `
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender TEXT NOT NULL,
		receiver TEXT NOT NULL,
		body TEXT NOT NULL,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages (receiver, timestamp);
	CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages (sender, receiver, timestamp);
	`

	if s.driverName == "postgres" {
		// Adjust for Postgres syntax
		query = strings.ReplaceAll(query, "INTEGER PRIMARY KEY AUTOINCREMENT", "SERIAL PRIMARY KEY")
		query = strings.ReplaceAll(query, "DATETIME", "TIMESTAMP")
	}

	_, err := s.db.Exec(query)
	return err
}

// Helper to handle placeholders
func (s *SQLStore) rebind(query string) string {
	if s.driverName == "postgres" {
		// Replace ? with $1, $2, etc.
		n := strings.Count(query, "?")
		for i := 1; i <= n; i++ {
			query = strings.Replace(query, "?", fmt.Sprintf("$%d", i), 1)
		}
	}
	return query
}

// AppendMessage inserts a message with the server clock as its timestamp and
// returns the stored record. The row is never updated afterwards.
func (s *SQLStore) AppendMessage(sender, receiver, body string) (*models.Message, error) {
	msg := &models.Message{
		Sender:    sender,
		Receiver:  receiver,
		Body:      body,
		Timestamp: time.Now().UTC(),
	}

	query := s.rebind("INSERT INTO messages (sender, receiver, body, timestamp) VALUES (?, ?, ?, ?) RETURNING id")
	if err := s.db.QueryRow(query, msg.Sender, msg.Receiver, msg.Body, msg.Timestamp).Scan(&msg.ID); err != nil {
		return nil, err
	}
	return msg, nil
}

// RoomHistory returns every message addressed to room in timestamp order.
// The id tiebreak keeps messages written within the same clock tick stable.
func (s *SQLStore) RoomHistory(room string) ([]models.Message, error) {
	query := s.rebind(`
		SELECT id, sender, receiver, body, timestamp
		FROM messages
		WHERE receiver = ?
		ORDER BY timestamp ASC, id ASC
	`)
	rows, err := s.db.Query(query, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// PairHistory returns the two-way conversation between a and b in timestamp
// order. The arguments are interchangeable.
func (s *SQLStore) PairHistory(a, b string) ([]models.Message, error) {
	query := s.rebind(`
		SELECT id, sender, receiver, body, timestamp
		FROM messages
		WHERE (sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)
		ORDER BY timestamp ASC, id ASC
	`)
	rows, err := s.db.Query(query, a, b, b, a)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Receiver, &m.Body, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
