package client

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hassankh203/IslamicSoccerClub/internal/models"
	"github.com/hassankh203/IslamicSoccerClub/internal/ws"
)

// Client maintains one websocket connection to the chat server. Delivered
// messages surface on Messages; the owning goroutine feeds them into its
// ChatView.
type Client struct {
	conn      *websocket.Conn
	send      chan ws.Event
	recv      chan models.Message
	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the chat endpoint and starts the read and write pumps.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn: conn,
		send: make(chan ws.Event, 256),
		recv: make(chan models.Message, 256),
		done: make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

// Messages delivers inbound chat messages in arrival order. The channel is
// closed when the connection drops.
func (c *Client) Messages() <-chan models.Message {
	return c.recv
}

// JoinGroup subscribes to the broadcast room.
func (c *Client) JoinGroup() {
	c.enqueue(ws.Event{Type: ws.EventJoinGroup})
}

// JoinPrivate subscribes to the caller's own private inbox.
func (c *Client) JoinPrivate(participant string) {
	c.enqueue(ws.Event{Type: ws.EventJoinPrivate, Participant: participant})
}

// Send submits a message. Confirmation arrives as the echoed delivery; there
// is no other acknowledgment.
func (c *Client) Send(sender, receiver, body string) {
	c.enqueue(ws.Event{Type: ws.EventSend, Sender: sender, Receiver: receiver, Body: body})
}

// enqueue hands an event to the write pump. Events sent after Close are
// dropped rather than blocking the caller.
func (c *Client) enqueue(event ws.Event) {
	select {
	case c.send <- event:
	case <-c.done:
	}
}

// Close tears the connection down and stops both pumps.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return c.conn.Close()
}

func (c *Client) readPump() {
	defer func() {
		c.conn.Close()
		close(c.recv)
	}()
	for {
		var msg models.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Connection closed: %v", err)
			}
			return
		}
		select {
		case c.recv <- msg:
		case <-c.done:
			return
		}
	}
}

// writePump serializes all writes to the connection. It exits on Close or on
// the first failed write.
func (c *Client) writePump() {
	for {
		select {
		case event := <-c.send:
			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("Write error: %v", err)
				return
			}
		case <-c.done:
			return
		}
	}
}
