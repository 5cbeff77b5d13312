package server

import (
	"log"

	"github.com/gorilla/websocket"
)

// ClientID identifies a connected render client.
type ClientID string

type Client struct {
	id   ClientID
	conn *websocket.Conn
	send chan []byte
}

// Hub fans broadcasts out to every connected client. Slow clients whose send
// buffer fills are dropped rather than stalling the loop.
type Hub struct {
	log        *log.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func newHub(logger *log.Logger) *Hub {
	return &Hub{
		log:        logger,
		clients:    map[*Client]bool{},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.log.Printf("client connected: %s (%d online)", c.id, len(h.clients))
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
				h.log.Printf("client disconnected: %s (%d online)", c.id, len(h.clients))
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
					h.log.Printf("client too slow, dropping: %s", c.id)
				}
			}
		}
	}
}

func (c *Client) writer() {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}
