package stream

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"brf-backend/pkg/logger"
)

var log = logger.Component("stream")

type client chan []byte

// Manager fans events out to connected SSE clients. Every board mutation
// broadcasts a full replacement snapshot — there is no delta contract, a
// consumer always replaces its state wholesale.
type Manager struct {
	clients    map[client]struct{}
	register   chan client
	unregister chan client
	broadcast  chan []byte
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[client]struct{}),
		register:   make(chan client),
		unregister: make(chan client),
		broadcast:  make(chan []byte, 8),
	}
}

// Run owns the client set; call it once in a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case c := <-m.register:
			m.clients[c] = struct{}{}
		case c := <-m.unregister:
			if _, ok := m.clients[c]; ok {
				delete(m.clients, c)
				close(c)
			}
		case payload := <-m.broadcast:
			for c := range m.clients {
				select {
				case c <- payload:
				default:
					// Slow consumer: drop the event, the next snapshot
					// supersedes it anyway.
				}
			}
		}
	}
}

// Broadcast sends a named event to every connected client.
func (m *Manager) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.WithError(err).Error("marshal broadcast payload")
		return
	}
	m.broadcast <- []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, payload))
}

// ServeHTTP streams events to one client until it disconnects.
func (m *Manager) ServeHTTP(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch := make(client, 8)
	m.register <- ch
	defer func() { m.unregister <- ch }()

	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(payload); err != nil {
				return
			}
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
