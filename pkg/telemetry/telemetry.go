// Package telemetry streams bus access events to a connected debug
// client over a websocket, adapted from the teacher's frame-streaming
// hub: a register/unregister/broadcast goroutine fed by a channel, with
// per-client read/write pumps. Unlike the binary frame protocol that hub
// speaks, trace events are low-frequency and human-inspected, so they're
// encoded as JSON rather than a packed byte format.
package telemetry

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/goadvance/internal/types"
)

// Event is a single (address, page, access type, width, cost) bus
// observation, mirroring what Bus.GetCycles computed.
type Event struct {
	Addr   uint32 `json:"addr"`
	Page   uint8  `json:"page"`
	Access string `json:"access"`
	Width  uint8  `json:"width"`
	Cost   uint   `json:"cost"`
}

// Sink implements bus.Telemetry, fanning every recorded access out to
// whichever debug clients are currently connected.
type Sink struct {
	clients    map[*client]bool
	broadcast  chan Event
	register   chan *client
	unregister chan *client
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewSink returns a Sink with its broadcast loop not yet started; call
// Run to serve connections.
func NewSink() *Sink {
	return &Sink{
		clients:    make(map[*client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Record implements bus.Telemetry. It never blocks the caller: a full
// broadcast buffer drops the event rather than stalling bus traffic.
func (s *Sink) Record(addr uint32, access types.AccessType, width types.AccessWidth, cost uint) {
	ev := Event{
		Addr:   addr,
		Page:   uint8(types.PageOf(addr)),
		Access: access.String(),
		Width:  uint8(width),
		Cost:   cost,
	}
	select {
	case s.broadcast <- ev:
	default:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler returns an http.HandlerFunc that upgrades incoming requests to
// websocket connections and registers them as trace subscribers.
func (s *Sink) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := &client{conn: conn, send: make(chan []byte, 256)}
		s.register <- c
		go s.writePump(c)
		go s.readPump(c)
	}
}

// Run drives the register/unregister/broadcast loop until done is closed.
func (s *Sink) Run(done <-chan struct{}) {
	for {
		select {
		case c := <-s.register:
			s.clients[c] = true
		case c := <-s.unregister:
			if _, ok := s.clients[c]; ok {
				delete(s.clients, c)
				close(c.send)
			}
		case ev := <-s.broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			for c := range s.clients {
				select {
				case c.send <- data:
				default:
					delete(s.clients, c)
					close(c.send)
				}
			}
		case <-done:
			return
		}
	}
}

func (s *Sink) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump drains and discards client messages, unregistering on close
// so the hub notices a disconnected client.
func (s *Sink) readPump(c *client) {
	defer func() {
		s.unregister <- c
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
