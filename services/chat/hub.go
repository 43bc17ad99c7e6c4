package chat

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	EventNewRoom    = "new_room"
	EventMessage    = "message"
	EventRoomClosed = "room_closed"

	sendBuffer = 256
)

// Envelope is the JSON frame written to websocket clients.
type Envelope struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"room_id,omitempty"`
	Room    interface{} `json:"room,omitempty"`
	Message interface{} `json:"message,omitempty"`
}

// Client is one websocket connection, either bound to a room or an admin console.
type Client struct {
	conn  *websocket.Conn
	send  chan []byte
	room  string
	admin bool
}

func newClient(conn *websocket.Conn, room string, admin bool) *Client {
	return &Client{conn: conn, send: make(chan []byte, sendBuffer), room: room, admin: admin}
}

type broadcastMsg struct {
	room   string
	admins bool
	data   []byte
}

// Hub fans frames out to room and admin connections. All membership changes go through Run.
type Hub struct {
	rooms      map[string]map[*Client]bool
	admins     map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		admins:     make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, sendBuffer),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for c := range h.admins {
				close(c.send)
			}
			for _, conns := range h.rooms {
				for c := range conns {
					close(c.send)
				}
			}
			h.admins = map[*Client]bool{}
			h.rooms = map[string]map[*Client]bool{}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if c.admin {
				h.admins[c] = true
			} else {
				if h.rooms[c.room] == nil {
					h.rooms[c.room] = make(map[*Client]bool)
				}
				h.rooms[c.room][c] = true
			}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			targets := h.rooms[m.room]
			if m.admins {
				targets = h.admins
			}
			for c := range targets {
				select {
				case c.send <- m.data:
				default:
					h.remove(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove drops a client and closes its send channel. Callers hold mu.
func (h *Hub) remove(c *Client) {
	if c.admin {
		if h.admins[c] {
			delete(h.admins, c)
			close(c.send)
		}
		return
	}
	if conns := h.rooms[c.room]; conns[c] {
		delete(conns, c)
		close(c.send)
		if len(conns) == 0 {
			delete(h.rooms, c.room)
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) publish(m broadcastMsg) {
	select {
	case h.broadcast <- m:
	case <-h.done:
	}
}

// ToRoom sends env to every connection of a room.
func (h *Hub) ToRoom(roomID string, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	h.publish(broadcastMsg{room: roomID, data: data})
}

// ToAdmins sends env to every admin connection.
func (h *Hub) ToAdmins(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	h.publish(broadcastMsg{admins: true, data: data})
}

func (h *Hub) AdminOnline() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.admins) > 0
}

func (h *Hub) ClientOnline(roomID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID]) > 0
}
