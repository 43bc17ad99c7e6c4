package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pizzeria/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// inbound is a frame sent by a websocket client. Admin frames name the room.
type inbound struct {
	RoomID     string `json:"room_id"`
	Message    string `json:"message"`
	SenderName string `json:"sender_name"`
}

// ServeRoom upgrades a client connection for an existing room.
func (s *Service) ServeRoom(w http.ResponseWriter, r *http.Request, roomID string) error {
	if _, err := s.repo.GetRoom(r.Context(), roomID); err != nil {
		return err
	}
	return s.serve(w, r, roomID, false)
}

// ServeAdmin upgrades an admin console connection.
func (s *Service) ServeAdmin(w http.ResponseWriter, r *http.Request) error {
	return s.serve(w, r, "", true)
}

func (s *Service) serve(w http.ResponseWriter, r *http.Request, roomID string, admin bool) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newClient(conn, roomID, admin)
	s.hub.Register(c)
	s.logger.Info("Chat socket connected", zap.String("room_id", roomID), zap.Bool("admin", admin))

	go s.writePump(c)
	go s.readPump(c)
	return nil
}

func (s *Service) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Service) readPump(c *Client) {
	defer func() {
		s.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var in inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			s.logger.Debug("Ignoring malformed chat frame", zap.Error(err))
			continue
		}
		room := c.room
		if c.admin {
			room = in.RoomID
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		_, err = s.Post(ctx, room, models.ChatMessageRequest{Message: in.Message, SenderName: in.SenderName}, c.admin)
		cancel()
		if err != nil {
			s.logger.Warn("Chat frame rejected", zap.String("room_id", room), zap.Bool("admin", c.admin), zap.Error(err))
		}
	}
}
