package chat

import (
	"context"
	"strings"
	"time"

	chatRepo "pizzeria/database/repository/chat"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultMessageLimit = 50
	closedNotice        = "El chat ha sido cerrado por un administrador"
	senderAdmin         = "admin"
	senderClient        = "client"
)

type Service struct {
	repo       chatRepo.ChatRepository
	hub        *Hub
	tokens     *utils.TokenIssuer
	dispatcher notification.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(repo chatRepo.ChatRepository, hub *Hub, tokens *utils.TokenIssuer, dispatcher notification.Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, hub: hub, tokens: tokens, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// CreateRoom opens a room and returns it with a token that grants access to it.
func (s *Service) CreateRoom(ctx context.Context, req models.ChatRoomRequest) (*models.ChatRoom, string, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, "", utils.NewValidationError("client_name", "is required")
	}
	now := s.now()
	room := &models.ChatRoom{
		ID:            uuid.New().String(),
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		IsActive:      true,
		CreatedAt:     now,
		LastMessageAt: &now,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(room.ID)
	if err != nil {
		return nil, "", err
	}

	s.hub.ToAdmins(Envelope{Type: EventNewRoom, RoomID: room.ID, Room: room})
	s.dispatcher.Dispatch(ctx, notification.Job{Kind: notification.KindChatRoomCreated, Room: room})
	return room, token, nil
}

func (s *Service) Rooms(ctx context.Context, activeOnly bool) ([]models.ChatRoom, error) {
	return s.repo.ListRooms(ctx, activeOnly)
}

func (s *Service) Messages(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error) {
	if _, err := s.repo.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	return s.repo.Messages(ctx, roomID, limit)
}

// Post stores a message and pushes it to the room and to admins. Closed rooms reject messages.
func (s *Service) Post(ctx context.Context, roomID string, req models.ChatMessageRequest, isAdmin bool) (*models.ChatMessage, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, utils.NewValidationError("message", "is required")
	}
	if roomID == "" {
		return nil, utils.NewValidationError("room_id", "is required")
	}
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, utils.NewValidationError("room_id", "chat room is closed")
	}

	sender := req.SenderID
	if sender == "" {
		sender = senderClient
		if isAdmin {
			sender = senderAdmin
		}
	}
	name := req.SenderName
	if name == "" {
		name = room.ClientName
		if isAdmin {
			name = "Pablo's Pizza"
		}
	}

	now := s.now()
	msg := &models.ChatMessage{
		ID:         uuid.New().String(),
		RoomID:     roomID,
		SenderID:   sender,
		SenderName: name,
		Message:    req.Message,
		Timestamp:  now,
		IsAdmin:    isAdmin,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRoom(ctx, roomID, map[string]any{"last_message_at": now}); err != nil {
		s.logger.Warn("Failed to touch chat room", zap.String("room_id", roomID), zap.Error(err))
	}

	env := Envelope{Type: EventMessage, RoomID: roomID, Message: msg}
	s.hub.ToRoom(roomID, env)
	s.hub.ToAdmins(env)
	return msg, nil
}

func (s *Service) Close(ctx context.Context, roomID string) (*models.ChatRoom, error) {
	if _, err := s.repo.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.repo.UpdateRoom(ctx, roomID, map[string]any{"is_active": false, "closed_at": now}); err != nil {
		return nil, err
	}
	s.hub.ToRoom(roomID, Envelope{Type: EventRoomClosed, RoomID: roomID, Message: closedNotice})
	return s.repo.GetRoom(ctx, roomID)
}

func (s *Service) Status(ctx context.Context, roomID string) (*models.ChatRoomStatus, error) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return &models.ChatRoomStatus{
		RoomID:       roomID,
		IsActive:     room.IsActive,
		AdminOnline:  s.hub.AdminOnline(),
		ClientOnline: s.hub.ClientOnline(roomID),
	}, nil
}

// Authorize reports whether token grants access to roomID.
func (s *Service) Authorize(token, roomID string) bool {
	id, err := s.tokens.RoomID(token)
	return err == nil && id == roomID
}
