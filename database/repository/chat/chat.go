package chatRepo

import (
	"context"

	"pizzeria/database"
	"pizzeria/models"
)

type ChatRepository interface {
	CreateRoom(ctx context.Context, room *models.ChatRoom) error
	GetRoom(ctx context.Context, id string) (*models.ChatRoom, error)
	UpdateRoom(ctx context.Context, id string, fields map[string]any) error
	ListRooms(ctx context.Context, activeOnly bool) ([]models.ChatRoom, error)
	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	// Messages returns up to limit messages of a room in chronological order.
	Messages(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error)
}

type storeChatRepo struct {
	rooms    database.Collection
	messages database.Collection
}

func NewChatRepo(store database.Store) ChatRepository {
	return &storeChatRepo{
		rooms:    store.Collection(database.ChatRooms),
		messages: store.Collection(database.ChatMessages),
	}
}

func (r *storeChatRepo) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	return database.Translate("create chat room", "chat room", room.ID, r.rooms.Create(ctx, room.ID, room))
}

func (r *storeChatRepo) GetRoom(ctx context.Context, id string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := r.rooms.Get(ctx, id, &room); err != nil {
		return nil, database.Translate("fetch chat room", "chat room", id, err)
	}
	return &room, nil
}

func (r *storeChatRepo) UpdateRoom(ctx context.Context, id string, fields map[string]any) error {
	return database.Translate("update chat room", "chat room", id, r.rooms.Update(ctx, id, fields))
}

func (r *storeChatRepo) ListRooms(ctx context.Context, activeOnly bool) ([]models.ChatRoom, error) {
	q := database.Query{}
	if activeOnly {
		q = q.Where("is_active", database.OpEq, true)
	}

	var out []models.ChatRoom
	if err := r.rooms.Find(ctx, q.OrderBy("last_message_at", true), &out); err != nil {
		return nil, database.Translate("query chat rooms", "chat room", "", err)
	}
	return out, nil
}

func (r *storeChatRepo) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return database.Translate("create chat message", "chat message", msg.ID, r.messages.Create(ctx, msg.ID, msg))
}

func (r *storeChatRepo) Messages(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error) {
	q := database.Query{}.
		Where("room_id", database.OpEq, roomID).
		OrderBy("timestamp", false).
		Take(limit)

	var out []models.ChatMessage
	if err := r.messages.Find(ctx, q, &out); err != nil {
		return nil, database.Translate("query chat messages", "chat message", "", err)
	}
	return out, nil
}
