package models

import "time"

type ChatRoom struct {
	ID            string     `json:"id" bson:"id" firestore:"id"`
	ClientName    string     `json:"client_name" bson:"client_name" firestore:"client_name"`
	ClientEmail   string     `json:"client_email" bson:"client_email" firestore:"client_email"`
	IsActive      bool       `json:"is_active" bson:"is_active" firestore:"is_active"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at" firestore:"created_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" bson:"last_message_at" firestore:"last_message_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty" bson:"closed_at,omitempty" firestore:"closed_at,omitempty"`
}

type ChatMessage struct {
	ID         string    `json:"id" bson:"id" firestore:"id"`
	RoomID     string    `json:"room_id" bson:"room_id" firestore:"room_id"`
	SenderID   string    `json:"sender_id" bson:"sender_id" firestore:"sender_id"`
	SenderName string    `json:"sender_name" bson:"sender_name" firestore:"sender_name"`
	Message    string    `json:"message" bson:"message" firestore:"message"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp" firestore:"timestamp"`
	IsAdmin    bool      `json:"is_admin" bson:"is_admin" firestore:"is_admin"`
}

type ChatRoomRequest struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}

type ChatMessageRequest struct {
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Message    string `json:"message"`
}

type ChatRoomStatus struct {
	RoomID       string `json:"room_id"`
	IsActive     bool   `json:"is_active"`
	AdminOnline  bool   `json:"admin_online"`
	ClientOnline bool   `json:"client_online"`
}
