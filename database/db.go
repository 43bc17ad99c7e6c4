package database

import (
	"context"
	"fmt"

	"pizzeria/config"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
)

// Collection names.
const (
	Bookings      = "bookings"
	Events        = "events"
	Gallery       = "gallery"
	Reviews       = "reviews"
	Inventory     = "inventory"
	Notifications = "notifications"
	ChatRooms     = "chat_rooms"
	ChatMessages  = "chat_messages"
	Contacts      = "contacts"
	Emails        = "emails"
)

// indexPlan lists the non-id fields each collection is queried by.
var indexPlan = map[string][]string{
	Bookings:      {"status", "event_date", "created_at", "client_email"},
	Events:        {"booking_id", "event_date"},
	Gallery:       {"event_id", "is_featured", "uploaded_at"},
	Reviews:       {"is_approved", "event_id", "created_at"},
	Inventory:     {"category", "needs_restock", "name"},
	Notifications: {"sent_at", "status"},
	ChatRooms:     {"is_active", "last_message_at"},
	ChatMessages:  {"room_id", "timestamp"},
	Contacts:      {"created_at"},
	Emails:        {"booking_id", "sent_at"},
}

// Open builds the Store selected by DATABASE_DRIVER. app is only required for the firestore driver.
func Open(ctx context.Context, cfg config.Config, app *firebase.App, logger *zap.Logger) (Store, error) {
	switch cfg.DatabaseDriver {
	case "", "mongo", "mongodb":
		s, err := NewMongoStore(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))
		return s, nil
	case "firestore":
		if app == nil {
			return nil, fmt.Errorf("firestore driver requires a firebase app")
		}
		s, err := NewFirestoreStore(ctx, app)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to Firestore", zap.String("project", cfg.FirebaseProjectID))
		return s, nil
	case "memory":
		logger.Warn("Using in-memory document store, data will not survive restarts")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
}
