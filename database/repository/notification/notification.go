package notificationRepo

import (
	"context"
	"time"

	"pizzeria/database"
	"pizzeria/models"
)

// NotificationRepository stores delivery outcomes for the notifications and emails collections.
type NotificationRepository interface {
	Record(ctx context.Context, rec *models.NotificationRecord) error
	RecordEmail(ctx context.Context, rec *models.EmailRecord) error
	// Since returns records sent at or after since, newest first. status filters when non-empty.
	Since(ctx context.Context, since time.Time, status string, limit int) ([]models.NotificationRecord, error)
}

type storeNotificationRepo struct {
	notifications database.Collection
	emails        database.Collection
}

func NewNotificationRepo(store database.Store) NotificationRepository {
	return &storeNotificationRepo{
		notifications: store.Collection(database.Notifications),
		emails:        store.Collection(database.Emails),
	}
}

func (r *storeNotificationRepo) Record(ctx context.Context, rec *models.NotificationRecord) error {
	return database.Translate("record notification", "notification", rec.ID, r.notifications.Create(ctx, rec.ID, rec))
}

func (r *storeNotificationRepo) RecordEmail(ctx context.Context, rec *models.EmailRecord) error {
	return database.Translate("record email", "email", rec.ID, r.emails.Create(ctx, rec.ID, rec))
}

func (r *storeNotificationRepo) Since(ctx context.Context, since time.Time, status string, limit int) ([]models.NotificationRecord, error) {
	q := database.Query{}.Where("sent_at", database.OpGte, since)
	if status != "" {
		q = q.Where("status", database.OpEq, status)
	}
	q = q.OrderBy("sent_at", true).Take(limit)

	var out []models.NotificationRecord
	if err := r.notifications.Find(ctx, q, &out); err != nil {
		return nil, database.Translate("query notifications", "notification", "", err)
	}
	return out, nil
}
