package eventRepo

import (
	"context"

	"pizzeria/database"
	"pizzeria/models"
)

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	List(ctx context.Context, limit int) ([]models.Event, error)
	ByBooking(ctx context.Context, bookingID string) ([]models.Event, error)
	// ByEventDate returns events with from <= event_date < to.
	ByEventDate(ctx context.Context, from, to string) ([]models.Event, error)
	Published(ctx context.Context, limit int) ([]models.Event, error)
}

type storeEventRepo struct {
	coll database.Collection
}

func NewEventRepo(store database.Store) EventRepository {
	return &storeEventRepo{coll: store.Collection(database.Events)}
}
