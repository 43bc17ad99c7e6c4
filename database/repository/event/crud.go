package eventRepo

import (
	"context"

	"pizzeria/database"
	"pizzeria/models"
)

func (r *storeEventRepo) Create(ctx context.Context, e *models.Event) error {
	return database.Translate("create event", "event", e.ID, r.coll.Create(ctx, e.ID, e))
}

func (r *storeEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := r.coll.Get(ctx, id, &e); err != nil {
		return nil, database.Translate("fetch event", "event", id, err)
	}
	return &e, nil
}

func (r *storeEventRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return database.Translate("update event", "event", id, r.coll.Update(ctx, id, fields))
}

func (r *storeEventRepo) find(ctx context.Context, q database.Query) ([]models.Event, error) {
	var out []models.Event
	if err := r.coll.Find(ctx, q, &out); err != nil {
		return nil, database.Translate("query events", "event", "", err)
	}
	return out, nil
}

func (r *storeEventRepo) List(ctx context.Context, limit int) ([]models.Event, error) {
	return r.find(ctx, database.Query{}.OrderBy("event_date", true).Take(limit))
}

func (r *storeEventRepo) ByBooking(ctx context.Context, bookingID string) ([]models.Event, error) {
	return r.find(ctx, database.Query{}.Where("booking_id", database.OpEq, bookingID))
}

func (r *storeEventRepo) ByEventDate(ctx context.Context, from, to string) ([]models.Event, error) {
	q := database.Query{}.
		Where("event_date", database.OpGte, from).
		Where("event_date", database.OpLt, to)
	return r.find(ctx, q)
}

func (r *storeEventRepo) Published(ctx context.Context, limit int) ([]models.Event, error) {
	q := database.Query{}.Where("is_published", database.OpEq, true).OrderBy("event_date", true).Take(limit)
	return r.find(ctx, q)
}
