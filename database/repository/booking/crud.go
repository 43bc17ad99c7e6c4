package bookingRepo

import (
	"context"
	"time"

	"pizzeria/database"
	"pizzeria/models"
)

func (r *storeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return database.Translate("create booking", "booking", b.ID, r.coll.Create(ctx, b.ID, b))
}

func (r *storeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := r.coll.Get(ctx, id, &b); err != nil {
		return nil, database.Translate("fetch booking", "booking", id, err)
	}
	return &b, nil
}

func (r *storeBookingRepo) UpdateVersioned(ctx context.Context, id string, version int64, fields map[string]any) error {
	return database.Translate("update booking", "booking", id, r.coll.UpdateIfVersion(ctx, id, version, fields))
}

func (r *storeBookingRepo) find(ctx context.Context, q database.Query) ([]models.Booking, error) {
	var out []models.Booking
	if err := r.coll.Find(ctx, q, &out); err != nil {
		return nil, database.Translate("query bookings", "booking", "", err)
	}
	return out, nil
}

func (r *storeBookingRepo) List(ctx context.Context, status models.BookingStatus, limit int) ([]models.Booking, error) {
	q := database.Query{}
	if status != "" {
		q = q.Where("status", database.OpEq, status)
	}
	return r.find(ctx, q.OrderBy("created_at", true).Take(limit))
}

func (r *storeBookingRepo) ByEventDate(ctx context.Context, from, to string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	q := database.Query{}.
		Where("event_date", database.OpGte, from).
		Where("event_date", database.OpLt, to)
	switch len(statuses) {
	case 0:
	case 1:
		q = q.Where("status", database.OpEq, statuses[0])
	default:
		q = q.Where("status", database.OpIn, statuses)
	}
	return r.find(ctx, q.OrderBy("event_date", false))
}

func (r *storeBookingRepo) EventDateBefore(ctx context.Context, before string) ([]models.Booking, error) {
	return r.find(ctx, database.Query{}.Where("event_date", database.OpLt, before))
}

func (r *storeBookingRepo) CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	q := database.Query{}.
		Where("created_at", database.OpGte, from).
		Where("created_at", database.OpLt, to).
		OrderBy("created_at", true)
	return r.find(ctx, q)
}

func (r *storeBookingRepo) All(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, database.Query{})
}
