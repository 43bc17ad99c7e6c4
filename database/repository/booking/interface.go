package bookingRepo

import (
	"context"
	"time"

	"pizzeria/database"
	"pizzeria/models"
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateVersioned applies fields only if the stored version still equals version.
	UpdateVersioned(ctx context.Context, id string, version int64, fields map[string]any) error
	List(ctx context.Context, status models.BookingStatus, limit int) ([]models.Booking, error)
	// ByEventDate returns bookings with from <= event_date < to, optionally restricted to statuses.
	ByEventDate(ctx context.Context, from, to string, statuses ...models.BookingStatus) ([]models.Booking, error)
	EventDateBefore(ctx context.Context, before string) ([]models.Booking, error)
	CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	All(ctx context.Context) ([]models.Booking, error)
}

type storeBookingRepo struct {
	coll database.Collection
}

// NewBookingRepo returns a BookingRepository over the injected store.
func NewBookingRepo(store database.Store) BookingRepository {
	return &storeBookingRepo{coll: store.Collection(database.Bookings)}
}
