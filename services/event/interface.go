package event

import (
	"context"

	"pizzeria/models"
)

// EventService manages the log of events that actually took place.
type EventService interface {
	Create(ctx context.Context, req models.EventRequest) (*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, limit int) ([]models.Event, error)
	Update(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error)
	UpdateFinancials(ctx context.Context, id string, fin models.EventFinancials) (*models.Event, error)
	RequestReview(ctx context.Context, id string) (bool, error)
	ByBooking(ctx context.Context, bookingID string) ([]models.Event, error)
	Published(ctx context.Context, limit int) ([]models.Event, error)
	FromBooking(ctx context.Context, b *models.Booking, explicitProfit *float64) (*models.Event, error)
}

// DatePolicy decides what a derived event does with a booking date it cannot parse.
type DatePolicy string

const (
	DateFallbackNow    DatePolicy = "now"
	DateFallbackReject DatePolicy = "reject"
)

func ParseDatePolicy(s string) DatePolicy {
	if DatePolicy(s) == DateFallbackReject {
		return DateFallbackReject
	}
	return DateFallbackNow
}
