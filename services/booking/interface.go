package booking

import (
	"context"

	"pizzeria/models"
)

// BookingService owns booking intake, pricing and the status lifecycle.
type BookingService interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, status models.BookingStatus, limit int) ([]models.Booking, error)
	Update(ctx context.Context, id string, upd models.BookingUpdate) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	Calendar(ctx context.Context, year, month int) ([]models.CalendarEntry, error)
}

// EventDeriver records the Event that a completed booking produced.
// explicitProfit, when set, overrides the computed profit.
type EventDeriver interface {
	FromBooking(ctx context.Context, b *models.Booking, explicitProfit *float64) (*models.Event, error)
}
