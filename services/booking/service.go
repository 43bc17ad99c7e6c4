package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "pizzeria/database/repository/booking"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultListLimit = 100

// DefaultBookingService implements BookingService over a booking repository.
// Notification and event side effects never fail the booking write they follow.
type DefaultBookingService struct {
	repo       bookingRepo.BookingRepository
	prices     PriceList
	dispatcher notification.Dispatcher
	events     EventDeriver
	logger     *zap.Logger
	now        func() time.Time
}

func NewBookingService(
	repo bookingRepo.BookingRepository,
	prices PriceList,
	dispatcher notification.Dispatcher,
	events EventDeriver,
	logger *zap.Logger,
) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		repo:       repo,
		prices:     prices,
		dispatcher: dispatcher,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}
}

var acceptedDateLayouts = []string{utils.DateLayout, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// normalizeDate reduces any accepted timestamp form to YYYY-MM-DD and returns other input unchanged.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(utils.DateLayout)
		}
	}
	return raw
}

func (s *DefaultBookingService) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if strings.TrimSpace(string(req.ServiceType)) == "" {
		return nil, utils.NewValidationError("service_type", "is required")
	}
	if req.Participants == nil {
		return nil, utils.NewValidationError("participants", "is required")
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		ServiceType:     req.ServiceType,
		EventType:       req.EventType,
		EventDate:       normalizeDate(req.EventDate),
		EventTime:       req.EventTime,
		DurationHours:   req.DurationHours,
		Participants:    *req.Participants,
		Location:        req.Location,
		SpecialRequests: req.SpecialRequests,
		Status:          models.StatusPending,
		EstimatedPrice:  CalculatePrice(req.ServiceType, *req.Participants, s.prices),
		CreatedAt:       s.now(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", b.ID),
		zap.String("service_type", string(b.ServiceType)),
		zap.Int("participants", b.Participants),
		zap.Float64("estimated_price", b.EstimatedPrice))

	s.dispatcher.Dispatch(ctx, notification.Job{Kind: notification.KindBookingCreated, Booking: b})
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DefaultBookingService) List(ctx context.Context, status models.BookingStatus, limit int) ([]models.Booking, error) {
	if status != "" && !ValidStatus(status) {
		return nil, utils.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, status, limit)
}

func (s *DefaultBookingService) Update(ctx context.Context, id string, upd models.BookingUpdate) (*models.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Version != nil && *upd.Version != b.Version {
		return nil, &utils.ConflictError{Resource: "booking", ID: id}
	}

	prev := b.Status
	next := prev
	if upd.Status != nil {
		next = *upd.Status
		if !ValidStatus(next) {
			return nil, utils.NewValidationError("status", fmt.Sprintf("unknown status %q", next))
		}
		if !CanTransition(prev, next) {
			return nil, utils.NewValidationError("status", fmt.Sprintf("cannot move booking from %s to %s", prev, next))
		}
	}
	if IsTerminal(prev) && (upd.ConfirmedPrice != nil || upd.ConfirmedDate != nil || upd.ConfirmedTime != nil) {
		return nil, utils.NewValidationError("status", fmt.Sprintf("booking is %s, only notes and costs can change", prev))
	}

	now := s.now()
	fields := map[string]any{"updated_at": now}
	if next != prev {
		fields["status"] = next
		b.Status = next
	}
	if upd.Notes != nil {
		fields["notes"] = *upd.Notes
		b.Notes = *upd.Notes
	}
	if upd.ConfirmedPrice != nil {
		fields["confirmed_price"] = *upd.ConfirmedPrice
		b.ConfirmedPrice = upd.ConfirmedPrice
	}
	if upd.ConfirmedDate != nil {
		fields["confirmed_date"] = *upd.ConfirmedDate
		b.ConfirmedDate = *upd.ConfirmedDate
	}
	if upd.ConfirmedTime != nil {
		fields["confirmed_time"] = *upd.ConfirmedTime
		b.ConfirmedTime = *upd.ConfirmedTime
	}
	if upd.EventCost != nil {
		fields["event_cost"] = *upd.EventCost
		b.EventCost = upd.EventCost
	}
	if upd.EventProfit != nil {
		fields["event_profit"] = *upd.EventProfit
		b.EventProfit = upd.EventProfit
	}

	if err := s.repo.UpdateVersioned(ctx, id, b.Version, fields); err != nil {
		return nil, err
	}
	b.Version++
	b.UpdatedAt = &now

	if next != prev {
		s.logger.Info("Booking status changed",
			zap.String("booking_id", id),
			zap.String("from", string(prev)),
			zap.String("to", string(next)))
		s.afterTransition(ctx, b, next, upd)
	}
	return b, nil
}

func (s *DefaultBookingService) afterTransition(ctx context.Context, b *models.Booking, to models.BookingStatus, upd models.BookingUpdate) {
	switch to {
	case models.StatusConfirmed:
		s.dispatcher.Dispatch(ctx, notification.Job{Kind: notification.KindBookingConfirmed, Booking: b})
	case models.StatusCompleted:
		if upd.EventCost != nil || upd.EventProfit != nil {
			if s.events == nil {
				break
			}
			ev, err := s.events.FromBooking(ctx, b, upd.EventProfit)
			if err != nil {
				s.logger.Error("Failed to derive event from completed booking", zap.String("booking_id", b.ID), zap.Error(err))
			} else if ev != nil {
				s.logger.Info("Event derived from booking", zap.String("booking_id", b.ID), zap.String("event_id", ev.ID))
			}
		}
		s.dispatcher.Dispatch(ctx, notification.Job{Kind: notification.KindBookingCompleted, Booking: b})
	}
}

// Cancel moves a booking to cancelled. Cancelling twice is not an error.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.StatusCancelled {
		return b, nil
	}
	status := models.StatusCancelled
	return s.Update(ctx, id, models.BookingUpdate{Status: &status, Version: &b.Version})
}

// Calendar lists confirmed and completed bookings whose event date falls in the month.
func (s *DefaultBookingService) Calendar(ctx context.Context, year, month int) ([]models.CalendarEntry, error) {
	if month < 1 || month > 12 {
		return nil, utils.NewValidationError("month", "must be between 1 and 12")
	}
	from, to := utils.MonthRange(year, month)
	bookings, err := s.repo.ByEventDate(ctx, from, to, models.StatusConfirmed, models.StatusCompleted)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CalendarEntry, 0, len(bookings))
	for _, b := range bookings {
		date := b.EventDate
		if b.ConfirmedDate != "" {
			date = b.ConfirmedDate
		}
		t := b.EventTime
		if b.ConfirmedTime != "" {
			t = b.ConfirmedTime
		}
		entries = append(entries, models.CalendarEntry{
			ID:           b.ID,
			Title:        fmt.Sprintf("%s - %s", notification.ServiceName(b.ServiceType), b.ClientName),
			Date:         date,
			Time:         t,
			Participants: b.Participants,
			Location:     b.Location,
			Status:       b.Status,
		})
	}
	return entries, nil
}
