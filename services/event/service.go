package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "pizzeria/database/repository/booking"
	eventRepo "pizzeria/database/repository/event"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusCompleted  = "completed"
	defaultListLimit = 100
)

type DefaultEventService struct {
	events   eventRepo.EventRepository
	bookings bookingRepo.BookingRepository
	notifier notification.Runner
	policy   DatePolicy
	logger   *zap.Logger
	now      func() time.Time
}

func NewEventService(
	events eventRepo.EventRepository,
	bookings bookingRepo.BookingRepository,
	notifier notification.Runner,
	policy DatePolicy,
	logger *zap.Logger,
) *DefaultEventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEventService{
		events:   events,
		bookings: bookings,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// parseEventDate accepts YYYY-MM-DD or RFC3339 and returns the YYYY-MM-DD form.
func parseEventDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(utils.DateLayout, s); err == nil {
		return t.Format(utils.DateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(utils.DateLayout), true
	}
	return "", false
}

func (s *DefaultEventService) Create(ctx context.Context, req models.EventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, utils.NewValidationError("title", "is required")
	}
	date, ok := parseEventDate(req.EventDate)
	if !ok {
		return nil, utils.NewValidationError("event_date", "must be YYYY-MM-DD or RFC3339")
	}

	profit := req.FinalPrice - req.EventCost
	if req.Profit != nil {
		profit = *req.Profit
	}
	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}

	e := &models.Event{
		ID:           uuid.New().String(),
		BookingID:    req.BookingID,
		Title:        req.Title,
		Description:  req.Description,
		ServiceType:  req.ServiceType,
		ClientName:   req.ClientName,
		EventDate:    date,
		Participants: req.Participants,
		FinalPrice:   req.FinalPrice,
		EventCost:    req.EventCost,
		Profit:       profit,
		Expenses:     req.Expenses,
		Notes:        req.Notes,
		Status:       StatusCompleted,
		Source:       models.EventSourceManual,
		Photos:       photos,
		IsPublished:  req.IsPublished,
		IsFeatured:   req.IsFeatured,
		CreatedAt:    s.now(),
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *DefaultEventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *DefaultEventService) List(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.events.List(ctx, limit)
}

func (s *DefaultEventService) ByBooking(ctx context.Context, bookingID string) ([]models.Event, error) {
	return s.events.ByBooking(ctx, bookingID)
}

func (s *DefaultEventService) Published(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 12
	}
	return s.events.Published(ctx, limit)
}

func (s *DefaultEventService) Update(ctx context.Context, id string, upd models.EventUpdate) (*models.Event, error) {
	fields := map[string]any{}
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, utils.NewValidationError("title", "cannot be empty")
		}
		fields["title"] = *upd.Title
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Notes != nil {
		fields["notes"] = *upd.Notes
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.EventDate != nil {
		date, ok := parseEventDate(*upd.EventDate)
		if !ok {
			return nil, utils.NewValidationError("event_date", "must be YYYY-MM-DD or RFC3339")
		}
		fields["event_date"] = date
	}
	if upd.Participants != nil {
		fields["participants"] = *upd.Participants
	}
	if upd.Photos != nil {
		photos := *upd.Photos
		if photos == nil {
			photos = []string{}
		}
		fields["photos"] = photos
	}
	if upd.IsPublished != nil {
		fields["is_published"] = *upd.IsPublished
	}
	if upd.IsFeatured != nil {
		fields["is_featured"] = *upd.IsFeatured
	}
	fields["updated_at"] = s.now()

	if err := s.events.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

// UpdateFinancials records income and costs. Missing totals are derived from the expense
// lines and the income.
func (s *DefaultEventService) UpdateFinancials(ctx context.Context, id string, fin models.EventFinancials) (*models.Event, error) {
	total := fin.TotalExpenses
	if total == 0 {
		for _, e := range fin.Expenses {
			total += e.Amount
		}
	}
	profit := fin.Profit
	if profit == 0 {
		profit = fin.Income - total
	}
	expenses := fin.Expenses
	if expenses == nil {
		expenses = []models.Expense{}
	}

	fields := map[string]any{
		"final_price": fin.Income,
		"event_cost":  total,
		"profit":      profit,
		"expenses":    expenses,
		"updated_at":  s.now(),
	}
	if err := s.events.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

// RequestReview asks the client of the event's booking for a review over WhatsApp.
// It reports whether the message went out.
func (s *DefaultEventService) RequestReview(ctx context.Context, id string) (bool, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if e.BookingID == "" {
		return false, utils.NewValidationError("booking_id", "event is not linked to a booking")
	}
	b, err := s.bookings.GetByID(ctx, e.BookingID)
	if err != nil {
		return false, err
	}
	if b.ClientPhone == "" {
		return false, utils.NewValidationError("client_phone", "booking has no phone number")
	}

	if err := s.notifier.Run(ctx, notification.Job{Kind: notification.KindReviewRequest, Booking: b, Event: e}); err != nil {
		s.logger.Warn("Review request not delivered", zap.String("event_id", id), zap.Error(err))
		return false, nil
	}
	return true, nil
}

// FromBooking records the Event a completed booking produced. Profit is the estimate minus the
// cost when both are known, unless explicitProfit is given.
func (s *DefaultEventService) FromBooking(ctx context.Context, b *models.Booking, explicitProfit *float64) (*models.Event, error) {
	date, ok := parseEventDate(b.EventDate)
	if !ok {
		if s.policy == DateFallbackReject {
			return nil, utils.NewValidationError("event_date", fmt.Sprintf("booking %s has unusable event date %q", b.ID, b.EventDate))
		}
		date = s.now().Format(utils.DateLayout)
		s.logger.Warn("Booking event date unusable, dating derived event today",
			zap.String("booking_id", b.ID),
			zap.String("event_date", b.EventDate),
			zap.String("substituted", date))
	}

	var cost float64
	if b.EventCost != nil {
		cost = *b.EventCost
	}
	// confirmed_price stays on the booking; reports sum final_price - event_cost.
	finalPrice := b.EstimatedPrice
	var profit float64
	if finalPrice != 0 && cost != 0 {
		profit = finalPrice - cost
	}
	if explicitProfit != nil {
		profit = *explicitProfit
	}

	e := &models.Event{
		ID:           uuid.New().String(),
		BookingID:    b.ID,
		Title:        fmt.Sprintf("%s - %s", notification.ServiceName(b.ServiceType), b.ClientName),
		ServiceType:  string(b.ServiceType),
		ClientName:   b.ClientName,
		EventDate:    date,
		Participants: b.Participants,
		FinalPrice:   finalPrice,
		EventCost:    cost,
		Profit:       profit,
		Notes:        b.Notes,
		Status:       StatusCompleted,
		Source:       models.EventSourceAutoBooking,
		Photos:       []string{},
		CreatedAt:    s.now(),
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
