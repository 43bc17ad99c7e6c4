package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"pizzeria/database"
	bookingRepo "pizzeria/database/repository/booking"
	eventRepo "pizzeria/database/repository/event"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	jobs []notification.Job
	err  error
}

func (r *stubRunner) Run(ctx context.Context, job notification.Job) error {
	r.jobs = append(r.jobs, job)
	return r.err
}

func newTestService(policy DatePolicy) (*DefaultEventService, eventRepo.EventRepository, bookingRepo.BookingRepository, *stubRunner) {
	store := database.NewMemoryStore()
	events := eventRepo.NewEventRepo(store)
	bookings := bookingRepo.NewBookingRepo(store)
	runner := &stubRunner{}
	svc := NewEventService(events, bookings, runner, policy, nil)
	svc.now = func() time.Time { return time.Date(2025, 5, 2, 15, 0, 0, 0, time.UTC) }
	return svc, events, bookings, runner
}

func f64(v float64) *float64 { return &v }

func completedBooking() *models.Booking {
	return &models.Booking{
		ID:             "bk-1",
		ClientName:     "Camila",
		ClientPhone:    "912345678",
		ServiceType:    models.ServiceWorkshop,
		EventDate:      "2025-04-20",
		Participants:   12,
		Status:         models.StatusCompleted,
		EstimatedPrice: 162000,
		EventCost:      f64(60000),
	}
}

func TestFromBookingComputesProfit(t *testing.T) {
	svc, events, _, _ := newTestService(DateFallbackNow)
	ctx := context.Background()

	e, err := svc.FromBooking(ctx, completedBooking(), nil)
	require.NoError(t, err)
	assert.Equal(t, 102000.0, e.Profit)
	assert.Equal(t, "bk-1", e.BookingID)
	assert.Equal(t, "completed", e.Status)
	assert.Equal(t, models.EventSourceAutoBooking, e.Source)
	assert.Equal(t, "2025-04-20", e.EventDate)
	assert.Equal(t, "Pizzeros en Acción - Camila", e.Title)
	assert.NotNil(t, e.Photos)
	assert.Empty(t, e.Photos)

	stored, err := events.ByBooking(ctx, "bk-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 102000.0, stored[0].Profit)
}

func TestFromBookingExplicitProfitWins(t *testing.T) {
	svc, _, _, _ := newTestService(DateFallbackNow)

	e, err := svc.FromBooking(context.Background(), completedBooking(), f64(90000))
	require.NoError(t, err)
	assert.Equal(t, 90000.0, e.Profit)
}

func TestFromBookingProfitMatchesFinalPriceWithConfirmedPrice(t *testing.T) {
	svc, _, _, _ := newTestService(DateFallbackNow)
	b := completedBooking()
	b.ConfirmedPrice = f64(200000)

	e, err := svc.FromBooking(context.Background(), b, nil)
	require.NoError(t, err)
	assert.Equal(t, 162000.0, e.FinalPrice)
	assert.Equal(t, 60000.0, e.EventCost)
	assert.Equal(t, e.FinalPrice-e.EventCost, e.Profit)
}

func TestFromBookingZeroCostGivesZeroProfit(t *testing.T) {
	svc, _, _, _ := newTestService(DateFallbackNow)
	b := completedBooking()
	b.EventCost = nil

	e, err := svc.FromBooking(context.Background(), b, nil)
	require.NoError(t, err)
	assert.Zero(t, e.Profit)
}

func TestFromBookingDatePolicy(t *testing.T) {
	b := completedBooking()
	b.EventDate = "sometime in april"

	svc, _, _, _ := newTestService(DateFallbackNow)
	e, err := svc.FromBooking(context.Background(), b, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-02", e.EventDate)

	svc, events, _, _ := newTestService(DateFallbackReject)
	_, err = svc.FromBooking(context.Background(), b, nil)
	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
	stored, err := events.ByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	b.EventDate = "2025-04-20T18:00:00-04:00"
	e, err = svc.FromBooking(context.Background(), b, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-20", e.EventDate)
}

func TestCreateUpdateAndFinancials(t *testing.T) {
	svc, _, _, _ := newTestService(DateFallbackNow)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.EventRequest{EventDate: "2025-01-01"})
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)

	e, err := svc.Create(ctx, models.EventRequest{Title: "Cumpleaños Sofía", EventDate: "2025-02-10", FinalPrice: 120000, EventCost: 45000})
	require.NoError(t, err)
	assert.Equal(t, 75000.0, e.Profit)
	assert.Equal(t, models.EventSourceManual, e.Source)

	published := true
	title := "Cumpleaños de Sofía"
	updated, err := svc.Update(ctx, e.ID, models.EventUpdate{Title: &title, IsPublished: &published})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.True(t, updated.IsPublished)

	fin, err := svc.UpdateFinancials(ctx, e.ID, models.EventFinancials{
		Income:   130000,
		Expenses: []models.Expense{{Description: "harina", Amount: 20000}, {Description: "queso", Amount: 30000}},
	})
	require.NoError(t, err)
	assert.Equal(t, 130000.0, fin.FinalPrice)
	assert.Equal(t, 50000.0, fin.EventCost)
	assert.Equal(t, 80000.0, fin.Profit)
	assert.Len(t, fin.Expenses, 2)

	pub, err := svc.Published(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pub, 1)

	_, err = svc.Update(ctx, "missing", models.EventUpdate{Title: &title})
	var nErr *utils.NotFoundError
	assert.ErrorAs(t, err, &nErr)
}

func TestRequestReview(t *testing.T) {
	svc, events, bookings, runner := newTestService(DateFallbackNow)
	ctx := context.Background()

	b := completedBooking()
	require.NoError(t, bookings.Create(ctx, b))
	e, err := svc.FromBooking(ctx, b, nil)
	require.NoError(t, err)

	ok, err := svc.RequestReview(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, runner.jobs, 1)
	assert.Equal(t, notification.KindReviewRequest, runner.jobs[0].Kind)
	assert.Equal(t, e.ID, runner.jobs[0].Event.ID)

	runner.err = errors.New("twilio down")
	ok, err = svc.RequestReview(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	orphan := &models.Event{ID: "orphan", Title: "x", EventDate: "2025-01-01"}
	require.NoError(t, events.Create(ctx, orphan))
	_, err = svc.RequestReview(ctx, "orphan")
	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
