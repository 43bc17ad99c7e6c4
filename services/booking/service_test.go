package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pizzeria/database"
	bookingRepo "pizzeria/database/repository/booking"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu   sync.Mutex
	jobs []notification.Job
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, job notification.Job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, job)
}

func (d *recordingDispatcher) kinds() []notification.Kind {
	var out []notification.Kind
	for _, j := range d.jobs {
		out = append(out, j.Kind)
	}
	return out
}

type fakeDeriver struct {
	calls   int
	booking models.Booking
	profit  *float64
	err     error
}

func (f *fakeDeriver) FromBooking(ctx context.Context, b *models.Booking, explicitProfit *float64) (*models.Event, error) {
	f.calls++
	f.booking = *b
	f.profit = explicitProfit
	if f.err != nil {
		return nil, f.err
	}
	return &models.Event{ID: "ev-1", BookingID: b.ID}, nil
}

type fixture struct {
	svc        *DefaultBookingService
	repo       bookingRepo.BookingRepository
	dispatcher *recordingDispatcher
	deriver    *fakeDeriver
}

func newFixture() *fixture {
	repo := bookingRepo.NewBookingRepo(database.NewMemoryStore())
	f := &fixture{repo: repo, dispatcher: &recordingDispatcher{}, deriver: &fakeDeriver{}}
	f.svc = NewBookingService(repo, DefaultPriceList(), f.dispatcher, f.deriver, nil)
	return f
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }
func statusPtr(s models.BookingStatus) *models.BookingStatus { return &s }

func (f *fixture) create(t *testing.T, st models.ServiceType, n int) *models.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), models.BookingRequest{
		ClientName:   "Camila",
		ClientEmail:  "camila@example.com",
		ClientPhone:  "912345678",
		ServiceType:  st,
		EventDate:    "2025-03-15",
		EventTime:    "15:00",
		Participants: intPtr(n),
		Location:     "Providencia",
	})
	require.NoError(t, err)
	return b
}

func TestCreateComputesPriceAndNotifies(t *testing.T) {
	f := newFixture()

	b := f.create(t, models.ServiceWorkshop, 12)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, float64(162000), b.EstimatedPrice)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, []notification.Kind{notification.KindBookingCreated}, f.dispatcher.kinds())

	party := f.create(t, models.ServicePizzaParty, 25)
	assert.Equal(t, float64(269775), party.EstimatedPrice)

	stored, err := f.svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(162000), stored.EstimatedPrice)
	assert.EqualValues(t, 0, stored.Version)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	var vErr *utils.ValidationError

	_, err := f.svc.Create(ctx, models.BookingRequest{ServiceType: models.ServiceWorkshop})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "participants", vErr.Field)

	_, err = f.svc.Create(ctx, models.BookingRequest{Participants: intPtr(10)})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "service_type", vErr.Field)

	all, err := f.repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.dispatcher.jobs)
}

func TestCreateNormalizesEventDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.svc.Create(ctx, models.BookingRequest{ServiceType: models.ServiceWorkshop, Participants: intPtr(5), EventDate: "2025-06-01T18:30:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", b.EventDate)

	b, err = f.svc.Create(ctx, models.BookingRequest{ServiceType: models.ServiceWorkshop, Participants: intPtr(5), EventDate: "next friday"})
	require.NoError(t, err)
	assert.Equal(t, "next friday", b.EventDate)
}

func TestUpdateConfirmDispatchesConfirmation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.create(t, models.ServiceWorkshop, 12)

	updated, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{
		Status:         statusPtr(models.StatusConfirmed),
		ConfirmedPrice: floatPtr(150000),
		Notes:          stringPtr("llevar delantales"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.EqualValues(t, 1, updated.Version)
	require.NotNil(t, updated.UpdatedAt)

	require.Len(t, f.dispatcher.jobs, 2)
	last := f.dispatcher.jobs[1]
	assert.Equal(t, notification.KindBookingConfirmed, last.Kind)
	assert.Equal(t, 150000.0, *last.Booking.ConfirmedPrice)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "llevar delantales", stored.Notes)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func stringPtr(s string) *string { return &s }

func TestUpdateCompletedDerivesEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.create(t, models.ServiceWorkshop, 12)
	_, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{Status: statusPtr(models.StatusConfirmed)})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, b.ID, models.BookingUpdate{
		Status:    statusPtr(models.StatusCompleted),
		EventCost: floatPtr(60000),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.deriver.calls)
	assert.Nil(t, f.deriver.profit)
	assert.Equal(t, 60000.0, *f.deriver.booking.EventCost)
	assert.Equal(t, models.StatusCompleted, f.deriver.booking.Status)
	assert.Contains(t, f.dispatcher.kinds(), notification.KindBookingCompleted)
}

func TestUpdateCompletedWithoutCostsSkipsEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.create(t, models.ServicePizzaParty, 20)
	_, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{Status: statusPtr(models.StatusConfirmed)})
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, b.ID, models.BookingUpdate{Status: statusPtr(models.StatusCompleted)})
	require.NoError(t, err)
	assert.Zero(t, f.deriver.calls)
}

func TestEventDerivationFailureDoesNotFailUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.deriver.err = errors.New("events collection unavailable")
	b := f.create(t, models.ServiceWorkshop, 10)
	_, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{Status: statusPtr(models.StatusConfirmed)})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{
		Status:      statusPtr(models.StatusCompleted),
		EventProfit: floatPtr(42000),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, 1, f.deriver.calls)
	assert.Equal(t, 42000.0, *f.deriver.profit)
}

func TestUpdateRejectsIllegalTransitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.create(t, models.ServiceWorkshop, 10)
	var vErr *utils.ValidationError

	_, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{Status: statusPtr(models.StatusCompleted)})
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.Update(ctx, b.ID, models.BookingUpdate{Status: statusPtr("archived")})
	assert.ErrorAs(t, err, &vErr)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.EqualValues(t, 0, stored.Version)
}

func TestTerminalBookingsOnlyAcceptNotesAndCosts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.create(t, models.ServiceWorkshop, 10)
	_, err := f.svc.Cancel(ctx, b.ID)
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{Notes: stringPtr("cliente reagenda"), EventCost: floatPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "cliente reagenda", updated.Notes)

	_, err = f.svc.Update(ctx, b.ID, models.BookingUpdate{ConfirmedDate: stringPtr("2025-04-01")})
	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateMissingBooking(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Update(context.Background(), "missing", models.BookingUpdate{Notes: stringPtr("x")})
	var nErr *utils.NotFoundError
	assert.ErrorAs(t, err, &nErr)
	assert.Empty(t, f.dispatcher.jobs)
}

func TestUpdateWithStaleVersionConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.create(t, models.ServiceWorkshop, 10)

	stale := b.Version
	_, err := f.svc.Update(ctx, b.ID, models.BookingUpdate{Notes: stringPtr("first"), Version: &stale})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, b.ID, models.BookingUpdate{Notes: stringPtr("second"), Version: &stale})
	var cErr *utils.ConflictError
	assert.ErrorAs(t, err, &cErr)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", stored.Notes)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.create(t, models.ServiceWorkshop, 10)

	first, err := f.svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, first.Status)

	second, err := f.svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, second.Status)
	assert.Equal(t, first.Version, second.Version)
}

func TestCalendarListsConfirmedAndCompletedInMonth(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	now := time.Now()

	seed := []models.Booking{
		{ID: "a", ClientName: "Ana", ServiceType: models.ServiceWorkshop, EventDate: "2025-03-02", EventTime: "12:00", Status: models.StatusConfirmed, CreatedAt: now},
		{ID: "b", ClientName: "Beto", ServiceType: models.ServicePizzaParty, EventDate: "2025-03-20", Status: models.StatusCompleted, ConfirmedTime: "19:00", CreatedAt: now},
		{ID: "c", ClientName: "Caro", ServiceType: models.ServiceWorkshop, EventDate: "2025-03-10", Status: models.StatusPending, CreatedAt: now},
		{ID: "d", ClientName: "Dani", ServiceType: models.ServiceWorkshop, EventDate: "2025-04-01", Status: models.StatusConfirmed, CreatedAt: now},
	}
	for i := range seed {
		require.NoError(t, f.repo.Create(ctx, &seed[i]))
	}

	entries, err := f.svc.Calendar(ctx, 2025, 3)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Pizzeros en Acción - Ana", entries[0].Title)
	assert.Equal(t, "Pizza Party - Beto", entries[1].Title)
	assert.Equal(t, "19:00", entries[1].Time)

	_, err = f.svc.Calendar(ctx, 2025, 13)
	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
