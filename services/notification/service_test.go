package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"pizzeria/database"
	bookingRepo "pizzeria/database/repository/booking"
	notificationRepo "pizzeria/database/repository/notification"
	"pizzeria/models"
	"pizzeria/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmail struct {
	mu   sync.Mutex
	sent []Email
	err  error
}

func (f *fakeEmail) SendEmail(ctx context.Context, msg Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

type waMessage struct{ to, body string }

type fakeWhatsApp struct {
	mu     sync.Mutex
	sent   []waMessage
	failTo map[string]bool
}

func (f *fakeWhatsApp) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, waMessage{to: to, body: body})
	if f.failTo[to] {
		return "", errors.New("twilio unavailable")
	}
	return fmt.Sprintf("SM%03d", len(f.sent)), nil
}

type fakePush struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (f *fakePush) SendPush(ctx context.Context, topic, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	return f.err
}

type harness struct {
	svc      *Service
	email    *fakeEmail
	whatsapp *fakeWhatsApp
	push     *fakePush
	records  notificationRepo.NotificationRepository
	bookings bookingRepo.BookingRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := database.NewMemoryStore()
	h := &harness{
		email:    &fakeEmail{},
		whatsapp: &fakeWhatsApp{failTo: map[string]bool{}},
		push:     &fakePush{},
		records:  notificationRepo.NewNotificationRepo(store),
		bookings: bookingRepo.NewBookingRepo(store),
	}
	h.svc = NewService(h.email, h.whatsapp, h.push, h.records, h.bookings, Settings{
		AdminPhone:   "+56911111111",
		PartnerPhone: "+56922222222",
		AdminEmail:   "admin@pablospizza.cl",
		AdminTopic:   "admins",
		EmailFrom:    "reservas@pablospizza.cl",
		ReviewURL:    "https://pablospizza.web.app/reviews",
	}, nil)
	return h
}

func (h *harness) allRecords(t *testing.T) []models.NotificationRecord {
	t.Helper()
	recs, err := h.records.Since(context.Background(), time.Time{}, "", 0)
	require.NoError(t, err)
	return recs
}

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:             "b-1",
		ClientName:     "Camila",
		ClientEmail:    "camila@example.com",
		ClientPhone:    "912345678",
		ServiceType:    models.ServiceWorkshop,
		EventDate:      "2025-03-15",
		EventTime:      "15:30",
		Participants:   12,
		Location:       "Providencia",
		Status:         models.StatusConfirmed,
		EstimatedPrice: 162000,
	}
}

func TestFormatWhatsAppNumber(t *testing.T) {
	tests := []struct{ in, want string }{
		{"912345678", "whatsapp:+56912345678"},
		{" +56912345678 ", "whatsapp:+56912345678"},
		{"+14155238886", "whatsapp:+14155238886"},
		{"whatsapp:+56900000000", "whatsapp:+56900000000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatWhatsAppNumber(tt.in))
	}
}

func TestConfirmedBookingAttemptsEveryChannelIndependently(t *testing.T) {
	h := newHarness(t)
	h.email.err = errors.New("smtp down")

	err := h.svc.Run(context.Background(), Job{Kind: KindBookingConfirmed, Booking: confirmedBooking()})
	require.Error(t, err)
	var nErr *utils.NotificationError
	assert.ErrorAs(t, err, &nErr)

	require.Len(t, h.email.sent, 1)
	require.Len(t, h.whatsapp.sent, 2)
	assert.Equal(t, "912345678", h.whatsapp.sent[0].to)
	assert.Contains(t, h.whatsapp.sent[0].body, "CONFIRMADO")
	assert.Equal(t, "+56922222222", h.whatsapp.sent[1].to)

	recs := h.allRecords(t)
	require.Len(t, recs, 3)
	byType := map[string]string{}
	for _, r := range recs {
		byType[r.NotificationType] = r.Status
	}
	assert.Equal(t, models.DeliveryFailed, byType["confirmation"])
	assert.Equal(t, models.DeliverySent, byType["booking_confirmation"])
	assert.Equal(t, models.DeliverySent, byType["partner_alert"])
}

func TestConfirmationEmailCarriesCalendarInvite(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.svc.Run(context.Background(), Job{
		Kind:    KindBookingConfirmed,
		Target:  TargetClientEmail,
		Booking: confirmedBooking(),
	}))

	require.Len(t, h.email.sent, 1)
	msg := h.email.sent[0]
	assert.Equal(t, "camila@example.com", msg.To)
	assert.Contains(t, msg.HTML, "Camila")
	assert.Contains(t, msg.HTML, "$162.000")
	require.Len(t, msg.Attachments, 1)
	invite := string(msg.Attachments[0].Data)
	assert.True(t, strings.HasPrefix(invite, "BEGIN:VCALENDAR"))
	assert.Contains(t, invite, "METHOD:REQUEST")
	assert.Contains(t, invite, "BEGIN:VEVENT")
}

func TestMissingRecipientsAreSkippedNotFailed(t *testing.T) {
	h := newHarness(t)
	h.svc.settings.PartnerPhone = ""
	b := confirmedBooking()
	b.ClientPhone = ""

	require.NoError(t, h.svc.Run(context.Background(), Job{Kind: KindBookingConfirmed, Booking: b}))
	assert.Len(t, h.email.sent, 1)
	assert.Empty(t, h.whatsapp.sent)
}

func TestRunRejectsUnknownKindAndMissingPayload(t *testing.T) {
	h := newHarness(t)
	var vErr *utils.ValidationError

	assert.ErrorAs(t, h.svc.Run(context.Background(), Job{Kind: "nope"}), &vErr)
	assert.ErrorAs(t, h.svc.Run(context.Background(), Job{Kind: KindBookingReminder}), &vErr)
	assert.Empty(t, h.allRecords(t))
}

func TestSendAndStats(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.whatsapp.failTo["+56900000000"] = true

	ok, err := h.svc.Send(ctx, models.SendNotificationRequest{RecipientPhone: "+56912345678", Message: "hola", NotificationType: "promo"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.svc.Send(ctx, models.SendNotificationRequest{RecipientPhone: "+56900000000", Message: "hola", NotificationType: "promo"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.svc.Test(ctx, "+56912345678", "")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = h.svc.Send(ctx, models.SendNotificationRequest{Message: "sin destino"})
	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)

	stats, err := h.svc.Stats(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalNotifications)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 66.67, stats.SuccessRate)
	assert.Equal(t, 2, stats.ByType["promo"])
	assert.Equal(t, 1, stats.ByType["test"])

	failed, err := h.svc.List(ctx, 7, models.DeliveryFailed, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "whatsapp:+56900000000", failed[0].Recipient)
}

func TestSendDailyRemindersTargetsTomorrowsConfirmedBookings(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.svc.now = func() time.Time { return time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC) }

	seed := []models.Booking{
		{ID: "due", ClientPhone: "911111111", EventDate: "2025-03-15", Status: models.StatusConfirmed},
		{ID: "pending", ClientPhone: "922222222", EventDate: "2025-03-15", Status: models.StatusPending},
		{ID: "later", ClientPhone: "933333333", EventDate: "2025-03-16", Status: models.StatusConfirmed},
		{ID: "nophone", EventDate: "2025-03-15", Status: models.StatusConfirmed},
	}
	for i := range seed {
		require.NoError(t, h.bookings.Create(ctx, &seed[i]))
	}

	sent, total, err := h.svc.SendDailyReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 2, total)
	require.Len(t, h.whatsapp.sent, 1)
	assert.Equal(t, "911111111", h.whatsapp.sent[0].to)
	assert.Contains(t, h.whatsapp.sent[0].body, "MAÑANA")
}

func TestBulkSendDeduplicatesPhonesAndCountsOutcomes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()
	h.whatsapp.failTo["+56933333333"] = true

	seed := []models.Booking{
		{ID: "a", ClientPhone: "911111111", CreatedAt: now},
		{ID: "b", ClientPhone: "+56911111111", CreatedAt: now},
		{ID: "c", ClientPhone: "+56933333333", CreatedAt: now},
		{ID: "d", ClientPhone: "944444444", CreatedAt: now.AddDate(0, -3, 0)},
		{ID: "e", CreatedAt: now},
	}
	for i := range seed {
		require.NoError(t, h.bookings.Create(ctx, &seed[i]))
	}

	res, err := h.svc.BulkSend(ctx, models.BulkSendRequest{Message: "promo", NotificationType: "promo", RecipientFilter: FilterRecentClients})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalRecipients)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)

	stats, err := h.svc.Stats(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ByType["bulk_promo"])

	res, err = h.svc.BulkSend(ctx, models.BulkSendRequest{Message: "promo", NotificationType: "promo"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalRecipients)

	_, err = h.svc.BulkSend(ctx, models.BulkSendRequest{Message: "promo", NotificationType: "promo", RecipientFilter: "vip"})
	var vErr *utils.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("t%d", len(f.tasks))}, nil
}

func TestQueueDispatcherEnqueuesOneTaskPerTarget(t *testing.T) {
	h := newHarness(t)
	q := &fakeEnqueuer{}
	d := NewQueueDispatcher(q, 3, NewInlineDispatcher(h.svc, nil), nil)

	d.Dispatch(context.Background(), Job{Kind: KindBookingCreated, Booking: confirmedBooking()})
	require.Len(t, q.tasks, 3)
	for _, task := range q.tasks {
		assert.Equal(t, "notification:deliver", task.Type())
	}
	assert.Empty(t, h.whatsapp.sent)
}

func TestQueueDispatcherFallsBackInline(t *testing.T) {
	h := newHarness(t)
	q := &fakeEnqueuer{err: errors.New("redis down")}
	d := NewQueueDispatcher(q, 3, NewInlineDispatcher(h.svc, nil), nil)

	d.Dispatch(context.Background(), Job{Kind: KindBookingCreated, Booking: confirmedBooking()})
	assert.Len(t, h.whatsapp.sent, 2)
	assert.Len(t, h.push.titles, 1)
}

func TestInlineDispatcherSwallowsFailures(t *testing.T) {
	h := newHarness(t)
	h.push.err = errors.New("fcm down")
	d := NewInlineDispatcher(h.svc, nil)

	d.Dispatch(context.Background(), Job{Kind: KindBookingCreated, Booking: confirmedBooking()})
	assert.Len(t, h.whatsapp.sent, 2)
	assert.Len(t, h.allRecords(t), 3)
}
