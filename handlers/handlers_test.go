package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pizzeria/database"
	"pizzeria/database/repository"
	"pizzeria/middleware"
	"pizzeria/models"
	"pizzeria/services/booking"
	"pizzeria/services/contact"
	"pizzeria/services/event"
	"pizzeria/services/inventory"
	"pizzeria/services/notification"
	"pizzeria/services/review"

	"github.com/gin-gonic/gin"
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

func (d *recordingDispatcher) has(kind notification.Kind) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, j := range d.jobs {
		if j.Kind == kind {
			return true
		}
	}
	return false
}

type nopRunner struct{}

func (nopRunner) Run(ctx context.Context, job notification.Job) error { return nil }

type testServer struct {
	router     *gin.Engine
	dispatcher *recordingDispatcher
}

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer wires handlers over the in-memory store. asAdmin marks every request as an admin's.
func newTestServer(asAdmin bool) *testServer {
	repos := repository.New(database.NewMemoryStore())
	disp := &recordingDispatcher{}
	events := event.NewEventService(repos.Events, repos.Bookings, nopRunner{}, event.DateFallbackNow, nil)

	hb := &HandlerBundle{
		Bookings:  &BookingHandler{Service: booking.NewBookingService(repos.Bookings, booking.DefaultPriceList(), disp, events, nil)},
		Events:    &EventHandler{Service: events},
		Reviews:   &ReviewHandler{Service: review.NewService(repos.Reviews, disp, nil)},
		Inventory: &InventoryHandler{Service: inventory.NewService(repos.Inventory, disp, nil)},
		Contacts:  &ContactHandler{Service: contact.NewService(repos.Contacts, disp, nil)},
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextIsAdmin, asAdmin)
		c.Next()
	})
	r.GET("/", Root)
	r.GET("/api/health", Health)
	r.POST("/api/bookings/", hb.Bookings.CreateBooking)
	r.GET("/api/bookings/", hb.Bookings.ListBookings)
	r.GET("/api/bookings/calendar/:year/:month", hb.Bookings.Calendar)
	r.GET("/api/bookings/:id", hb.Bookings.GetBooking)
	r.PUT("/api/bookings/:id", hb.Bookings.UpdateBooking)
	r.DELETE("/api/bookings/:id", hb.Bookings.CancelBooking)
	r.GET("/api/events/booking/:booking_id", hb.Events.EventsByBooking)
	r.POST("/api/reviews/", hb.Reviews.CreateReview)
	r.GET("/api/reviews/", hb.Reviews.ListReviews)
	r.PUT("/api/reviews/:id/approve", hb.Reviews.ApproveReview)
	r.POST("/api/inventory/", hb.Inventory.CreateItem)
	r.PUT("/api/inventory/:id/stock", hb.Inventory.AdjustStock)
	r.GET("/api/inventory/alerts/low-stock", hb.Inventory.LowStockAlerts)
	r.POST("/api/contacts/", hb.Contacts.CreateContact)

	return &testServer{router: r, dispatcher: disp}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createBooking(t *testing.T, serviceType string, participants int) models.Booking {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/bookings/", gin.H{
		"client_name":  "Valentina",
		"client_email": "vale@example.com",
		"client_phone": "987654321",
		"service_type": serviceType,
		"participants": participants,
		"event_date":   "2025-03-14",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Booking](t, w)
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(false)

	w := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pablo's Pizza API", decode[map[string]any](t, w)["message"])

	w = s.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "checks")
}

func TestCreateBookingPricesRequest(t *testing.T) {
	s := newTestServer(false)

	b := s.createBooking(t, "workshop", 20)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, 243000.0, b.EstimatedPrice)
	assert.True(t, s.dispatcher.has(notification.KindBookingCreated))
}

func TestCreateBookingValidation(t *testing.T) {
	s := newTestServer(false)

	tests := []struct {
		name string
		body any
	}{
		{"missing participants", gin.H{"service_type": "workshop"}},
		{"missing service type", gin.H{"participants": 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/bookings/", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[map[string]any](t, w)["message"])
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingNotFound(t *testing.T) {
	s := newTestServer(true)
	w := s.do(t, http.MethodGet, "/api/bookings/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBookingLifecycle(t *testing.T) {
	s := newTestServer(true)
	b := s.createBooking(t, "pizza_party", 10)

	w := s.do(t, http.MethodPut, "/api/bookings/"+b.ID, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "pending bookings cannot complete")

	w = s.do(t, http.MethodPut, "/api/bookings/"+b.ID, gin.H{"status": "confirmed", "version": b.Version})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	confirmed := decode[models.Booking](t, w)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	assert.True(t, s.dispatcher.has(notification.KindBookingConfirmed))

	w = s.do(t, http.MethodPut, "/api/bookings/"+b.ID, gin.H{"notes": "stale", "version": b.Version})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPut, "/api/bookings/"+b.ID, gin.H{"status": "completed", "event_cost": 40000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/events/booking/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]models.Event](t, w)
	require.Len(t, events, 1)
	assert.Equal(t, 40000.0, events[0].EventCost)
}

func TestCancelBooking(t *testing.T) {
	s := newTestServer(true)
	b := s.createBooking(t, "workshop", 5)

	w := s.do(t, http.MethodDelete, "/api/bookings/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCancelled, decode[models.Booking](t, w).Status)

	w = s.do(t, http.MethodDelete, "/api/bookings/"+b.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListBookingsByStatus(t *testing.T) {
	s := newTestServer(true)
	s.createBooking(t, "workshop", 5)
	b := s.createBooking(t, "workshop", 8)
	s.do(t, http.MethodPut, "/api/bookings/"+b.ID, gin.H{"status": "confirmed"})

	w := s.do(t, http.MethodGet, "/api/bookings/?status=confirmed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Booking](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	w = s.do(t, http.MethodGet, "/api/bookings/calendar/2025/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.CalendarEntry](t, w), 1)
}

func TestReviewsVisibility(t *testing.T) {
	public := newTestServer(false)

	w := public.do(t, http.MethodPost, "/api/reviews/", gin.H{"client_name": "Tomás", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = public.do(t, http.MethodPost, "/api/reviews/", gin.H{"client_name": "Tomás", "rating": 5, "comment": "Excelente"})
	require.Equal(t, http.StatusCreated, w.Code)
	rv := decode[models.Review](t, w)
	assert.False(t, rv.IsApproved)

	w = public.do(t, http.MethodGet, "/api/reviews/?approved_only=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Review](t, w), "non-admins only see approved reviews")
}

func TestReviewsAdminListAndApprove(t *testing.T) {
	s := newTestServer(true)
	w := s.do(t, http.MethodPost, "/api/reviews/", gin.H{"client_name": "Tomás", "rating": 4})
	require.Equal(t, http.StatusCreated, w.Code)
	rv := decode[models.Review](t, w)

	w = s.do(t, http.MethodGet, "/api/reviews/?approved_only=false", nil)
	assert.Len(t, decode[[]models.Review](t, w), 1)

	w = s.do(t, http.MethodPut, "/api/reviews/"+rv.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.Review](t, w).IsApproved)

	w = s.do(t, http.MethodGet, "/api/reviews/", nil)
	assert.Len(t, decode[[]models.Review](t, w), 1)
}

func TestInventoryStockAdjustment(t *testing.T) {
	s := newTestServer(true)
	w := s.do(t, http.MethodPost, "/api/inventory/", gin.H{"name": "Harina", "category": "ingredientes", "current_stock": 10, "min_stock": 3, "unit": "kg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[models.InventoryItem](t, w)
	assert.False(t, item.NeedsRestock)

	w = s.do(t, http.MethodPut, "/api/inventory/"+item.ID+"/stock", gin.H{"operation": "multiply", "quantity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/inventory/"+item.ID+"/stock", gin.H{"operation": "subtract", "quantity": 50})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.InventoryItem](t, w)
	assert.Equal(t, 0, updated.CurrentStock)
	assert.True(t, updated.NeedsRestock)
	assert.True(t, s.dispatcher.has(notification.KindLowStock))

	w = s.do(t, http.MethodGet, "/api/inventory/alerts/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, body["total"])
}

func TestCreateContact(t *testing.T) {
	s := newTestServer(false)

	w := s.do(t, http.MethodPost, "/api/contacts/", gin.H{"name": "Ignacia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/contacts/", gin.H{"name": "Ignacia", "email": "ignacia@example.com", "message": "¿Hacen talleres para empresas?"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, s.dispatcher.has(notification.KindContactReceived))
}
