package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pizzeria/handlers"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type denyVerifier struct{}

func (denyVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return nil, errors.New("invalid token")
}

type denyRooms struct{}

func (denyRooms) Authorize(token, roomID string) bool { return false }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	hb := &handlers.HandlerBundle{
		Bookings:      &handlers.BookingHandler{},
		Events:        &handlers.EventHandler{},
		Gallery:       &handlers.GalleryHandler{},
		Reviews:       &handlers.ReviewHandler{},
		Inventory:     &handlers.InventoryHandler{},
		Reports:       &handlers.ReportHandler{},
		Notifications: &handlers.NotificationHandler{},
		Chat:          &handlers.ChatHandler{},
		Contacts:      &handlers.ContactHandler{},
	}
	r := gin.New()
	RegisterRoutes(r, hb, Auth{Verifier: denyVerifier{}, Rooms: denyRooms{}, Enabled: true}, []string{"https://pablospizza.web.app"})
	return r
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newRouter()

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/bookings/"},
		{http.MethodPut, "/api/bookings/b1"},
		{http.MethodGet, "/api/inventory/"},
		{http.MethodGet, "/api/inventory/alerts"},
		{http.MethodGet, "/api/reports/dashboard"},
		{http.MethodPost, "/api/notifications/bulk-send"},
		{http.MethodGet, "/api/chat/rooms"},
		{http.MethodGet, "/api/contacts/"},
		{http.MethodPost, "/api/gallery/upload"},
		{http.MethodGet, "/ws/admin"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := httptest.NewRequest(p.method, p.path, nil)
			req.Header.Set("Authorization", "Bearer forged")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestLowStockAlertsServedOnBothPaths(t *testing.T) {
	registered := map[string]string{}
	for _, ri := range newRouter().Routes() {
		if ri.Method == http.MethodGet {
			registered[ri.Path] = ri.Handler
		}
	}
	for _, path := range []string{"/api/inventory/alerts", "/api/inventory/alerts/low-stock"} {
		handler, ok := registered[path]
		if assert.True(t, ok, path) {
			assert.Contains(t, handler, "LowStockAlerts")
		}
	}
}

func TestChatRoomRoutesRequireRoomToken(t *testing.T) {
	r := newRouter()
	for _, path := range []string{"/api/chat/rooms/r1/messages", "/ws/r1?token=nope"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestPublicRoutes(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings/", nil)
	req.Header.Set("Origin", "https://pablospizza.web.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://pablospizza.web.app", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/bookings/", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
