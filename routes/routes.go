package routes

import (
	"time"

	"pizzeria/handlers"
	"pizzeria/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth carries what the admin and chat guards need.
type Auth struct {
	Verifier middleware.TokenVerifier
	Rooms    middleware.RoomAuthorizer
	Enabled  bool
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Chat-Token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// RegisterHealthRoutes registers liveness and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/", handlers.Root)
	r.GET("/api/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterGalleryRoutes keeps reads public and writes behind admin auth.
func RegisterGalleryRoutes(r *gin.Engine, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	gallery := r.Group("/api/gallery")
	{
		gallery.GET("/", hb.Gallery.ListImages)
		gallery.GET("/featured/homepage", hb.Gallery.FeaturedImages)
		gallery.GET("/:id", hb.Gallery.GetImage)

		gallery.POST("/upload", admin, hb.Gallery.UploadImage)
		gallery.PUT("/:id", admin, hb.Gallery.UpdateImage)
		gallery.DELETE("/:id", admin, hb.Gallery.DeleteImage)
	}
}

func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth Auth, admin gin.HandlerFunc) {
	reviews := r.Group("/api/reviews")
	{
		reviews.POST("/", hb.Reviews.CreateReview)
		reviews.GET("/", middleware.OptionalAdmin(auth.Verifier, auth.Enabled), hb.Reviews.ListReviews)
		reviews.GET("/stats", hb.Reviews.ReviewStats)
		reviews.GET("/featured/top", hb.Reviews.TopReviews)
		reviews.GET("/event/:event_id", hb.Reviews.EventReviews)

		reviews.GET("/:id", admin, hb.Reviews.GetReview)
		reviews.PUT("/:id/approve", admin, hb.Reviews.ApproveReview)
		reviews.DELETE("/:id", admin, hb.Reviews.DeleteReview)
	}
}

func RegisterInventoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	inventory := r.Group("/api/inventory", admin)
	{
		inventory.POST("/", hb.Inventory.CreateItem)
		inventory.GET("/", hb.Inventory.ListItems)
		inventory.GET("/categories", hb.Inventory.Categories)
		inventory.GET("/alerts", hb.Inventory.LowStockAlerts)
		inventory.GET("/alerts/low-stock", hb.Inventory.LowStockAlerts)
		inventory.GET("/:id", hb.Inventory.GetItem)
		inventory.PUT("/:id", hb.Inventory.UpdateItem)
		inventory.PUT("/:id/stock", hb.Inventory.AdjustStock)
		inventory.DELETE("/:id", hb.Inventory.DeleteItem)
	}
}

func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	reports := r.Group("/api/reports", admin)
	{
		reports.GET("/monthly/:year/:month", hb.Reports.Monthly)
		reports.GET("/annual/:year", hb.Reports.Annual)
		reports.GET("/dashboard", hb.Reports.Dashboard)
		reports.GET("/export/monthly/:year/:month", hb.Reports.ExportMonthly)
		reports.GET("/clients/top", hb.Reports.TopClients)
	}
}

func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	notifications := r.Group("/api/notifications", admin)
	{
		notifications.POST("/send", hb.Notifications.Send)
		notifications.GET("/", hb.Notifications.List)
		notifications.GET("/stats", hb.Notifications.Stats)
		notifications.POST("/test", hb.Notifications.Test)
		notifications.POST("/reminders/send-daily", hb.Notifications.SendDailyReminders)
		notifications.POST("/bulk-send", hb.Notifications.BulkSend)
	}
}

// RegisterChatRoutes registers the REST chat API and the websocket endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth Auth, admin gin.HandlerFunc) {
	roomAuth := middleware.ChatRoomAuth(auth.Rooms, auth.Verifier, auth.Enabled)

	chat := r.Group("/api/chat")
	{
		chat.POST("/rooms", hb.Chat.CreateRoom)
		chat.GET("/rooms", admin, hb.Chat.Rooms)
		chat.GET("/rooms/:id/messages", roomAuth, hb.Chat.Messages)
		chat.POST("/rooms/:id/messages", roomAuth, hb.Chat.PostMessage)
		chat.GET("/rooms/:id/status", roomAuth, hb.Chat.Status)
		chat.PUT("/rooms/:id/close", admin, hb.Chat.CloseRoom)
	}

	ws := r.Group("/ws")
	{
		ws.GET("/admin", admin, hb.Chat.AdminSocket)
		ws.GET("/:room_id", roomAuth, hb.Chat.RoomSocket)
	}
}

func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	contacts := r.Group("/api/contacts")
	{
		contacts.POST("/", hb.Contacts.CreateContact)
		contacts.GET("/", admin, hb.Contacts.ListContacts)
	}
}

// RegisterRoutes centralizes registration of all endpoints and CORS.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth Auth, corsOrigins []string) {
	r.Use(corsMiddleware(corsOrigins))

	admin := middleware.FirebaseAdminAuth(auth.Verifier, auth.Enabled)

	RegisterHealthRoutes(r)
	RegisterBookingRoutes(r, hb, admin)
	RegisterGalleryRoutes(r, hb, admin)
	RegisterReviewRoutes(r, hb, auth, admin)
	RegisterInventoryRoutes(r, hb, admin)
	RegisterReportRoutes(r, hb, admin)
	RegisterNotificationRoutes(r, hb, admin)
	RegisterChatRoutes(r, hb, auth, admin)
	RegisterContactRoutes(r, hb, admin)
}
