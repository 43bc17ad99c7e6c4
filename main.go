package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pizzeria/config"
	"pizzeria/cron"
	"pizzeria/database"
	"pizzeria/database/repository"
	"pizzeria/handlers"
	"pizzeria/middleware"
	"pizzeria/routes"
	"pizzeria/services/booking"
	"pizzeria/services/chat"
	"pizzeria/services/contact"
	"pizzeria/services/event"
	"pizzeria/services/gallery"
	"pizzeria/services/inventory"
	"pizzeria/services/notification"
	"pizzeria/services/report"
	"pizzeria/services/review"
	"pizzeria/services/storage"
	"pizzeria/utils"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := utils.FirebaseInit(ctx)
	if err != nil {
		logger.Warn("Firebase unavailable, push and admin auth disabled", zap.Error(err))
	}

	store, err := database.Open(ctx, cfg, app, logger)
	if err != nil {
		logger.Fatal("main: failed to open document store", zap.Error(err))
	}
	defer store.Close(context.Background())

	blobs, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize blob storage", zap.Error(err))
	}
	if closer, ok := blobs.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	cache := utils.GetCacheClient()
	repos := repository.New(store)

	// notification senders.
	var fcm *messaging.Client
	var verifier middleware.TokenVerifier
	if app != nil {
		if fcm, err = app.Messaging(ctx); err != nil {
			logger.Warn("FCM client unavailable", zap.Error(err))
		}
		verifier = firebaseVerifier(ctx, app, logger)
	}
	if cfg.AuthEnabled && verifier == nil {
		logger.Fatal("main: AUTH_ENABLED requires a working firebase app")
	}

	notifier := notification.NewService(
		notification.NewSMTPEmailSender(notification.SMTPConfig{
			Host:     cfg.EmailServer,
			Port:     cfg.EmailPort,
			Username: cfg.EmailUsername,
			Password: cfg.EmailPassword,
			From:     cfg.EmailFrom,
		}),
		notification.NewTwilioWhatsAppSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom),
		notification.NewFCMPushSender(fcm),
		repos.Notifications,
		repos.Bookings,
		notification.SettingsFromConfig(cfg),
		logger.Named("notification"),
	)

	inline := notification.NewInlineDispatcher(notifier, logger)
	var dispatcher notification.Dispatcher = inline
	var worker *cron.Worker
	if cfg.NotifyAsync {
		redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
		client := asynq.NewClient(redisOpt)
		defer client.Close()
		dispatcher = notification.NewQueueDispatcher(client, cfg.NotifyMaxRetry, inline, logger)

		worker = cron.NewWorker(redisOpt, notifier, notifier, cfg.DailyReminderCron, logger.Named("worker"))
		if err := worker.Start(); err != nil {
			logger.Fatal("main: failed to start task worker", zap.Error(err))
		}
	}

	// services.
	eventService := event.NewEventService(repos.Events, repos.Bookings, notifier, event.ParseDatePolicy(cfg.EventDateFallback), logger)
	bookingService := booking.NewBookingService(repos.Bookings, booking.PriceListFromConfig(cfg), dispatcher, eventService, logger)
	inventoryService := inventory.NewService(repos.Inventory, dispatcher, logger)
	reviewService := review.NewService(repos.Reviews, dispatcher, logger)

	hub := chat.NewHub()
	go hub.Run()
	chatService := chat.NewService(repos.Chat, hub, utils.NewTokenIssuer(cfg.ChatTokenSecret, cfg.ChatTokenTTL), dispatcher, logger.Named("chat"))

	bundle := &handlers.HandlerBundle{
		Bookings:      &handlers.BookingHandler{Service: bookingService},
		Events:        &handlers.EventHandler{Service: eventService},
		Gallery:       &handlers.GalleryHandler{Service: gallery.NewService(repos.Gallery, blobs, logger)},
		Reviews:       &handlers.ReviewHandler{Service: reviewService},
		Inventory:     &handlers.InventoryHandler{Service: inventoryService},
		Reports:       &handlers.ReportHandler{Service: report.NewService(repos.Events, repos.Bookings, repos.Inventory, repos.Reviews, cache, cfg.ReportCacheTTL, logger)},
		Notifications: &handlers.NotificationHandler{Service: notifier},
		Chat:          &handlers.ChatHandler{Service: chatService},
		Contacts:      &handlers.ContactHandler{Service: contact.NewService(repos.Contacts, dispatcher, logger)},
	}

	utils.StartHealthMonitor(ctx, []*redis.Client{cache}, store)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, bundle, routes.Auth{
		Verifier: verifier,
		Rooms:    chatService,
		Enabled:  cfg.AuthEnabled,
	}, cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	hub.Stop()
	if worker != nil {
		worker.Shutdown()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

func firebaseVerifier(ctx context.Context, app *firebase.App, logger *zap.Logger) middleware.TokenVerifier {
	client, err := app.Auth(ctx)
	if err != nil {
		logger.Warn("Firebase auth client unavailable", zap.Error(err))
		return nil
	}
	return client
}
