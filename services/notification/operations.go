package notification

import (
	"context"
	"strings"
	"time"

	"pizzeria/models"
	"pizzeria/utils"

	"go.uber.org/zap"
)

const (
	FilterAll            = "all"
	FilterRecentClients  = "recent_clients"
	FilterActiveBookings = "active_bookings"

	recentClientWindow = 30 * 24 * time.Hour
	lastDate           = "9999-12-31"
)

// Send delivers a manual WhatsApp message. It reports whether the message went out.
func (s *Service) Send(ctx context.Context, req models.SendNotificationRequest) (bool, error) {
	if strings.TrimSpace(req.RecipientPhone) == "" {
		return false, utils.NewValidationError("recipient_phone", "is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return false, utils.NewValidationError("message", "is required")
	}
	err := s.Run(ctx, Job{
		Kind:             KindDirectWhatsApp,
		Recipient:        req.RecipientPhone,
		Message:          req.Message,
		NotificationType: req.NotificationType,
	})
	return err == nil, nil
}

// Test sends a fixed probe message to phone.
func (s *Service) Test(ctx context.Context, phone, message string) (bool, error) {
	if message == "" {
		message = testMessageBody
	}
	return s.Send(ctx, models.SendNotificationRequest{
		RecipientPhone:   phone,
		Message:          message,
		NotificationType: "test",
	})
}

// List returns recorded attempts from the last daysBack days, newest first.
func (s *Service) List(ctx context.Context, daysBack int, status string, limit int) ([]models.NotificationRecord, error) {
	if daysBack <= 0 {
		daysBack = 7
	}
	if limit <= 0 {
		limit = 100
	}
	since := s.now().AddDate(0, 0, -daysBack)
	return s.records.Since(ctx, since, status, limit)
}

// Stats summarises delivery outcomes over the last days days.
func (s *Service) Stats(ctx context.Context, days int) (*models.NotificationStats, error) {
	if days <= 0 {
		days = 30
	}
	recs, err := s.records.Since(ctx, s.now().AddDate(0, 0, -days), "", 0)
	if err != nil {
		return nil, err
	}

	stats := &models.NotificationStats{ByType: map[string]int{}, PeriodDays: days}
	for _, r := range recs {
		stats.TotalNotifications++
		switch r.Status {
		case models.DeliverySent:
			stats.Sent++
		case models.DeliveryFailed:
			stats.Failed++
		}
		ntype := r.NotificationType
		if ntype == "" {
			ntype = "unknown"
		}
		stats.ByType[ntype]++
	}
	if stats.TotalNotifications > 0 {
		stats.SuccessRate = utils.RoundTo(float64(stats.Sent)/float64(stats.TotalNotifications)*100, 2)
	}
	return stats, nil
}

// SendDailyReminders messages every confirmed booking taking place tomorrow.
// It returns how many reminders were delivered and how many bookings qualified.
func (s *Service) SendDailyReminders(ctx context.Context) (int, int, error) {
	tomorrow := s.now().In(eventLocation).AddDate(0, 0, 1)
	from := tomorrow.Format(utils.DateLayout)
	to := tomorrow.AddDate(0, 0, 1).Format(utils.DateLayout)

	bookings, err := s.bookings.ByEventDate(ctx, from, to, models.StatusConfirmed)
	if err != nil {
		return 0, 0, err
	}

	sent := 0
	for i := range bookings {
		b := bookings[i]
		if b.ClientPhone == "" {
			continue
		}
		if err := s.Run(ctx, Job{Kind: KindBookingReminder, Booking: &b}); err != nil {
			s.logger.Warn("Reminder not delivered", zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		sent++
	}
	s.logger.Info("Daily reminders processed", zap.String("date", from), zap.Int("bookings", len(bookings)), zap.Int("sent", sent))
	return sent, len(bookings), nil
}

// BulkSend messages every distinct client phone matched by the recipient filter.
func (s *Service) BulkSend(ctx context.Context, req models.BulkSendRequest) (*models.BulkSendResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, utils.NewValidationError("message", "is required")
	}
	if req.NotificationType == "" {
		return nil, utils.NewValidationError("notification_type", "is required")
	}
	filter := req.RecipientFilter
	if filter == "" {
		filter = FilterAll
	}

	var (
		bookings []models.Booking
		err      error
	)
	now := s.now()
	switch filter {
	case FilterAll:
		bookings, err = s.bookings.All(ctx)
	case FilterRecentClients:
		bookings, err = s.bookings.CreatedBetween(ctx, now.Add(-recentClientWindow), now.Add(time.Second))
	case FilterActiveBookings:
		tomorrow := now.In(eventLocation).AddDate(0, 0, 1).Format(utils.DateLayout)
		bookings, err = s.bookings.ByEventDate(ctx, tomorrow, lastDate, models.StatusConfirmed)
	default:
		return nil, utils.NewValidationError("recipient_filter", "must be all, recent_clients or active_bookings")
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var phones []string
	for _, b := range bookings {
		phone := strings.TrimSpace(b.ClientPhone)
		if phone == "" || seen[FormatWhatsAppNumber(phone)] {
			continue
		}
		seen[FormatWhatsAppNumber(phone)] = true
		phones = append(phones, phone)
	}

	res := &models.BulkSendResult{TotalRecipients: len(phones), Filter: filter}
	for _, phone := range phones {
		err := s.Run(ctx, Job{
			Kind:             KindDirectWhatsApp,
			Recipient:        phone,
			Message:          req.Message,
			NotificationType: "bulk_" + req.NotificationType,
		})
		if err != nil {
			res.Failed++
			continue
		}
		res.Sent++
	}
	return res, nil
}
