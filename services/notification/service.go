package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizzeria/config"
	bookingRepo "pizzeria/database/repository/booking"
	notificationRepo "pizzeria/database/repository/notification"
	"pizzeria/models"
	"pizzeria/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settings are the fixed recipients and links notifications are addressed with.
type Settings struct {
	AdminPhone   string
	PartnerPhone string
	AdminEmail   string
	AdminTopic   string
	EmailFrom    string
	ReviewURL    string
}

func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		AdminPhone:   cfg.AdminWhatsAppNumber,
		PartnerPhone: cfg.PartnerWhatsAppNumber,
		AdminEmail:   cfg.AdminEmail,
		AdminTopic:   cfg.AdminFCMTopic,
		EmailFrom:    cfg.EmailFrom,
		ReviewURL:    cfg.ReviewURL,
	}
}

// Service renders and delivers notification jobs and records every attempt.
type Service struct {
	email    EmailSender
	whatsapp WhatsAppSender
	push     PushSender
	records  notificationRepo.NotificationRepository
	bookings bookingRepo.BookingRepository
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	email EmailSender,
	whatsapp WhatsAppSender,
	push PushSender,
	records notificationRepo.NotificationRepository,
	bookings bookingRepo.BookingRepository,
	settings Settings,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		email:    email,
		whatsapp: whatsapp,
		push:     push,
		records:  records,
		bookings: bookings,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Run delivers a job to its target, or to every target of its kind when none is set.
// Each target is attempted even when an earlier one failed; the failures are joined.
func (s *Service) Run(ctx context.Context, job Job) error {
	parts := job.Split()
	if len(parts) == 0 {
		return utils.NewValidationError("kind", fmt.Sprintf("unknown notification kind %q", job.Kind))
	}
	var errs []error
	for _, part := range parts {
		if err := s.deliver(ctx, part); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) deliver(ctx context.Context, job Job) error {
	b := job.Booking
	needBooking := func() error {
		if b == nil {
			return utils.NewValidationError("booking", fmt.Sprintf("%s job without booking", job.Kind))
		}
		return nil
	}

	switch job.Target {
	case TargetDirect:
		ntype := job.NotificationType
		if ntype == "" {
			ntype = "manual"
		}
		return s.sendWhatsApp(ctx, job.Recipient, job.Message, ntype, "")

	case TargetClientWhatsApp:
		if err := needBooking(); err != nil {
			return err
		}
		var msg, ntype string
		switch job.Kind {
		case KindBookingCreated:
			msg, ntype = bookingAckMessage(b), "booking_received"
		case KindBookingConfirmed:
			msg, ntype = confirmationMessage(b), "booking_confirmation"
		case KindBookingReminder:
			msg, ntype = reminderMessage(b), "reminder"
		case KindReviewRequest:
			if job.Event == nil {
				return utils.NewValidationError("event", "review request without event")
			}
			msg, ntype = reviewRequestMessage(b.ClientName, s.settings.ReviewURL, job.Event.ID), "review_request"
		default:
			return s.unsupported(job)
		}
		if b.ClientPhone == "" {
			s.logger.Debug("Booking has no phone, skipping client WhatsApp", zap.String("booking_id", b.ID), zap.String("kind", string(job.Kind)))
			return nil
		}
		return s.sendWhatsApp(ctx, b.ClientPhone, msg, ntype, b.ID)

	case TargetAdminWhatsApp:
		var msg, ntype string
		switch {
		case job.Kind == KindBookingCreated && b != nil:
			msg, ntype = newBookingAdminMessage(b), "admin_alert"
		case job.Kind == KindLowStock && job.Item != nil:
			msg, ntype = lowStockMessage(job.Item), "inventory_alert"
		default:
			return s.unsupported(job)
		}
		if s.settings.AdminPhone == "" {
			return nil
		}
		return s.sendWhatsApp(ctx, s.settings.AdminPhone, msg, ntype, job.bookingID())

	case TargetPartnerWhatsApp:
		if err := needBooking(); err != nil {
			return err
		}
		if s.settings.PartnerPhone == "" {
			return nil
		}
		return s.sendWhatsApp(ctx, s.settings.PartnerPhone, partnerMessage(b), "partner_alert", b.ID)

	case TargetAdminPush:
		title, body, ntype, data, err := s.pushContent(job)
		if err != nil {
			return err
		}
		return s.sendPush(ctx, title, body, ntype, data, job.bookingID())

	case TargetClientEmail:
		if err := needBooking(); err != nil {
			return err
		}
		if job.Kind != KindBookingConfirmed {
			return s.unsupported(job)
		}
		if b.ClientEmail == "" {
			s.logger.Debug("Booking has no email, skipping confirmation email", zap.String("booking_id", b.ID))
			return nil
		}
		return s.sendConfirmationEmail(ctx, b)

	case TargetAdminEmail:
		if job.Kind != KindContactReceived || job.Contact == nil {
			return s.unsupported(job)
		}
		if s.settings.AdminEmail == "" {
			return nil
		}
		subject, html, err := contactEmail(job.Contact)
		if err != nil {
			return err
		}
		return s.sendEmail(ctx, Email{To: s.settings.AdminEmail, Subject: subject, HTML: html}, "contact", "")
	}
	return s.unsupported(job)
}

func (s *Service) unsupported(job Job) error {
	return utils.NewValidationError("target", fmt.Sprintf("%s cannot be delivered to %s with the given payload", job.Kind, job.Target))
}

func (s *Service) pushContent(job Job) (title, body, ntype string, data map[string]string, err error) {
	switch job.Kind {
	case KindBookingCreated:
		if b := job.Booking; b != nil {
			return "🍕 Nuevo agendamiento",
				fmt.Sprintf("%s - %s para %d personas el %s", b.ClientName, ServiceName(b.ServiceType), b.Participants, displayDate(b.EventDate)),
				"new_booking", map[string]string{"booking_id": b.ID}, nil
		}
	case KindBookingCompleted:
		if b := job.Booking; b != nil {
			return "✅ Evento completado",
				fmt.Sprintf("%s de %s marcado como completado", ServiceName(b.ServiceType), b.ClientName),
				"booking_completed", map[string]string{"booking_id": b.ID}, nil
		}
	case KindLowStock:
		if it := job.Item; it != nil {
			return "⚠️ Stock bajo",
				fmt.Sprintf("%s: %d %s (mínimo %d)", it.Name, it.CurrentStock, it.Unit, it.MinStock),
				"inventory_alert", map[string]string{"item_id": it.ID}, nil
		}
	case KindReviewCreated:
		if r := job.Review; r != nil {
			return "🌟 Nueva reseña",
				fmt.Sprintf("%s dejó %d estrellas", r.ClientName, r.Rating),
				"new_review", map[string]string{"review_id": r.ID}, nil
		}
	case KindChatRoomCreated:
		if room := job.Room; room != nil {
			return "💬 Nuevo chat",
				fmt.Sprintf("%s inició una conversación", room.ClientName),
				"new_chat", map[string]string{"room_id": room.ID}, nil
		}
	}
	return "", "", "", nil, s.unsupported(job)
}

func (s *Service) sendConfirmationEmail(ctx context.Context, b *models.Booking) error {
	html, text, err := confirmationEmail(b)
	if err != nil {
		return err
	}
	msg := Email{To: b.ClientEmail, Subject: confirmationSubject, HTML: html, Text: text}

	invite, err := BookingICS(b, s.settings.EmailFrom, s.now())
	if err != nil {
		// The email still goes out without the invite.
		s.logger.Warn("Could not build calendar invite", zap.String("booking_id", b.ID), zap.Error(err))
	} else {
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    "evento-pablos-pizza.ics",
			ContentType: "text/calendar; charset=UTF-8; method=REQUEST",
			Data:        invite,
		})
	}
	return s.sendEmail(ctx, msg, "confirmation", b.ID)
}

func (s *Service) sendWhatsApp(ctx context.Context, to, message, ntype, bookingID string) error {
	if to == "" || message == "" {
		return utils.NewValidationError("recipient_phone", "recipient and message are required")
	}
	sid, err := s.whatsapp.SendWhatsApp(ctx, to, message)
	id := sid
	if id == "" {
		id = uuid.New().String()
	}
	s.record(ctx, models.NotificationRecord{
		ID:               id,
		Channel:          models.ChannelWhatsApp,
		Recipient:        FormatWhatsAppNumber(to),
		Message:          message,
		NotificationType: ntype,
		BookingID:        bookingID,
	}, err)
	if err != nil {
		return &utils.NotificationError{Channel: string(models.ChannelWhatsApp), Err: err}
	}
	return nil
}

func (s *Service) sendPush(ctx context.Context, title, body, ntype string, data map[string]string, bookingID string) error {
	if data == nil {
		data = map[string]string{}
	}
	data["type"] = ntype
	err := s.push.SendPush(ctx, s.settings.AdminTopic, title, body, data)
	s.record(ctx, models.NotificationRecord{
		ID:               uuid.New().String(),
		Channel:          models.ChannelPush,
		Recipient:        "topic:" + s.settings.AdminTopic,
		Message:          title + ": " + body,
		NotificationType: ntype,
		BookingID:        bookingID,
	}, err)
	if err != nil {
		return &utils.NotificationError{Channel: string(models.ChannelPush), Err: err}
	}
	return nil
}

func (s *Service) sendEmail(ctx context.Context, msg Email, emailType, bookingID string) error {
	err := s.email.SendEmail(ctx, msg)
	s.record(ctx, models.NotificationRecord{
		ID:               uuid.New().String(),
		Channel:          models.ChannelEmail,
		Recipient:        msg.To,
		Message:          msg.Subject,
		NotificationType: emailType,
		BookingID:        bookingID,
	}, err)

	rec := &models.EmailRecord{
		ID:             uuid.New().String(),
		RecipientEmail: msg.To,
		Subject:        msg.Subject,
		BookingID:      bookingID,
		EmailType:      emailType,
		SentAt:         s.now(),
		Status:         models.DeliverySent,
	}
	if err != nil {
		rec.Status = models.DeliveryFailed
		rec.Error = err.Error()
	}
	if recErr := s.records.RecordEmail(ctx, rec); recErr != nil {
		s.logger.Warn("Failed to record email outcome", zap.String("recipient", msg.To), zap.Error(recErr))
	}

	if err != nil {
		return &utils.NotificationError{Channel: string(models.ChannelEmail), Err: err}
	}
	return nil
}

// record persists and counts an attempt. Recording problems are logged only.
func (s *Service) record(ctx context.Context, rec models.NotificationRecord, sendErr error) {
	rec.SentAt = s.now()
	rec.Status = models.DeliverySent
	if sendErr != nil {
		rec.Status = models.DeliveryFailed
		rec.Error = sendErr.Error()
		s.logger.Warn("Notification delivery failed",
			zap.String("channel", string(rec.Channel)),
			zap.String("type", rec.NotificationType),
			zap.String("booking_id", rec.BookingID),
			zap.Error(sendErr))
	} else {
		s.logger.Info("Notification delivered",
			zap.String("channel", string(rec.Channel)),
			zap.String("type", rec.NotificationType),
			zap.String("booking_id", rec.BookingID))
	}
	deliveries.WithLabelValues(string(rec.Channel), rec.NotificationType, rec.Status).Inc()

	if err := s.records.Record(ctx, &rec); err != nil {
		s.logger.Warn("Failed to record notification outcome", zap.String("id", rec.ID), zap.Error(err))
	}
}
