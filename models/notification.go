package models

import "time"

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelPush     Channel = "push"
)

const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// NotificationRecord is the persisted outcome of one delivery attempt.
type NotificationRecord struct {
	ID               string    `json:"id" bson:"id" firestore:"id"`
	Channel          Channel   `json:"channel" bson:"channel" firestore:"channel"`
	Recipient        string    `json:"recipient_phone" bson:"recipient" firestore:"recipient"`
	Message          string    `json:"message" bson:"message" firestore:"message"`
	NotificationType string    `json:"notification_type" bson:"notification_type" firestore:"notification_type"`
	Status           string    `json:"status" bson:"status" firestore:"status"`
	Error            string    `json:"error,omitempty" bson:"error,omitempty" firestore:"error,omitempty"`
	BookingID        string    `json:"booking_id,omitempty" bson:"booking_id,omitempty" firestore:"booking_id,omitempty"`
	SentAt           time.Time `json:"sent_at" bson:"sent_at" firestore:"sent_at"`
}

type EmailRecord struct {
	ID             string    `json:"id" bson:"id" firestore:"id"`
	RecipientEmail string    `json:"recipient_email" bson:"recipient_email" firestore:"recipient_email"`
	Subject        string    `json:"subject" bson:"subject" firestore:"subject"`
	BookingID      string    `json:"booking_id,omitempty" bson:"booking_id" firestore:"booking_id"`
	EmailType      string    `json:"email_type" bson:"email_type" firestore:"email_type"`
	SentAt         time.Time `json:"sent_at" bson:"sent_at" firestore:"sent_at"`
	Status         string    `json:"status" bson:"status" firestore:"status"`
	Error          string    `json:"error,omitempty" bson:"error,omitempty" firestore:"error,omitempty"`
}

type SendNotificationRequest struct {
	RecipientPhone   string `json:"recipient_phone"`
	Message          string `json:"message"`
	NotificationType string `json:"notification_type"`
}

type BulkSendRequest struct {
	Message          string `json:"message"`
	NotificationType string `json:"notification_type"`
	RecipientFilter  string `json:"recipient_filter"` // all, recent_clients, active_bookings
}

type BulkSendResult struct {
	TotalRecipients int    `json:"total_recipients"`
	Sent            int    `json:"sent"`
	Failed          int    `json:"failed"`
	Filter          string `json:"filter"`
}

type NotificationStats struct {
	TotalNotifications int            `json:"total_notifications"`
	Sent               int            `json:"sent"`
	Failed             int            `json:"failed"`
	SuccessRate        float64        `json:"success_rate"`
	ByType             map[string]int `json:"by_type"`
	PeriodDays         int            `json:"period_days"`
}
