package notification

import "pizzeria/models"

// Kind names the business event a notification job reports.
type Kind string

const (
	KindBookingCreated   Kind = "booking_created"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCompleted Kind = "booking_completed"
	KindBookingReminder  Kind = "booking_reminder"
	KindReviewRequest    Kind = "event_review_request"
	KindLowStock         Kind = "inventory_low_stock"
	KindReviewCreated    Kind = "review_created"
	KindContactReceived  Kind = "contact_received"
	KindChatRoomCreated  Kind = "chat_room_created"
	KindDirectWhatsApp   Kind = "whatsapp_direct"
)

// Target is a single (audience, channel) pair a job is delivered to.
type Target string

const (
	TargetClientEmail     Target = "client_email"
	TargetClientWhatsApp  Target = "client_whatsapp"
	TargetAdminWhatsApp   Target = "admin_whatsapp"
	TargetPartnerWhatsApp Target = "partner_whatsapp"
	TargetAdminPush       Target = "admin_push"
	TargetAdminEmail      Target = "admin_email"
	TargetDirect          Target = "direct_whatsapp"
)

var kindTargets = map[Kind][]Target{
	KindBookingCreated:   {TargetClientWhatsApp, TargetAdminWhatsApp, TargetAdminPush},
	KindBookingConfirmed: {TargetClientEmail, TargetClientWhatsApp, TargetPartnerWhatsApp},
	KindBookingCompleted: {TargetAdminPush},
	KindBookingReminder:  {TargetClientWhatsApp},
	KindReviewRequest:    {TargetClientWhatsApp},
	KindLowStock:         {TargetAdminWhatsApp, TargetAdminPush},
	KindReviewCreated:    {TargetAdminPush},
	KindContactReceived:  {TargetAdminEmail},
	KindChatRoomCreated:  {TargetAdminPush},
	KindDirectWhatsApp:   {TargetDirect},
}

// TargetsFor lists the deliveries a job kind fans out to.
func TargetsFor(kind Kind) []Target {
	return kindTargets[kind]
}

// Job is the serializable unit of notification work. Only the payload fields its Kind needs are set.
// An empty Target means every target of the Kind.
type Job struct {
	Kind   Kind   `json:"kind"`
	Target Target `json:"target,omitempty"`

	Booking *models.Booking       `json:"booking,omitempty"`
	Event   *models.Event         `json:"event,omitempty"`
	Item    *models.InventoryItem `json:"item,omitempty"`
	Review  *models.Review        `json:"review,omitempty"`
	Contact *models.Contact       `json:"contact,omitempty"`
	Room    *models.ChatRoom      `json:"room,omitempty"`

	Recipient        string `json:"recipient,omitempty"`
	Message          string `json:"message,omitempty"`
	NotificationType string `json:"notification_type,omitempty"`
}

// Split returns one job per target so that each delivery succeeds, fails and retries on its own.
func (j Job) Split() []Job {
	if j.Target != "" {
		return []Job{j}
	}
	targets := TargetsFor(j.Kind)
	out := make([]Job, 0, len(targets))
	for _, t := range targets {
		part := j
		part.Target = t
		out = append(out, part)
	}
	return out
}

func (j Job) bookingID() string {
	switch {
	case j.Booking != nil:
		return j.Booking.ID
	case j.Event != nil:
		return j.Event.BookingID
	}
	return ""
}
