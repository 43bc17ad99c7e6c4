package models

import "time"

type ServiceType string

const (
	ServiceWorkshop   ServiceType = "workshop"    // interactive pizza-making class
	ServicePizzaParty ServiceType = "pizza_party" // catered pizza event
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a client's request for a workshop or pizza party.
type Booking struct {
	ID              string        `json:"id" bson:"id" firestore:"id"`
	ClientName      string        `json:"client_name" bson:"client_name" firestore:"client_name"`
	ClientEmail     string        `json:"client_email" bson:"client_email" firestore:"client_email"`
	ClientPhone     string        `json:"client_phone" bson:"client_phone" firestore:"client_phone"`
	ServiceType     ServiceType   `json:"service_type" bson:"service_type" firestore:"service_type"`
	EventType       string        `json:"event_type,omitempty" bson:"event_type" firestore:"event_type"` // birthday, corporate, school, private
	EventDate       string        `json:"event_date" bson:"event_date" firestore:"event_date"`            // YYYY-MM-DD when parseable
	EventTime       string        `json:"event_time" bson:"event_time" firestore:"event_time"`
	DurationHours   int           `json:"duration_hours" bson:"duration_hours" firestore:"duration_hours"`
	Participants    int           `json:"participants" bson:"participants" firestore:"participants"`
	Location        string        `json:"location" bson:"location" firestore:"location"`
	SpecialRequests string        `json:"special_requests,omitempty" bson:"special_requests" firestore:"special_requests"`
	Status          BookingStatus `json:"status" bson:"status" firestore:"status"`
	EstimatedPrice  float64       `json:"estimated_price" bson:"estimated_price" firestore:"estimated_price"`

	ConfirmedPrice *float64 `json:"confirmed_price,omitempty" bson:"confirmed_price,omitempty" firestore:"confirmed_price,omitempty"`
	ConfirmedDate  string   `json:"confirmed_date,omitempty" bson:"confirmed_date,omitempty" firestore:"confirmed_date,omitempty"`
	ConfirmedTime  string   `json:"confirmed_time,omitempty" bson:"confirmed_time,omitempty" firestore:"confirmed_time,omitempty"`
	EventCost      *float64 `json:"event_cost,omitempty" bson:"event_cost,omitempty" firestore:"event_cost,omitempty"`
	EventProfit    *float64 `json:"event_profit,omitempty" bson:"event_profit,omitempty" firestore:"event_profit,omitempty"`
	Notes          string   `json:"notes,omitempty" bson:"notes,omitempty" firestore:"notes,omitempty"`

	Version   int64      `json:"version" bson:"version" firestore:"version"` // optimistic concurrency counter
	CreatedAt time.Time  `json:"created_at" bson:"created_at" firestore:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" firestore:"updated_at,omitempty"`
}

// BookingRequest is the public intake payload.
type BookingRequest struct {
	ClientName      string      `json:"client_name"`
	ClientEmail     string      `json:"client_email"`
	ClientPhone     string      `json:"client_phone"`
	ServiceType     ServiceType `json:"service_type"`
	EventType       string      `json:"event_type"`
	EventDate       string      `json:"event_date"`
	EventTime       string      `json:"event_time"`
	DurationHours   int         `json:"duration_hours"`
	Participants    *int        `json:"participants"`
	Location        string      `json:"location"`
	SpecialRequests string      `json:"special_requests"`
}

// BookingUpdate carries the only fields an update may touch.
type BookingUpdate struct {
	Status         *BookingStatus `json:"status"`
	Notes          *string        `json:"notes"`
	ConfirmedPrice *float64       `json:"confirmed_price"`
	ConfirmedDate  *string        `json:"confirmed_date"`
	ConfirmedTime  *string        `json:"confirmed_time"`
	EventCost      *float64       `json:"event_cost"`
	EventProfit    *float64       `json:"event_profit"`
	Version        *int64         `json:"version,omitempty"` // when set, must match the stored version
}

// CalendarEntry is the month-view projection of a booking.
type CalendarEntry struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Participants int           `json:"participants"`
	Location     string        `json:"location"`
	Status       BookingStatus `json:"status"`
}
