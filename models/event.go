package models

import "time"

const (
	EventSourceManual      = "manual"
	EventSourceAutoBooking = "auto_booking"
)

type Expense struct {
	Description string  `json:"description" bson:"description" firestore:"description"`
	Amount      float64 `json:"amount" bson:"amount" firestore:"amount"`
}

// Event records an engagement that actually took place.
type Event struct {
	ID           string    `json:"id" bson:"id" firestore:"id"`
	BookingID    string    `json:"booking_id,omitempty" bson:"booking_id" firestore:"booking_id"` // weak reference
	Title        string    `json:"title" bson:"title" firestore:"title"`
	Description  string    `json:"description,omitempty" bson:"description" firestore:"description"`
	ServiceType  string    `json:"service_type,omitempty" bson:"service_type" firestore:"service_type"`
	ClientName   string    `json:"client_name,omitempty" bson:"client_name" firestore:"client_name"`
	EventDate    string    `json:"event_date" bson:"event_date" firestore:"event_date"`
	Participants int       `json:"participants" bson:"participants" firestore:"participants"`
	FinalPrice   float64   `json:"final_price" bson:"final_price" firestore:"final_price"`
	EventCost    float64   `json:"event_cost" bson:"event_cost" firestore:"event_cost"`
	Profit       float64   `json:"profit" bson:"profit" firestore:"profit"`
	Expenses     []Expense `json:"expenses,omitempty" bson:"expenses,omitempty" firestore:"expenses,omitempty"`
	Notes        string    `json:"notes,omitempty" bson:"notes" firestore:"notes"`
	Status       string    `json:"status" bson:"status" firestore:"status"`
	Source       string    `json:"source" bson:"source" firestore:"source"`
	Photos       []string  `json:"photos" bson:"photos" firestore:"photos"`
	IsPublished  bool      `json:"is_published" bson:"is_published" firestore:"is_published"`
	IsFeatured   bool      `json:"is_featured" bson:"is_featured" firestore:"is_featured"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at" firestore:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" firestore:"updated_at,omitempty"`
}

type EventRequest struct {
	BookingID    string    `json:"booking_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ServiceType  string    `json:"service_type"`
	ClientName   string    `json:"client_name"`
	EventDate    string    `json:"event_date"`
	Participants int       `json:"participants"`
	FinalPrice   float64   `json:"final_price"`
	EventCost    float64   `json:"event_cost"`
	Profit       *float64  `json:"profit"`
	Expenses     []Expense `json:"expenses"`
	Notes        string    `json:"notes"`
	Photos       []string  `json:"photos"`
	IsPublished  bool      `json:"is_published"`
	IsFeatured   bool      `json:"is_featured"`
}

type EventUpdate struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Notes        *string   `json:"notes"`
	Status       *string   `json:"status"`
	EventDate    *string   `json:"event_date"`
	Participants *int      `json:"participants"`
	Photos       *[]string `json:"photos"`
	IsPublished  *bool     `json:"is_published"`
	IsFeatured   *bool     `json:"is_featured"`
}

// EventFinancials is the accounting payload for PUT /events/{id}/financials.
type EventFinancials struct {
	Income        float64   `json:"income"`
	Expenses      []Expense `json:"expenses"`
	TotalExpenses float64   `json:"total_expenses"`
	Profit        float64   `json:"profit"`
}
