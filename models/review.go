package models

import "time"

type Review struct {
	ID          string     `json:"id" bson:"id" firestore:"id"`
	ClientName  string     `json:"client_name" bson:"client_name" firestore:"client_name"`
	ClientEmail string     `json:"client_email" bson:"client_email" firestore:"client_email"`
	EventID     string     `json:"event_id,omitempty" bson:"event_id" firestore:"event_id"`
	Rating      int        `json:"rating" bson:"rating" firestore:"rating"` // 1..5
	Comment     string     `json:"comment" bson:"comment" firestore:"comment"`
	IsApproved  bool       `json:"is_approved" bson:"is_approved" firestore:"is_approved"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" firestore:"created_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty" bson:"approved_at,omitempty" firestore:"approved_at,omitempty"`
}

type ReviewRequest struct {
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	EventID     string `json:"event_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

type ReviewStats struct {
	TotalReviews       int         `json:"total_reviews"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
