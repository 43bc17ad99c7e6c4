package models

import "time"

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `json:"id" bson:"id" firestore:"id"`
	Name      string    `json:"name" bson:"name" firestore:"name"`
	Email     string    `json:"email" bson:"email" firestore:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone" firestore:"phone"`
	Message   string    `json:"message" bson:"message" firestore:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" firestore:"created_at"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
