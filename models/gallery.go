package models

import "time"

type GalleryImage struct {
	ID          string    `json:"id" bson:"id" firestore:"id"`
	URL         string    `json:"url" bson:"url" firestore:"url"`
	BlobPath    string    `json:"blob_path" bson:"blob_path" firestore:"blob_path"`
	EventID     string    `json:"event_id,omitempty" bson:"event_id" firestore:"event_id"`
	Title       string    `json:"title,omitempty" bson:"title" firestore:"title"`
	Description string    `json:"description,omitempty" bson:"description" firestore:"description"`
	IsFeatured  bool      `json:"is_featured" bson:"is_featured" firestore:"is_featured"`
	Width       int       `json:"width" bson:"width" firestore:"width"`
	Height      int       `json:"height" bson:"height" firestore:"height"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at" firestore:"uploaded_at"`
}

type GalleryImageUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsFeatured  *bool   `json:"is_featured"`
}
