package domain

import "time"

// Default ratings assigned to a freshly created stall, before any review
// has been recorded against it.
const (
	DefaultRating         = 4.5
	DefaultDeliveryRating = 4.2
)

// Supplier is a wholesale seller's stall profile. Exactly one stall exists
// per supplier-type user, enforced by a lookup before insert.
type Supplier struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	StallName      string    `bson:"stall_name" json:"stall_name"`
	Description    string    `bson:"description" json:"description"`
	ImageURL       string    `bson:"image_url" json:"image_url"`
	ContactPhone   string    `bson:"contact_phone" json:"contact_phone"`
	Location       string    `bson:"location" json:"location"`
	Rating         float64   `bson:"rating" json:"rating"`
	DeliveryRating float64   `bson:"delivery_rating" json:"delivery_rating"`
	TotalReviews   int       `bson:"total_reviews" json:"total_reviews"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
