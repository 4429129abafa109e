package domain

import "time"

// Notification types understood by the front end.
const (
	NotificationPriceDrop    = "price_drop"
	NotificationBulkDiscount = "bulk_discount"
	NotificationNewProduct   = "new_product"
)

// Notification is a per-user message. The only mutation in scope flips
// is_read.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	IsRead    bool      `bson:"is_read" json:"is_read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
