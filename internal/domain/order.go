package domain

import "time"

// Order statuses. No operation transitions them yet; orders are read-only on
// this surface.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order is an immutable snapshot of purchased cart lines.
type Order struct {
	ID          string     `bson:"id" json:"id"`
	VendorID    string     `bson:"vendor_id" json:"vendor_id"`
	SupplierID  string     `bson:"supplier_id" json:"supplier_id"`
	Items       []CartItem `bson:"items" json:"items"`
	TotalAmount float64    `bson:"total_amount" json:"total_amount"`
	Status      string     `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}
