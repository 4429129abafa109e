package domain

import "time"

// Review is a vendor's rating of a supplier. At most one review exists per
// (vendor, supplier) pair, enforced by an existence check before insert.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	VendorID   string    `bson:"vendor_id" json:"vendor_id"`
	SupplierID string    `bson:"supplier_id" json:"supplier_id"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
