package domain

import "time"

// BulkDiscountTier is a threshold quantity with its price discount, e.g.
// {min_qty: 25, discount: 0.10, label: "25+ kg: 10% off"}.
type BulkDiscountTier struct {
	MinQty   int     `bson:"min_qty" json:"min_qty"`
	Discount float64 `bson:"discount" json:"discount"`
	Label    string  `bson:"label" json:"label"`
}

// Product is a wholesale listing owned by exactly one supplier stall and
// mutated only through that supplier's identity.
type Product struct {
	ID                string             `bson:"id" json:"id"`
	SupplierID        string             `bson:"supplier_id" json:"supplier_id"`
	Name              string             `bson:"name" json:"name"`
	Category          string             `bson:"category" json:"category"`
	PricePerUnit      float64            `bson:"price_per_unit" json:"price_per_unit"`
	Unit              string             `bson:"unit" json:"unit"`
	QuantityAvailable int                `bson:"quantity_available" json:"quantity_available"`
	BulkDiscountTiers []BulkDiscountTier `bson:"bulk_discount_tiers" json:"bulk_discount_tiers"`
	ImageURL          string             `bson:"image_url" json:"image_url"`
	Description       string             `bson:"description" json:"description"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}
