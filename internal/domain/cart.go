package domain

import "time"

// CartItem is one line in a vendor's cart. Name is denormalized and only
// populated at read time from the current product document.
type CartItem struct {
	ProductID    string  `bson:"product_id" json:"product_id"`
	SupplierID   string  `bson:"supplier_id" json:"supplier_id"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	PricePerUnit float64 `bson:"price_per_unit" json:"price_per_unit"`
	Name         string  `bson:"name,omitempty" json:"name,omitempty"`
}

// Cart is the singleton per-vendor shopping cart. TotalAmount is derived
// state: every mutation recomputes it from the surviving items, it is never
// adjusted independently.
type Cart struct {
	ID          string     `bson:"id" json:"id"`
	VendorID    string     `bson:"vendor_id" json:"vendor_id"`
	Items       []CartItem `bson:"items" json:"items"`
	TotalAmount float64    `bson:"total_amount" json:"total_amount"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// Add merges the item into the cart. An existing line for the same product
// gets its quantity incremented and keeps its first-seen price; otherwise a
// new line is appended.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.touch()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.touch()
}

// SetQuantity replaces the quantity of the line for productID. A quantity of
// zero or less removes the line. Returns false when no such line exists.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		c.touch()
		return true
	}
	return false
}

// Remove drops the line for productID. Returns false when no such line
// exists.
func (c *Cart) Remove(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

func (c *Cart) touch() {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.PricePerUnit
	}
	c.TotalAmount = total
	c.UpdatedAt = time.Now().UTC()
}
