package domain

// Collection names, one per top-level entity.
const (
	CollUsers         = "users"
	CollSuppliers     = "suppliers"
	CollProducts      = "products"
	CollReviews       = "reviews"
	CollNotifications = "notifications"
	CollCarts         = "carts"
	CollOrders        = "orders"
)
