package store

import (
	"context"

	"github.com/micromarket/backend/internal/domain"
)

// ListCap bounds every unpaginated listing query.
const ListCap = 100

// NotificationCap bounds the notification feed.
const NotificationCap = 50

// SupplierFilter narrows ListSuppliers. Zero values mean "no constraint",
// except IDs: a non-nil empty slice matches nothing (the category filter
// resolved to an empty supplier set).
type SupplierFilter struct {
	IDs       []string
	MinRating float64
	Location  string
}

// ProductFilter narrows ListProducts. Zero values mean "no constraint"; all
// bounds are inclusive.
type ProductFilter struct {
	Category    string
	MinPrice    float64
	MaxPrice    float64
	MinQuantity int
}

type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
}

type SupplierStore interface {
	CreateSupplier(ctx context.Context, supplier *domain.Supplier) error
	SupplierByID(ctx context.Context, id string) (*domain.Supplier, error)
	SupplierByUserID(ctx context.Context, userID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, filter SupplierFilter) ([]domain.Supplier, error)
	// SetSupplierRating overwrites the denormalized rating aggregate after a
	// review recomputation.
	SetSupplierRating(ctx context.Context, id string, rating float64, totalReviews int) error
	CountSuppliers(ctx context.Context) (int64, error)
	InsertSuppliers(ctx context.Context, suppliers []domain.Supplier) error
}

type ProductStore interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ProductByID(ctx context.Context, id string) (*domain.Product, error)
	// ProductOwnedBy scopes the lookup to one supplier; a product owned by
	// anyone else reads as missing.
	ProductOwnedBy(ctx context.Context, id, supplierID string) (*domain.Product, error)
	ListProducts(ctx context.Context, supplierID string, filter ProductFilter) ([]domain.Product, error)
	// SupplierIDsByCategory resolves the distinct suppliers having at least
	// one product in the category.
	SupplierIDsByCategory(ctx context.Context, category string) ([]string, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id, supplierID string) error
	CountProducts(ctx context.Context, supplierID string) (int64, error)
	InsertProducts(ctx context.Context, products []domain.Product) error
}

type ReviewStore interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	HasReview(ctx context.Context, vendorID, supplierID string) (bool, error)
	ListReviews(ctx context.Context, supplierID string) ([]domain.Review, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *domain.Notification) error
	// ListNotifications returns the user's feed newest first, capped at
	// NotificationCap.
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
}

type CartStore interface {
	CartByVendor(ctx context.Context, vendorID string) (*domain.Cart, error)
	InsertCart(ctx context.Context, cart *domain.Cart) error
	// ReplaceCart overwrites the vendor's whole cart document. There is no
	// version check: concurrent replaces race and the last write wins.
	ReplaceCart(ctx context.Context, cart *domain.Cart) error
}

type OrderStore interface {
	InsertOrder(ctx context.Context, order *domain.Order) error
	ListOrdersByVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	ListOrdersBySupplier(ctx context.Context, supplierID string) ([]domain.Order, error)
	CountOrdersBySupplier(ctx context.Context, supplierID string) (int64, error)
}

// Store is the combined persistence surface handed to the web layer.
type Store interface {
	UserStore
	SupplierStore
	ProductStore
	ReviewStore
	NotificationStore
	CartStore
	OrderStore
}
