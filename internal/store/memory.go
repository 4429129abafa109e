package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/micromarket/backend/internal/domain"
)

// Memory is a map-and-slice implementation of Store. It backs the handler
// tests and the "memory" database type for running without a mongod. All
// methods copy documents in and out so callers never share state with the
// store.
type Memory struct {
	mu            sync.RWMutex
	users         []domain.User
	suppliers     []domain.Supplier
	products      []domain.Product
	reviews       []domain.Review
	notifications []domain.Notification
	carts         []domain.Cart
	orders        []domain.Order
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

// --- users ---

func (m *Memory) CreateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// --- suppliers ---

func (m *Memory) CreateSupplier(_ context.Context, supplier *domain.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers = append(m.suppliers, *supplier)
	return nil
}

func (m *Memory) SupplierByID(_ context.Context, id string) (*domain.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.suppliers {
		if m.suppliers[i].ID == id {
			s := m.suppliers[i]
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SupplierByUserID(_ context.Context, userID string) (*domain.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.suppliers {
		if m.suppliers[i].UserID == userID {
			s := m.suppliers[i]
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListSuppliers(_ context.Context, filter SupplierFilter) ([]domain.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idSet := map[string]bool{}
	for _, id := range filter.IDs {
		idSet[id] = true
	}
	out := []domain.Supplier{}
	for _, s := range m.suppliers {
		if filter.IDs != nil && !idSet[s.ID] {
			continue
		}
		if filter.MinRating > 0 && s.Rating < filter.MinRating {
			continue
		}
		if filter.Location != "" &&
			!strings.Contains(strings.ToLower(s.Location), strings.ToLower(filter.Location)) {
			continue
		}
		out = append(out, s)
		if len(out) == ListCap {
			break
		}
	}
	return out, nil
}

func (m *Memory) SetSupplierRating(_ context.Context, id string, rating float64, totalReviews int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.suppliers {
		if m.suppliers[i].ID == id {
			m.suppliers[i].Rating = rating
			m.suppliers[i].TotalReviews = totalReviews
			return nil
		}
	}
	return nil
}

func (m *Memory) CountSuppliers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.suppliers)), nil
}

func (m *Memory) InsertSuppliers(_ context.Context, suppliers []domain.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers = append(m.suppliers, suppliers...)
	return nil
}

// --- products ---

func (m *Memory) CreateProduct(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, *product)
	return nil
}

func (m *Memory) ProductByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ProductOwnedBy(_ context.Context, id, supplierID string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.products {
		if m.products[i].ID == id && m.products[i].SupplierID == supplierID {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListProducts(_ context.Context, supplierID string, filter ProductFilter) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Product{}
	for _, p := range m.products {
		if supplierID != "" && p.SupplierID != supplierID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice > 0 && p.PricePerUnit < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.PricePerUnit > filter.MaxPrice {
			continue
		}
		if filter.MinQuantity > 0 && p.QuantityAvailable < filter.MinQuantity {
			continue
		}
		out = append(out, p)
		if len(out) == ListCap {
			break
		}
	}
	return out, nil
}

func (m *Memory) SupplierIDsByCategory(_ context.Context, category string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]bool{}
	ids := []string{}
	for _, p := range m.products {
		if p.Category == category && !seen[p.SupplierID] {
			seen[p.SupplierID] = true
			ids = append(ids, p.SupplierID)
		}
	}
	return ids, nil
}

func (m *Memory) UpdateProduct(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == product.ID {
			m.products[i] = *product
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteProduct(_ context.Context, id, supplierID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id && m.products[i].SupplierID == supplierID {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) CountProducts(_ context.Context, supplierID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, p := range m.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (m *Memory) InsertProducts(_ context.Context, products []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, products...)
	return nil
}

// --- reviews ---

func (m *Memory) CreateReview(_ context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *Memory) HasReview(_ context.Context, vendorID, supplierID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reviews {
		if r.VendorID == vendorID && r.SupplierID == supplierID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ListReviews(_ context.Context, supplierID string) ([]domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Review{}
	for _, r := range m.reviews {
		if r.SupplierID == supplierID {
			out = append(out, r)
			if len(out) == ListCap {
				break
			}
		}
	}
	return out, nil
}

// --- notifications ---

func (m *Memory) CreateNotification(_ context.Context, notification *domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *Memory) ListNotifications(_ context.Context, userID string) ([]domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Notification{}
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > NotificationCap {
		out = out[:NotificationCap]
	}
	return out, nil
}

func (m *Memory) MarkNotificationRead(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

// --- carts ---

func (m *Memory) CartByVendor(_ context.Context, vendorID string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.carts {
		if m.carts[i].VendorID == vendorID {
			return copyCart(&m.carts[i]), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) InsertCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts = append(m.carts, *copyCart(cart))
	return nil
}

func (m *Memory) ReplaceCart(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.carts {
		if m.carts[i].VendorID == cart.VendorID {
			m.carts[i] = *copyCart(cart)
			return nil
		}
	}
	return ErrNotFound
}

func copyCart(cart *domain.Cart) *domain.Cart {
	dup := *cart
	dup.Items = make([]domain.CartItem, len(cart.Items))
	copy(dup.Items, cart.Items)
	return &dup
}

// --- orders ---

func (m *Memory) InsertOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *order)
	return nil
}

func (m *Memory) ListOrdersByVendor(_ context.Context, vendorID string) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.VendorID == vendorID {
			out = append(out, o)
			if len(out) == ListCap {
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) ListOrdersBySupplier(_ context.Context, supplierID string) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.SupplierID == supplierID {
			out = append(out, o)
			if len(out) == ListCap {
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) CountOrdersBySupplier(_ context.Context, supplierID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, o := range m.orders {
		if o.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}
