package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
)

type demoProduct struct {
	name     string
	category string
	price    float64
	qty      int
	desc     string
}

// SeedDemoData loads the showcase stalls and catalog. It is idempotent: if
// any supplier document exists the call reports created=false and touches
// nothing.
func SeedDemoData(ctx context.Context, s store.Store) (bool, error) {
	existing, err := s.CountSuppliers(ctx)
	if err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	suppliers := []domain.Supplier{
		{
			ID:             uuid.NewString(),
			UserID:         "demo_user_1",
			StallName:      "Fresh Valley Farms",
			Description:    "Premium fresh vegetables and herbs directly from our organic farm",
			ImageURL:       "https://images.unsplash.com/photo-1532079563951-0c8a7dacddb3",
			ContactPhone:   "+1-555-0123",
			Location:       "Central Market District",
			Rating:         4.8,
			DeliveryRating: 4.5,
			TotalReviews:   45,
			CreatedAt:      now,
		},
		{
			ID:             uuid.NewString(),
			UserID:         "demo_user_2",
			StallName:      "Tropical Fruits Paradise",
			Description:    "Exotic fruits and seasonal produce from local and international sources",
			ImageURL:       "https://images.unsplash.com/photo-1488459716781-31db52582fe9",
			ContactPhone:   "+1-555-0456",
			Location:       "East Market Zone",
			Rating:         4.6,
			DeliveryRating: 4.3,
			TotalReviews:   32,
			CreatedAt:      now,
		},
		{
			ID:             uuid.NewString(),
			UserID:         "demo_user_3",
			StallName:      "Spice & Herb Corner",
			Description:    "Authentic spices, dried herbs, and specialty seasonings for street food vendors",
			ImageURL:       "https://images.unsplash.com/photo-1550989460-0adf9ea622e2",
			ContactPhone:   "+1-555-0789",
			Location:       "Spice Alley",
			Rating:         4.9,
			DeliveryRating: 4.7,
			TotalReviews:   68,
			CreatedAt:      now,
		},
	}
	if err := s.InsertSuppliers(ctx, suppliers); err != nil {
		return false, err
	}

	catalog := map[string][]demoProduct{
		suppliers[0].ID: {
			{"Organic Tomatoes", "Vegetables", 3.50, 200, "Fresh vine-ripened organic tomatoes"},
			{"Fresh Lettuce", "Vegetables", 2.25, 150, "Crisp romaine lettuce heads"},
			{"Bell Peppers Mix", "Vegetables", 4.00, 180, "Colorful bell pepper variety pack"},
			{"Fresh Basil", "Herbs", 6.50, 80, "Aromatic fresh basil leaves"},
			{"Organic Spinach", "Vegetables", 3.75, 120, "Baby spinach leaves"},
		},
		suppliers[1].ID: {
			{"Premium Mangoes", "Fruits", 5.00, 100, "Sweet tropical mangoes"},
			{"Fresh Pineapples", "Fruits", 4.50, 75, "Juicy ripe pineapples"},
			{"Dragon Fruit", "Fruits", 8.00, 60, "Exotic dragon fruit"},
			{"Coconuts", "Fruits", 3.00, 90, "Fresh coconuts"},
			{"Passion Fruit", "Fruits", 12.00, 40, "Aromatic passion fruit"},
		},
		suppliers[2].ID: {
			{"Cumin Powder", "Spices", 15.00, 50, "Ground cumin spice"},
			{"Turmeric Powder", "Spices", 12.00, 60, "Pure turmeric powder"},
			{"Dried Oregano", "Herbs", 18.00, 45, "Mediterranean oregano"},
			{"Chili Powder", "Spices", 16.50, 55, "Spicy chili powder blend"},
			{"Bay Leaves", "Herbs", 20.00, 30, "Aromatic bay leaves"},
		},
	}

	tiers := []domain.BulkDiscountTier{
		{MinQty: 10, Discount: 0.05, Label: "10+ kg: 5% off"},
		{MinQty: 25, Discount: 0.10, Label: "25+ kg: 10% off"},
		{MinQty: 50, Discount: 0.15, Label: "50+ kg: 15% off"},
		{MinQty: 100, Discount: 0.20, Label: "100+ kg: 20% off"},
	}

	products := []domain.Product{}
	for supplierID, items := range catalog {
		for _, item := range items {
			products = append(products, domain.Product{
				ID:                uuid.NewString(),
				SupplierID:        supplierID,
				Name:              item.name,
				Category:          item.category,
				PricePerUnit:      item.price,
				Unit:              "kg",
				QuantityAvailable: item.qty,
				BulkDiscountTiers: tiers,
				ImageURL:          suppliers[0].ImageURL,
				Description:       item.desc,
				CreatedAt:         now,
				UpdatedAt:         now,
			})
		}
	}
	if err := s.InsertProducts(ctx, products); err != nil {
		return false, err
	}

	zap.S().Infof("seeded demo data: %d suppliers, %d products", len(suppliers), len(products))
	return true, nil
}
