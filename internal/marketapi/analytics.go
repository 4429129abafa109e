package marketapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

// Placeholder analytics figures. Revenue should aggregate over order line
// items once checkout exists; until then the dashboard multiplies order
// count by a flat per-order amount and labels top products with a fixed
// sales figure.
const (
	mockRevenuePerOrder = 150.0
	mockTopProductSales = 25
	topProductCount     = 3
)

type topProduct struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

type dashboardResponse struct {
	TotalProducts int64        `json:"total_products"`
	TotalOrders   int64        `json:"total_orders"`
	TotalRevenue  float64      `json:"total_revenue"`
	TopProducts   []topProduct `json:"top_products"`
	Rating        float64      `json:"rating"`
	TotalReviews  int          `json:"total_reviews"`
}

func registerAnalyticsRoutes() {
	webserver.ApiGET("/analytics/dashboard", getDashboard)
}

func getDashboard(c echo.Context) error {
	_, supplier, proceed := requireSupplierStall(c)
	if !proceed {
		return nil
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	productCount, err := s.CountProducts(ctx, supplier.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to count products", nil)
	}
	orderCount, err := s.CountOrdersBySupplier(ctx, supplier.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to count orders", nil)
	}
	products, err := s.ListProducts(ctx, supplier.ID, store.ProductFilter{})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query products", nil)
	}

	top := []topProduct{}
	for i, p := range products {
		if i == topProductCount {
			break
		}
		top = append(top, topProduct{Name: p.Name, Sales: mockTopProductSales})
	}

	return ok(c, dashboardResponse{
		TotalProducts: productCount,
		TotalOrders:   orderCount,
		TotalRevenue:  float64(orderCount) * mockRevenuePerOrder,
		TopProducts:   top,
		Rating:        supplier.Rating,
		TotalReviews:  supplier.TotalReviews,
	})
}
