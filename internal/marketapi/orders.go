package marketapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

func registerOrderRoutes() {
	webserver.ApiGET("/orders/my-orders", listMyOrders)
}

// listMyOrders is role-dependent: vendors match on vendor_id, suppliers on
// their stall's id. A supplier without a stall has no orders.
func listMyOrders(c echo.Context) error {
	user := webserver.CurrentUser(c)
	ctx := c.Request().Context()
	s := GetStore(c)

	switch user.UserType {
	case domain.UserTypeVendor:
		orders, err := s.ListOrdersByVendor(ctx, user.ID)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query orders", nil)
		}
		return ok(c, orders)
	case domain.UserTypeSupplier:
		supplier, err := s.SupplierByUserID(ctx, user.ID)
		if errors.Is(err, store.ErrNotFound) {
			return ok(c, []domain.Order{})
		}
		if err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query supplier", nil)
		}
		orders, err := s.ListOrdersBySupplier(ctx, supplier.ID)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query orders", nil)
		}
		return ok(c, orders)
	}
	return fail(c, http.StatusForbidden, "FORBIDDEN", "Unknown user type", nil)
}
