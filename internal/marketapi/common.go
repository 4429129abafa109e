// Package marketapi exposes the HTTP surface of the wholesale marketplace:
// registration and login, supplier stalls, product catalog, reviews,
// notifications, per-vendor carts, order listings, supplier analytics, and
// demo seeding.
//
// Orders are read-only on this surface: there is no checkout transition from
// cart to order yet.
package marketapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

var registerOnce sync.Once

// RegisterRoutes appends every marketplace route to the webserver route
// tables. Must run before webserver.Init.
func RegisterRoutes() {
	registerOnce.Do(func() {
		registerAuthRoutes()
		registerSupplierRoutes()
		registerProductRoutes()
		registerReviewRoutes()
		registerNotificationRoutes()
		registerCartRoutes()
		registerOrderRoutes()
		registerAnalyticsRoutes()
		registerDemoRoutes()
	})
}

// GetStore returns the persistence handle injected by the server middleware.
func GetStore(c echo.Context) store.Store {
	return webserver.GetApp(c).Store()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func message(c echo.Context, text string) error {
	return c.JSON(http.StatusOK, echo.Map{"message": text})
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	body := echo.Map{"code": code, "message": msg}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

// requireSupplierStall resolves the caller's stall. The boolean reports
// whether the request may proceed; on false a response has been written.
func requireSupplierStall(c echo.Context) (*domain.User, *domain.Supplier, bool) {
	user := webserver.CurrentUser(c)
	if user.UserType != domain.UserTypeSupplier {
		_ = fail(c, http.StatusForbidden, "FORBIDDEN", "Only suppliers can perform this action", nil)
		return nil, nil, false
	}
	supplier, err := GetStore(c).SupplierByUserID(c.Request().Context(), user.ID)
	if err != nil {
		_ = fail(c, http.StatusNotFound, "STALL_NOT_FOUND", "Supplier profile not found", nil)
		return nil, nil, false
	}
	return user, supplier, true
}
