package marketapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

type supplierPayload struct {
	StallName    string `json:"stall_name" validate:"required"`
	Description  string `json:"description" validate:"required"`
	ImageURL     string `json:"image_url" validate:"required"`
	ContactPhone string `json:"contact_phone" validate:"required"`
	Location     string `json:"location" validate:"required"`
}

func registerSupplierRoutes() {
	webserver.PubGET("/suppliers", listSuppliers)
	webserver.ApiPOST("/suppliers", createSupplier)
	webserver.ApiGET("/suppliers/my-stall", getMyStall)
	webserver.PubGET("/suppliers/:id/products", listSupplierProducts)
	webserver.PubGET("/suppliers/:id/reviews", listSupplierReviews)
}

// listSuppliers applies three optional filters. A category filter resolves
// to the set of stalls carrying at least one product in that category before
// the store query runs.
func listSuppliers(c echo.Context) error {
	ctx := c.Request().Context()
	s := GetStore(c)

	filter := store.SupplierFilter{
		MinRating: cast.ToFloat64(c.QueryParam("min_rating")),
		Location:  strings.TrimSpace(c.QueryParam("location")),
	}
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		ids, err := s.SupplierIDsByCategory(ctx, category)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query products", nil)
		}
		if ids == nil {
			ids = []string{}
		}
		filter.IDs = ids
	}

	suppliers, err := s.ListSuppliers(ctx, filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query suppliers", nil)
	}
	return ok(c, suppliers)
}

func createSupplier(c echo.Context) error {
	user := webserver.CurrentUser(c)
	if user.UserType != domain.UserTypeSupplier {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Only suppliers can create stalls", nil)
	}

	var payload supplierPayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	if _, err := s.SupplierByUserID(ctx, user.ID); err == nil {
		return fail(c, http.StatusBadRequest, "STALL_EXISTS", "Supplier profile already exists", nil)
	} else if !errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query supplier", nil)
	}

	supplier := &domain.Supplier{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		StallName:      payload.StallName,
		Description:    payload.Description,
		ImageURL:       payload.ImageURL,
		ContactPhone:   payload.ContactPhone,
		Location:       payload.Location,
		Rating:         domain.DefaultRating,
		DeliveryRating: domain.DefaultDeliveryRating,
		TotalReviews:   0,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.CreateSupplier(ctx, supplier); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create supplier", nil)
	}

	zap.L().Info("stall created",
		zap.String("supplier_id", supplier.ID), zap.String("stall_name", supplier.StallName))
	return ok(c, supplier)
}

func getMyStall(c echo.Context) error {
	_, supplier, proceed := requireSupplierStall(c)
	if !proceed {
		return nil
	}
	return ok(c, supplier)
}

func listSupplierProducts(c echo.Context) error {
	filter := store.ProductFilter{
		Category:    strings.TrimSpace(c.QueryParam("category")),
		MinPrice:    cast.ToFloat64(c.QueryParam("min_price")),
		MaxPrice:    cast.ToFloat64(c.QueryParam("max_price")),
		MinQuantity: cast.ToInt(c.QueryParam("min_quantity")),
	}
	products, err := GetStore(c).ListProducts(c.Request().Context(), c.Param("id"), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func listSupplierReviews(c echo.Context) error {
	reviews, err := GetStore(c).ListReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query reviews", nil)
	}
	return ok(c, reviews)
}
