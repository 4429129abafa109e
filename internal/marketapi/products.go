package marketapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

type productPayload struct {
	Name              string                    `json:"name" validate:"required"`
	Category          string                    `json:"category" validate:"required"`
	PricePerUnit      float64                   `json:"price_per_unit" validate:"required,gt=0"`
	Unit              string                    `json:"unit" validate:"required"`
	QuantityAvailable int                       `json:"quantity_available" validate:"gte=0"`
	BulkDiscountTiers []domain.BulkDiscountTier `json:"bulk_discount_tiers"`
	ImageURL          string                    `json:"image_url"`
	Description       string                    `json:"description"`
}

// productUpdatePayload carries only the fields present in the request body;
// nil pointers leave the stored value untouched.
type productUpdatePayload struct {
	Name              *string                    `json:"name"`
	Category          *string                    `json:"category"`
	PricePerUnit      *float64                   `json:"price_per_unit"`
	Unit              *string                    `json:"unit"`
	QuantityAvailable *int                       `json:"quantity_available"`
	BulkDiscountTiers *[]domain.BulkDiscountTier `json:"bulk_discount_tiers"`
	ImageURL          *string                    `json:"image_url"`
	Description       *string                    `json:"description"`
}

func registerProductRoutes() {
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiGET("/products/my-products", listMyProducts)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func createProduct(c echo.Context) error {
	_, supplier, proceed := requireSupplierStall(c)
	if !proceed {
		return nil
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if payload.BulkDiscountTiers == nil {
		payload.BulkDiscountTiers = []domain.BulkDiscountTier{}
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:                uuid.NewString(),
		SupplierID:        supplier.ID,
		Name:              payload.Name,
		Category:          payload.Category,
		PricePerUnit:      payload.PricePerUnit,
		Unit:              payload.Unit,
		QuantityAvailable: payload.QuantityAvailable,
		BulkDiscountTiers: payload.BulkDiscountTiers,
		ImageURL:          payload.ImageURL,
		Description:       payload.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := GetStore(c).CreateProduct(c.Request().Context(), product); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create product", nil)
	}

	zap.L().Info("product created",
		zap.String("product_id", product.ID), zap.String("supplier_id", supplier.ID))
	return ok(c, product)
}

func listMyProducts(c echo.Context) error {
	_, supplier, proceed := requireSupplierStall(c)
	if !proceed {
		return nil
	}
	products, err := GetStore(c).ListProducts(c.Request().Context(), supplier.ID, store.ProductFilter{})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

// updateProduct applies a partial update. Ownership is part of the lookup:
// a product belonging to another stall reads as missing.
func updateProduct(c echo.Context) error {
	_, supplier, proceed := requireSupplierStall(c)
	if !proceed {
		return nil
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	product, err := s.ProductOwnedBy(ctx, c.Param("id"), supplier.ID)
	if err != nil {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}

	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if payload.Name != nil {
		product.Name = *payload.Name
	}
	if payload.Category != nil {
		product.Category = *payload.Category
	}
	if payload.PricePerUnit != nil {
		product.PricePerUnit = *payload.PricePerUnit
	}
	if payload.Unit != nil {
		product.Unit = *payload.Unit
	}
	if payload.QuantityAvailable != nil {
		product.QuantityAvailable = *payload.QuantityAvailable
	}
	if payload.BulkDiscountTiers != nil {
		product.BulkDiscountTiers = *payload.BulkDiscountTiers
	}
	if payload.ImageURL != nil {
		product.ImageURL = *payload.ImageURL
	}
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update product", nil)
	}
	return ok(c, product)
}

func deleteProduct(c echo.Context) error {
	_, supplier, proceed := requireSupplierStall(c)
	if !proceed {
		return nil
	}
	err := GetStore(c).DeleteProduct(c.Request().Context(), c.Param("id"), supplier.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete product", nil)
	}
	return message(c, "Product deleted successfully")
}
