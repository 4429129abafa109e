package marketapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

type cartItemPayload struct {
	ProductID    string  `json:"product_id" validate:"required"`
	SupplierID   string  `json:"supplier_id"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/add", addCartItem)
	webserver.ApiPUT("/cart/update/:product_id", updateCartItem)
	webserver.ApiDELETE("/cart/remove/:product_id", removeCartItem)
}

// requireVendor gates cart routes. On false a response has been written.
func requireVendor(c echo.Context) (*domain.User, bool) {
	user := webserver.CurrentUser(c)
	if user.UserType != domain.UserTypeVendor {
		_ = fail(c, http.StatusForbidden, "FORBIDDEN", "Only vendors can access the cart", nil)
		return nil, false
	}
	return user, true
}

// getCart lazily creates an empty cart on first access, then overlays the
// current product name onto each line. A line whose product has since been
// deleted keeps whatever name was stored.
func getCart(c echo.Context) error {
	user, proceed := requireVendor(c)
	if !proceed {
		return nil
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	cart, err := s.CartByVendor(ctx, user.ID)
	if errors.Is(err, store.ErrNotFound) {
		cart = emptyCart(user.ID)
		if err := s.InsertCart(ctx, cart); err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create cart", nil)
		}
		return ok(c, cart)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query cart", nil)
	}

	for i := range cart.Items {
		if product, err := s.ProductByID(ctx, cart.Items[i].ProductID); err == nil {
			cart.Items[i].Name = product.Name
		}
	}
	return ok(c, cart)
}

func addCartItem(c echo.Context) error {
	user, proceed := requireVendor(c)
	if !proceed {
		return nil
	}

	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	item := domain.CartItem{
		ProductID:    payload.ProductID,
		SupplierID:   payload.SupplierID,
		Quantity:     payload.Quantity,
		PricePerUnit: payload.PricePerUnit,
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	cart, err := s.CartByVendor(ctx, user.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		cart = emptyCart(user.ID)
		cart.Add(item)
		if err := s.InsertCart(ctx, cart); err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create cart", nil)
		}
	case err != nil:
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query cart", nil)
	default:
		cart.Add(item)
		if err := s.ReplaceCart(ctx, cart); err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update cart", nil)
		}
	}
	return message(c, "Item added to cart")
}

func updateCartItem(c echo.Context) error {
	user, proceed := requireVendor(c)
	if !proceed {
		return nil
	}
	quantity, err := cast.ToIntE(c.QueryParam("quantity"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", "quantity query parameter is required", nil)
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	cart, err := s.CartByVendor(ctx, user.ID)
	if err != nil {
		return fail(c, http.StatusNotFound, "CART_NOT_FOUND", "Cart not found", nil)
	}
	if !cart.SetQuantity(c.Param("product_id"), quantity) {
		return fail(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found in cart", nil)
	}
	if err := s.ReplaceCart(ctx, cart); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update cart", nil)
	}
	return message(c, "Cart updated")
}

func removeCartItem(c echo.Context) error {
	user, proceed := requireVendor(c)
	if !proceed {
		return nil
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	cart, err := s.CartByVendor(ctx, user.ID)
	if err != nil {
		return fail(c, http.StatusNotFound, "CART_NOT_FOUND", "Cart not found", nil)
	}
	if !cart.Remove(c.Param("product_id")) {
		return fail(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found in cart", nil)
	}
	if err := s.ReplaceCart(ctx, cart); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update cart", nil)
	}
	return message(c, "Item removed from cart")
}

func emptyCart(vendorID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.NewString(),
		VendorID:  vendorID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
