package marketapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micromarket/backend/internal/domain"
)

func (e *testEnv) createProduct(token string, body map[string]interface{}) domain.Product {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/products", token, body)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[domain.Product](e.t, rec)
}

func tomatoesBody() map[string]interface{} {
	return map[string]interface{}{
		"name":               "Organic Tomatoes",
		"category":           "Vegetables",
		"price_per_unit":     3.50,
		"unit":               "kg",
		"quantity_available": 500,
	}
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	tok, stallID := env.createStall(uniqueEmail("prod"))

	product := env.createProduct(tok, tomatoesBody())
	assert.Equal(t, stallID, product.SupplierID)
	assert.NotEmpty(t, product.ID)
	assert.NotNil(t, product.BulkDiscountTiers)
	assert.Empty(t, product.BulkDiscountTiers)

	rec := env.do(http.MethodGet, "/api/products/my-products", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Product](t, rec), 1)
}

func TestCreateProductRequiresStall(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(uniqueEmail("nostallprod"), "supplier")

	rec := env.do(http.MethodPost, "/api/products", tok.AccessToken, tomatoesBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/products/my-products", tok.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductVendorForbidden(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(uniqueEmail("vendorprod"), "vendor")

	rec := env.do(http.MethodPost, "/api/products", tok.AccessToken, tomatoesBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.createStall(uniqueEmail("badprice"))

	body := tomatoesBody()
	body["price_per_unit"] = 0
	rec := env.do(http.MethodPost, "/api/products", tok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.createStall(uniqueEmail("update"))
	product := env.createProduct(tok, tomatoesBody())

	rec := env.do(http.MethodPut, "/api/products/"+product.ID, tok, map[string]interface{}{
		"price_per_unit": 4.25,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Product](t, rec)
	assert.InDelta(t, 4.25, updated.PricePerUnit, 1e-9)
	// untouched fields survive a partial update
	assert.Equal(t, "Organic Tomatoes", updated.Name)
	assert.Equal(t, 500, updated.QuantityAvailable)
	assert.True(t, updated.UpdatedAt.After(product.CreatedAt) || updated.UpdatedAt.Equal(product.CreatedAt))
}

func TestUpdateProductRefreshesUpdatedAt(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.createStall(uniqueEmail("touch"))
	product := env.createProduct(tok, tomatoesBody())

	time.Sleep(10 * time.Millisecond)
	rec := env.do(http.MethodPut, "/api/products/"+product.ID, tok, map[string]interface{}{
		"quantity_available": 450,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[domain.Product](t, rec)
	assert.True(t, updated.UpdatedAt.After(product.UpdatedAt))
}

func TestUpdateProductForeignStall(t *testing.T) {
	env := newTestEnv(t)
	ownerTok, _ := env.createStall(uniqueEmail("owner"))
	product := env.createProduct(ownerTok, tomatoesBody())

	otherTok, _ := env.createStall(uniqueEmail("other"))
	rec := env.do(http.MethodPut, "/api/products/"+product.ID, otherTok, map[string]interface{}{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/api/products/"+product.ID, otherTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// owner still sees the unmodified product
	rec = env.do(http.MethodGet, "/api/products/my-products", ownerTok, nil)
	got := decode[[]domain.Product](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "Organic Tomatoes", got[0].Name)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.createStall(uniqueEmail("delete"))
	product := env.createProduct(tok, tomatoesBody())

	rec := env.do(http.MethodDelete, "/api/products/"+product.ID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/products/my-products", tok, nil)
	assert.Empty(t, decode[[]domain.Product](t, rec))

	// second delete reads as missing
	rec = env.do(http.MethodDelete, "/api/products/"+product.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductWithBulkTiers(t *testing.T) {
	env := newTestEnv(t)
	tok, _ := env.createStall(uniqueEmail("tiers"))

	body := tomatoesBody()
	body["bulk_discount_tiers"] = []map[string]interface{}{
		{"min_qty": 50, "discount": 0.05, "label": "5% off 50+"},
		{"min_qty": 100, "discount": 0.10, "label": "10% off 100+"},
	}
	product := env.createProduct(tok, body)
	require.Len(t, product.BulkDiscountTiers, 2)
	assert.Equal(t, 100, product.BulkDiscountTiers[1].MinQty)
	assert.InDelta(t, 0.10, product.BulkDiscountTiers[1].Discount, 1e-9)
}
