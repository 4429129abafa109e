package marketapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
)

func TestDemoInitIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := env.do(http.MethodPost, "/api/demo/init", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[map[string]string](t, rec)
	assert.Equal(t, "Demo data initialized successfully", first["message"])

	suppliers, err := env.mem.ListSuppliers(ctx, store.SupplierFilter{})
	require.NoError(t, err)
	require.Len(t, suppliers, 3)

	var products int
	for _, s := range suppliers {
		got, err := env.mem.ListProducts(ctx, s.ID, store.ProductFilter{})
		require.NoError(t, err)
		products += len(got)
		for _, p := range got {
			assert.Equal(t, s.ID, p.SupplierID)
			assert.NotEmpty(t, p.BulkDiscountTiers)
		}
	}
	assert.Equal(t, 15, products)

	// second call is a no-op
	rec = env.do(http.MethodPost, "/api/demo/init", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[map[string]string](t, rec)
	assert.Equal(t, "Demo data already exists", second["message"])

	again, err := env.mem.ListSuppliers(ctx, store.SupplierFilter{})
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestDemoSuppliersAreBrowsable(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/demo/init", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/suppliers", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	suppliers := decode[[]domain.Supplier](t, rec)
	require.Len(t, suppliers, 3)

	rec = env.do(http.MethodGet, "/api/suppliers/"+suppliers[0].ID+"/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]domain.Product](t, rec))
}
