package marketapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micromarket/backend/internal/domain"
)

func reviewBody(supplierID string, rating int) map[string]interface{} {
	return map[string]interface{}{
		"supplier_id": supplierID,
		"rating":      rating,
		"comment":     "solid produce",
	}
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	env := newTestEnv(t)
	_, stallID := env.createStall(uniqueEmail("reviewed"))

	v1 := env.register(uniqueEmail("rev1"), "vendor")
	rec := env.do(http.MethodPost, "/api/reviews", v1.AccessToken, reviewBody(stallID, 5))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	review := decode[domain.Review](t, rec)
	assert.Equal(t, v1.User.ID, review.VendorID)

	supplier, err := env.mem.SupplierByID(context.Background(), stallID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, supplier.Rating, 1e-9)
	assert.Equal(t, 1, supplier.TotalReviews)

	// second vendor shifts the average to a one-decimal rounding
	v2 := env.register(uniqueEmail("rev2"), "vendor")
	rec = env.do(http.MethodPost, "/api/reviews", v2.AccessToken, reviewBody(stallID, 4))
	require.Equal(t, http.StatusOK, rec.Code)

	supplier, err = env.mem.SupplierByID(context.Background(), stallID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, supplier.Rating, 1e-9)
	assert.Equal(t, 2, supplier.TotalReviews)

	// third review: mean 4.333... rounds to 4.3
	v3 := env.register(uniqueEmail("rev3"), "vendor")
	rec = env.do(http.MethodPost, "/api/reviews", v3.AccessToken, reviewBody(stallID, 4))
	require.Equal(t, http.StatusOK, rec.Code)

	supplier, err = env.mem.SupplierByID(context.Background(), stallID)
	require.NoError(t, err)
	assert.InDelta(t, 4.3, supplier.Rating, 1e-9)
	assert.Equal(t, 3, supplier.TotalReviews)
}

func TestCreateReviewDuplicate(t *testing.T) {
	env := newTestEnv(t)
	_, stallID := env.createStall(uniqueEmail("dupreview"))
	vendor := env.register(uniqueEmail("dupvendor"), "vendor")

	rec := env.do(http.MethodPost, "/api/reviews", vendor.AccessToken, reviewBody(stallID, 4))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/api/reviews", vendor.AccessToken, reviewBody(stallID, 5))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// rating unchanged by the rejected duplicate
	supplier, err := env.mem.SupplierByID(context.Background(), stallID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, supplier.Rating, 1e-9)
	assert.Equal(t, 1, supplier.TotalReviews)
}

func TestCreateReviewSupplierForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, stallID := env.createStall(uniqueEmail("target"))
	supplier := env.register(uniqueEmail("reviewer-supplier"), "supplier")

	rec := env.do(http.MethodPost, "/api/reviews", supplier.AccessToken, reviewBody(stallID, 5))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	_, stallID := env.createStall(uniqueEmail("bounds"))
	vendor := env.register(uniqueEmail("boundsvendor"), "vendor")

	rec := env.do(http.MethodPost, "/api/reviews", vendor.AccessToken, reviewBody(stallID, 0))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/reviews", vendor.AccessToken, reviewBody(stallID, 6))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSupplierReviewsPublic(t *testing.T) {
	env := newTestEnv(t)
	_, stallID := env.createStall(uniqueEmail("listed"))
	vendor := env.register(uniqueEmail("listvendor"), "vendor")
	env.do(http.MethodPost, "/api/reviews", vendor.AccessToken, reviewBody(stallID, 5))

	rec := env.do(http.MethodGet, "/api/suppliers/"+stallID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reviews := decode[[]domain.Review](t, rec)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "solid produce", reviews[0].Comment)
}
