package marketapi

import (
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/webserver"
)

type reviewPayload struct {
	SupplierID string `json:"supplier_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

func registerReviewRoutes() {
	webserver.ApiPOST("/reviews", createReview)
}

// createReview inserts the review, then recomputes the supplier's rating
// aggregate from a full scan of its reviews. The two writes are not atomic;
// review volume per supplier is low enough that the full scan stays cheap.
func createReview(c echo.Context) error {
	user := webserver.CurrentUser(c)
	if user.UserType != domain.UserTypeVendor {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Only vendors can create reviews", nil)
	}

	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	exists, err := s.HasReview(ctx, user.ID, payload.SupplierID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query reviews", nil)
	}
	if exists {
		return fail(c, http.StatusBadRequest, "REVIEW_EXISTS", "Review already exists for this supplier", nil)
	}

	review := &domain.Review{
		ID:         uuid.NewString(),
		VendorID:   user.ID,
		SupplierID: payload.SupplierID,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.CreateReview(ctx, review); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create review", nil)
	}

	reviews, err := s.ListReviews(ctx, payload.SupplierID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query reviews", nil)
	}
	ratings := make([]float64, len(reviews))
	for i, r := range reviews {
		ratings[i] = float64(r.Rating)
	}
	mean, err := stats.Mean(ratings)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to compute rating", nil)
	}
	rounded := math.Round(mean*10) / 10
	if err := s.SetSupplierRating(ctx, payload.SupplierID, rounded, len(reviews)); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update supplier rating", nil)
	}

	zap.L().Info("review recorded",
		zap.String("supplier_id", payload.SupplierID),
		zap.Int("rating", payload.Rating),
		zap.Float64("new_average", rounded))
	return ok(c, review)
}
