package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/marketplace-reputation/internal/service"
)

// SellerHandler exposes public seller reads.
type SellerHandler struct {
	Ratings *service.RatingService
}

func NewSellerHandler(r *service.RatingService) *SellerHandler {
	return &SellerHandler{Ratings: r}
}

// GetRating returns the seller's aggregate rating. Sellers without any
// rating-affecting event yet report the zero aggregate.
func (h *SellerHandler) GetRating(c echo.Context) error {
	sellerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	sr, err := h.Ratings.GetSellerRating(ctx, sellerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seller_id":      sr.SellerID,
		"rating":         sr.Rating,
		"average_rating": sr.AverageRating,
		"total_comments": sr.TotalComments,
	})
}
