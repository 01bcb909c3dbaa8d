package service

import (
	"context"
	"errors"
	"math"

	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/repository"
)

// RatingService maintains the denormalized per-seller aggregate. Every
// mutation that changes the approved-comment set recomputes the aggregate
// from scratch: O(comments per seller) per event, which is fine at the
// expected per-seller volume and keeps the math trivially correct.
type RatingService struct {
	store repository.Store
}

// NewRatingService builds the rating engine over the given store.
func NewRatingService(store repository.Store) *RatingService {
	return &RatingService{store: store}
}

// Recompute rebuilds the seller's aggregate inside the caller's store
// view. Mutating flows pass their transaction-bound store so that a
// failing recompute rolls the comment mutation back and rating and
// comment state never diverge.
func (s *RatingService) Recompute(ctx context.Context, st repository.Store, sellerID uint64) error {
	if _, err := st.Users().GetByID(ctx, sellerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	comments, err := st.Comments().ListBySeller(ctx, sellerID)
	if err != nil {
		return err
	}
	var (
		count int
		sum   int
	)
	for _, c := range comments {
		if c.IsApproved {
			count++
			sum += c.Grade
		}
	}
	avg := 0.0
	if count > 0 {
		avg = float64(sum) / float64(count)
	}
	return st.Ratings().Upsert(ctx, model.SellerRating{
		SellerID:      sellerID,
		Rating:        roundHalfUp(avg),
		AverageRating: avg,
		TotalComments: count,
	})
}

// GetSellerRating returns the aggregate for public reads. A seller with no
// rating-affecting events yet has no row; the zero aggregate is reported
// instead of an error.
func (s *RatingService) GetSellerRating(ctx context.Context, sellerID uint64) (model.SellerRating, error) {
	if _, err := s.store.Users().GetByID(ctx, sellerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.SellerRating{}, ErrNotFound
		}
		return model.SellerRating{}, err
	}
	sr, err := s.store.Ratings().GetBySeller(ctx, sellerID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.SellerRating{SellerID: sellerID}, nil
	}
	return sr, err
}

// roundHalfUp applies standard rounding, not banker's rounding: 2.5 -> 3.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
