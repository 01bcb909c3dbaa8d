package model

import "time"

// SellerRating is the denormalized per-seller aggregate, one row per
// seller, created lazily on the first rating-affecting event.
//
// Invariants kept by the rating engine:
//  Rating        = round-half-up of AverageRating.
//  AverageRating = mean grade over approved comments, 0.0 when none.
//  TotalComments = count of approved comments only.
type SellerRating struct {
	SellerID      uint64    // seller_ratings.seller_id (unique)
	Rating        int       // seller_ratings.rating
	AverageRating float64   // seller_ratings.average_rating
	TotalComments int       // seller_ratings.total_comments
	CreatedAt     time.Time // seller_ratings.created_at
}
