package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/marketplace-reputation/internal/model"
)

// RatingRepo mirrors the 'seller_ratings' table, one row per seller. Rows
// are created lazily through Upsert on the first rating-affecting event.
type RatingRepo struct{ q DBTX }

// NewRatingRepo returns a repo bound directly to a database handle.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{q: db} }

// GetBySeller fetches the aggregate row for a seller.
func (r *RatingRepo) GetBySeller(ctx context.Context, sellerID uint64) (model.SellerRating, error) {
	var sr model.SellerRating
	err := r.q.QueryRowContext(ctx,
		"SELECT seller_id,rating,average_rating,total_comments,created_at FROM seller_ratings WHERE seller_id=? LIMIT 1",
		sellerID).Scan(&sr.SellerID, &sr.Rating, &sr.AverageRating, &sr.TotalComments, &sr.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SellerRating{}, ErrNotFound
	}
	return sr, err
}

// Upsert writes the aggregate, creating the row on first use. Relies on
// the unique key over seller_id.
func (r *RatingRepo) Upsert(ctx context.Context, sr model.SellerRating) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO seller_ratings (seller_id, rating, average_rating, total_comments)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE rating=VALUES(rating), average_rating=VALUES(average_rating), total_comments=VALUES(total_comments)`,
		sr.SellerID, sr.Rating, sr.AverageRating, sr.TotalComments)
	return err
}
