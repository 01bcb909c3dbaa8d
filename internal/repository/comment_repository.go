package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/marketplace-reputation/internal/model"
)

// CommentRepo mirrors the 'comments' table. author_id is nullable so a
// comment survives the deletion of its author.
type CommentRepo struct{ q DBTX }

// NewCommentRepo returns a repo bound directly to a database handle.
func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{q: db} }

const commentColumns = "id,message,grade,author_id,seller_id,is_approved,created_at"

// Create inserts the comment and fills in the generated ID and created_at.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	var author any
	if c.AuthorID != nil {
		author = *c.AuthorID
	}
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO comments (message,grade,author_id,seller_id,is_approved) VALUES (?,?,?,?,?)",
		c.Message, c.Grade, author, c.SellerID, c.IsApproved)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.q.QueryRowContext(ctx,
		"SELECT created_at FROM comments WHERE id=?", c.ID).Scan(&c.CreatedAt)
}

// GetByID fetches a comment by id.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	row := r.q.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id=? LIMIT 1", id)
	c, err := scanComment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Comment{}, ErrNotFound
	}
	return c, err
}

// ListBySeller returns all comments for a seller, oldest first, regardless
// of approval state. Visibility filtering belongs to the service layer.
func (r *CommentRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Comment, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE seller_id=? ORDER BY id", sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		c, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces message and grade. Approval state is untouched.
func (r *CommentRepo) Update(ctx context.Context, id uint64, message string, grade int) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE comments SET message=?, grade=? WHERE id=?", message, grade, id)
	return err
}

// SetApproved flips the approval flag.
func (r *CommentRepo) SetApproved(ctx context.Context, id uint64, approved bool) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE comments SET is_approved=? WHERE id=?", approved, id)
	return err
}

// Delete removes the comment row.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearAuthor nulls author_id on every comment written by the given user.
// Called in the same transaction that deletes the user row.
func (r *CommentRepo) ClearAuthor(ctx context.Context, authorID uint64) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE comments SET author_id=NULL WHERE author_id=?", authorID)
	return err
}

func scanComment(scan func(dest ...any) error) (model.Comment, error) {
	var (
		c      model.Comment
		author sql.NullInt64
	)
	err := scan(&c.ID, &c.Message, &c.Grade, &author, &c.SellerID, &c.IsApproved, &c.CreatedAt)
	if err != nil {
		return model.Comment{}, err
	}
	if author.Valid {
		id := uint64(author.Int64)
		c.AuthorID = &id
	}
	return c, nil
}
