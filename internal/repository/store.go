package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/marketplace-reputation/internal/model"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, letting the same
// repository code run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserStore is the persistence contract for users.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	SetEmailConfirmed(ctx context.Context, id uint64, confirmed bool) error
	SetActivated(ctx context.Context, id uint64, activated bool) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	Delete(ctx context.Context, id uint64) error
}

// CommentStore is the persistence contract for comments.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id uint64) (model.Comment, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.Comment, error)
	Update(ctx context.Context, id uint64, message string, grade int) error
	SetApproved(ctx context.Context, id uint64, approved bool) error
	Delete(ctx context.Context, id uint64) error
	ClearAuthor(ctx context.Context, authorID uint64) error
}

// RatingStore is the persistence contract for the denormalized aggregate.
type RatingStore interface {
	GetBySeller(ctx context.Context, sellerID uint64) (model.SellerRating, error)
	Upsert(ctx context.Context, r model.SellerRating) error
}

// Store groups the repositories and provides the transaction boundary.
// Every top-level mutating operation runs its relational writes through a
// single InTx call so a failure partway rolls everything back. Ephemeral
// (Redis) writes are never part of that boundary.
type Store interface {
	Users() UserStore
	Comments() CommentStore
	Ratings() RatingStore
	InTx(ctx context.Context, fn func(Store) error) error
}

// SQLStore implements Store over MySQL. Outside a transaction q is the
// *sql.DB; inside InTx a derived SQLStore carries the *sql.Tx instead.
type SQLStore struct {
	db *sql.DB
	q  DBTX
}

// NewStore builds a SQLStore bound to the given database handle.
func NewStore(db *sql.DB) *SQLStore { return &SQLStore{db: db, q: db} }

func (s *SQLStore) Users() UserStore       { return &UserRepo{q: s.q} }
func (s *SQLStore) Comments() CommentStore { return &CommentRepo{q: s.q} }
func (s *SQLStore) Ratings() RatingStore   { return &RatingRepo{q: s.q} }

// InTx runs fn against a transaction-bound view of the store. Nested calls
// reuse the already-open transaction rather than starting a second one.
func (s *SQLStore) InTx(ctx context.Context, fn func(Store) error) error {
	if _, ok := s.q.(*sql.Tx); ok {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&SQLStore{db: s.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
