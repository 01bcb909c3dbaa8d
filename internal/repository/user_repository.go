package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/marketplace-reputation/internal/model"
)

// UserRepo mirrors the 'users' table. Emails are trimmed but kept
// case-sensitive; the unique key on users.email is the identity.
type UserRepo struct{ q DBTX }

// NewUserRepo returns a repo bound directly to a database handle. Most
// callers go through Store instead.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{q: db} }

const userColumns = "id,first_name,last_name,email,password_hash,role,email_confirmed,activated,created_at"

// Create inserts the user and fills in the generated ID and created_at.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.TrimSpace(u.Email)
	res, err := r.q.ExecContext(ctx,
		"INSERT INTO users (first_name,last_name,email,password_hash,role,email_confirmed,activated) VALUES (?,?,?,?,?,?,?)",
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, u.EmailConfirmed, u.Activated)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return r.q.QueryRowContext(ctx,
		"SELECT created_at FROM users WHERE id=?", u.ID).Scan(&u.CreatedAt)
}

// GetByEmail fetches a user by its exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.scanOne(r.q.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", strings.TrimSpace(email)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.q.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// SetEmailConfirmed flips the email-confirmation gate.
func (r *UserRepo) SetEmailConfirmed(ctx context.Context, id uint64, confirmed bool) error {
	return r.exec(ctx, "UPDATE users SET email_confirmed=? WHERE id=?", confirmed, id)
}

// SetActivated flips the admin-activation gate.
func (r *UserRepo) SetActivated(ctx context.Context, id uint64, activated bool) error {
	return r.exec(ctx, "UPDATE users SET activated=? WHERE id=?", activated, id)
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	return r.exec(ctx, "UPDATE users SET password_hash=? WHERE id=?", passwordHash, id)
}

// Delete removes the user row. Comments referencing the user keep existing
// with a cleared author; callers run ClearAuthor in the same transaction.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// exec runs an UPDATE without inspecting RowsAffected: MySQL reports zero
// affected rows for no-op updates, which callers must not confuse with a
// missing row. Existence is checked by loading the row first.
func (r *UserRepo) exec(ctx context.Context, query string, args ...any) error {
	_, err := r.q.ExecContext(ctx, query, args...)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Role, &u.EmailConfirmed, &u.Activated, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}
