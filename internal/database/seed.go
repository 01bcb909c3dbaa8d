package database

import (
	"context"
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin ensures a single administrator account exists. Administrators
// cannot be created through registration (every registered account starts
// as SELLER), so the first admin comes from ADMIN_EMAIL/ADMIN_PASSWORD.
// Admin rows are created with both gates already set: email confirmed and
// activated. Missing env values skip seeding silently.
func SeedAdmin(ctx context.Context, db *sql.DB, email, password string, bcryptCost int) error {
	if email == "" || password == "" {
		return nil
	}
	var exists int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM users WHERE email=?", email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, role, email_confirmed, activated)
		 VALUES ('Admin', '', ?, ?, 'ADMIN', TRUE, TRUE)`,
		email, string(hash))
	if err != nil {
		return err
	}
	log.Printf("seeded admin account %s", email)
	return nil
}
