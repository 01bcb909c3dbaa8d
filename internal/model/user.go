package model

import "time"

// Role names stored in users.role. ADMIN accounts are created with both
// activation gates already set; SELLER accounts go through the full
// registration state machine.
const (
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// User represents a row in the `users` table. The email column is the
// unique lookup key and is compared case-sensitively. EmailConfirmed is
// set by the user via the confirmation-token round trip; Activated is
// set by an administrator. Only activated users can authenticate.
//
// Fields:
//  ID             – primary key identifier of the user.
//  FirstName      – given name.
//  LastName       – family name.
//  Email          – unique email address (case-sensitive key).
//  PasswordHash   – bcrypt hashed password.
//  Role           – SELLER or ADMIN.
//  EmailConfirmed – users.email_confirmed gate.
//  Activated      – users.activated gate.
//  CreatedAt      – timestamp of creation, immutable.
type User struct {
	ID             uint64    // users.id
	FirstName      string    // users.first_name
	LastName       string    // users.last_name
	Email          string    // users.email
	PasswordHash   string    // users.password_hash
	Role           string    // users.role
	EmailConfirmed bool      // users.email_confirmed
	Activated      bool      // users.activated
	CreatedAt      time.Time // users.created_at
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// FullName joins first and last name for outbound emails.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
