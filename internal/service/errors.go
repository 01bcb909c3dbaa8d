// Package service implements the reputation domain: the registration and
// authentication state machine, the comment moderation engine, the pending
// comment relay and the rating aggregation engine. This file defines the
// typed failure taxonomy surfaced to the HTTP layer. Every failure is one
// of these sentinels, possibly wrapped with context via fmt.Errorf("%w: …").
package service

import "errors"

// ErrInvalidArgument marks malformed input the user can fix, such as a
// grade outside [1,5] or an empty message.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidOperation marks a request that cannot proceed in the current
// state: bad email format on registration, a stale confirmation token, a
// wrong reset code.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrConflict marks a duplicate-identity collision (email already taken).
var ErrConflict = errors.New("conflict")

// ErrUnauthorized marks a missing or invalid credential. The client must
// re-authenticate.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden marks an authenticated caller that is not the resource
// owner nor an administrator.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound marks an absent or expired seller, comment, user or token.
var ErrNotFound = errors.New("resource not found")

// ErrNotActivated marks valid credentials whose account gating is not yet
// complete. Retryable once the admin or email action happens.
var ErrNotActivated = errors.New("account not activated")
