// Package repository provides data access to the users, comments and
// seller_ratings tables. This file defines sentinel errors reused across
// repositories so that higher layers can distinguish failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. It replaces
// sql.ErrNoRows at the repository boundary so callers never depend on
// database/sql directly.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by UserRepo.Create when the unique email key
// is already taken.
var ErrEmailExists = errors.New("email already exists")
