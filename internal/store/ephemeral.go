// Package store implements the ephemeral TTL key/value capability used for
// email-confirmation tokens, password-reset codes and pending
// unregistered-user comments. Entries live in one of three namespaces,
// each keyed by email and holding a single slot: a save overwrites the
// prior value and resets the TTL, so last writer wins. There is no
// transactional guarantee across namespaces.
package store

import (
	"context"
	"errors"
	"time"
)

// Namespaces. Each save/get/remove addresses exactly one of these.
const (
	NSConfirm = "confirm" // email-confirmation tokens, ~24h
	NSReset   = "reset"   // password-reset codes, ~15m
	NSPending = "pending" // pending unregistered-user comments, ~30m
)

// ErrNotFound is returned by Get for a key that was never written, was
// removed, or has expired. The three cases are indistinguishable.
var ErrNotFound = errors.New("ephemeral entry not found")

// Store is the ephemeral state contract. Implementations must treat each
// (namespace, key) pair as a single slot with last-writer-wins semantics.
type Store interface {
	Save(ctx context.Context, namespace, key, value string, ttl time.Duration) error
	Get(ctx context.Context, namespace, key string) (string, error)
	Remove(ctx context.Context, namespace, key string) error
}

func entryKey(namespace, key string) string { return namespace + ":" + key }
