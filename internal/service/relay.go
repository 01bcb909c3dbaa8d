package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/store"
)

// pendingComment is the serialized form held in the ephemeral store while
// its author works through registration.
type pendingComment struct {
	SellerID uint64 `json:"seller_id"`
	Message  string `json:"message"`
	Grade    int    `json:"grade"`
}

// RelayService captures a comment submitted by an unregistered visitor and
// replays it into the moderation engine once that visitor's account is
// approved. One slot per email: a second capture silently overwrites the
// first, and an entry that is never replayed expires on its own.
type RelayService struct {
	cache    store.Store
	comments *CommentService
	ttl      time.Duration
}

// NewRelayService builds the relay with the pending-comment TTL.
func NewRelayService(cache store.Store, comments *CommentService, ttl time.Duration) *RelayService {
	return &RelayService{cache: cache, comments: comments, ttl: ttl}
}

// Capture validates and stores the pending comment under the visitor's
// email. The seller must exist and be activated, same as for a direct
// comment, so that registration is not wasted on a dead submission.
func (s *RelayService) Capture(ctx context.Context, email string, sellerID uint64, message string, grade int) error {
	if err := s.comments.requireActiveSeller(ctx, sellerID); err != nil {
		return err
	}
	if err := validateComment(message, grade); err != nil {
		return err
	}
	payload, err := json.Marshal(pendingComment{SellerID: sellerID, Message: message, Grade: grade})
	if err != nil {
		return err
	}
	return s.cache.Save(ctx, store.NSPending, email, string(payload), s.ttl)
}

// Replay creates the captured comment as the now-activated user and
// removes the slot. Absent, expired or already-replayed entries make this
// a no-op.
func (s *RelayService) Replay(ctx context.Context, user model.User) error {
	raw, err := s.cache.Get(ctx, store.NSPending, user.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var p pendingComment
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// Poison entry: drop it rather than block activation forever.
		_ = s.cache.Remove(ctx, store.NSPending, user.Email)
		return fmt.Errorf("%w: corrupt pending comment", ErrInvalidOperation)
	}
	if _, err := s.comments.Create(ctx, p.SellerID, p.Message, p.Grade, user); err != nil {
		return err
	}
	return s.cache.Remove(ctx, store.NSPending, user.Email)
}
