package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/marketplace-reputation/internal/store"
)

func TestPendingCommentReplayOnActivation(t *testing.T) {
	// An unregistered visitor leaves a grade-4 comment, registers with the
	// same email, confirms, and gets approved: the seller gains exactly one
	// approved-track comment with grade 4.
	env := newTestEnv()
	ctx := context.Background()
	seller := seedSeller(t, env, "seller@example.com")

	if err := env.relay.Capture(ctx, "visitor@example.com", seller.ID, "solid seller", 4); err != nil {
		t.Fatalf("capture: %v", err)
	}

	res, err := env.auth.Register(ctx, "Vis", "Itor", "visitor@example.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := env.auth.ConfirmEmail(ctx, res.Token); err != nil {
		t.Fatalf("confirm email: %v", err)
	}
	if _, err := env.auth.ConfirmUser(ctx, "visitor@example.com", true); err != nil {
		t.Fatalf("confirm user: %v", err)
	}

	visitor, err := env.store.Users().GetByEmail(ctx, "visitor@example.com")
	if err != nil {
		t.Fatalf("load visitor: %v", err)
	}
	views, err := env.comments.ListBySeller(ctx, seller.ID, &visitor)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Grade != 4 || views[0].Status != StatusPending {
		t.Fatalf("expected one replayed pending comment with grade 4, got %+v", views)
	}
	if views[0].AuthorID == nil || *views[0].AuthorID != visitor.ID {
		t.Fatalf("replayed comment must be authored by the activated user")
	}

	// Once the admin approves the replayed comment it counts in the rating.
	if _, err := env.comments.Approve(ctx, seller.ID, views[0].ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	sr, err := env.ratings.GetSellerRating(ctx, seller.ID)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if sr.TotalComments != 1 || sr.Rating != 4 {
		t.Fatalf("expected 1 approved comment rating 4, got %+v", sr)
	}

	// The pending slot was consumed.
	if _, err := env.cache.Get(ctx, store.NSPending, "visitor@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("pending slot must be removed after replay, got %v", err)
	}
}

func TestSecondCaptureOverwritesFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sellerA := seedSeller(t, env, "a@example.com")
	sellerB := seedSeller(t, env, "b@example.com")

	if err := env.relay.Capture(ctx, "visitor@example.com", sellerA.ID, "first", 1); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if err := env.relay.Capture(ctx, "visitor@example.com", sellerB.ID, "second", 5); err != nil {
		t.Fatalf("capture: %v", err)
	}

	visitor := seedSeller(t, env, "visitor@example.com")
	if err := env.relay.Replay(ctx, visitor); err != nil {
		t.Fatalf("replay: %v", err)
	}

	// Only the second capture survives; at most one pending comment per
	// registrant is retained.
	a, _ := env.comments.ListBySeller(ctx, sellerA.ID, &visitor)
	b, _ := env.comments.ListBySeller(ctx, sellerB.ID, &visitor)
	if len(a) != 0 {
		t.Fatalf("first capture must be discarded, got %+v", a)
	}
	if len(b) != 1 || b[0].Grade != 5 {
		t.Fatalf("second capture must win, got %+v", b)
	}
}

func TestReplayIsNoopWithoutCapture(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	visitor := seedSeller(t, env, "visitor@example.com")

	if err := env.relay.Replay(ctx, visitor); err != nil {
		t.Fatalf("replay without capture must be a no-op, got %v", err)
	}
	// Replaying twice is equally harmless.
	if err := env.relay.Replay(ctx, visitor); err != nil {
		t.Fatalf("second replay must be a no-op, got %v", err)
	}
}

func TestCaptureValidatesLikeCreate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := seedSeller(t, env, "seller@example.com")

	if err := env.relay.Capture(ctx, "v@example.com", seller.ID, "msg", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad grade, got %v", err)
	}
	if err := env.relay.Capture(ctx, "v@example.com", 9999, "msg", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown seller, got %v", err)
	}
}
