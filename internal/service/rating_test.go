package service

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int{
		0.0: 0,
		1.0: 1,
		2.4: 2,
		2.5: 3, // standard rounding, not banker's
		3.5: 4,
		4.6: 5,
	}
	for in, want := range cases {
		if got := roundHalfUp(in); got != want {
			t.Fatalf("roundHalfUp(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestAggregateTracksApprovedSet(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	seller := seedSeller(t, env, "seller@example.com")
	author := seedSeller(t, env, "author@example.com")

	grades := []int{5, 4, 2}
	var ids []uint64
	for _, g := range grades {
		c, err := env.comments.Create(ctx, seller.ID, "msg", g, author)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, c.ID)
	}

	// Nothing approved yet: the aggregate row may not even exist, the read
	// reports the zero aggregate.
	sr, err := env.ratings.GetSellerRating(ctx, seller.ID)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if sr.TotalComments != 0 || sr.AverageRating != 0.0 || sr.Rating != 0 {
		t.Fatalf("expected zero aggregate before approvals, got %+v", sr)
	}

	// Approve 5 and 4: mean 4.5 rounds up to 5.
	for _, id := range ids[:2] {
		if _, err := env.comments.Approve(ctx, seller.ID, id, true); err != nil {
			t.Fatalf("approve: %v", err)
		}
	}
	sr, _ = env.ratings.GetSellerRating(ctx, seller.ID)
	if sr.TotalComments != 2 || math.Abs(sr.AverageRating-4.5) > 1e-9 || sr.Rating != 5 {
		t.Fatalf("expected avg 4.5 rating 5 over 2 comments, got %+v", sr)
	}

	// Approve the 2 as well: mean 11/3.
	if _, err := env.comments.Approve(ctx, seller.ID, ids[2], true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	sr, _ = env.ratings.GetSellerRating(ctx, seller.ID)
	want := 11.0 / 3.0
	if sr.TotalComments != 3 || math.Abs(sr.AverageRating-want) > 1e-9 || sr.Rating != 4 {
		t.Fatalf("expected avg %v rating 4 over 3 comments, got %+v", want, sr)
	}

	// Delete one approved comment: the aggregate follows.
	if err := env.comments.Delete(ctx, seller.ID, ids[0], author); err != nil {
		t.Fatalf("delete: %v", err)
	}
	sr, _ = env.ratings.GetSellerRating(ctx, seller.ID)
	if sr.TotalComments != 2 || math.Abs(sr.AverageRating-3.0) > 1e-9 || sr.Rating != 3 {
		t.Fatalf("expected avg 3.0 over 2 comments after delete, got %+v", sr)
	}

	// Reject the rest: back to the empty aggregate, not a missing row.
	for _, id := range ids[1:] {
		if _, err := env.comments.Approve(ctx, seller.ID, id, false); err != nil {
			t.Fatalf("reject: %v", err)
		}
	}
	sr, _ = env.ratings.GetSellerRating(ctx, seller.ID)
	if sr.TotalComments != 0 || sr.AverageRating != 0.0 || sr.Rating != 0 {
		t.Fatalf("expected empty aggregate after rejecting all, got %+v", sr)
	}
}

func TestRecomputeUnknownSeller(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	if err := env.ratings.Recompute(ctx, env.store, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown seller, got %v", err)
	}
	if _, err := env.ratings.GetSellerRating(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound reading rating of unknown seller, got %v", err)
	}
}
