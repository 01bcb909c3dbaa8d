package service

import (
	"context"
	"testing"
	"time"

	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/store"
	"github.com/iliyamo/marketplace-reputation/internal/utils"
)

// testEnv wires the full service graph over in-memory fakes.
type testEnv struct {
	store    *fakeStore
	cache    *store.Memory
	codec    *utils.TokenCodec
	mail     *fakeMailer
	auth     *AuthService
	comments *CommentService
	ratings  *RatingService
	relay    *RelayService
}

func newTestEnv() *testEnv {
	fs := newFakeStore()
	cache := store.NewMemory()
	codec := utils.NewTokenCodec("test-secret", time.Hour)
	mail := newFakeMailer()
	ratings := NewRatingService(fs)
	comments := NewCommentService(fs, ratings)
	relay := NewRelayService(cache, comments, 30*time.Minute)
	auth := NewAuthService(fs, cache, codec, mail, relay,
		"http://localhost:8080", 4, 24*time.Hour, 15*time.Minute)
	return &testEnv{
		store:    fs,
		cache:    cache,
		codec:    codec,
		mail:     mail,
		auth:     auth,
		comments: comments,
		ratings:  ratings,
		relay:    relay,
	}
}

// seedSeller inserts an already-activated seller directly into the store.
func seedSeller(t *testing.T, env *testEnv, email string) model.User {
	t.Helper()
	u := model.User{
		FirstName:      "Test",
		LastName:       "Seller",
		Email:          email,
		PasswordHash:   mustHash(t, "password"),
		Role:           model.RoleSeller,
		EmailConfirmed: true,
		Activated:      true,
	}
	if err := env.store.Users().Create(context.Background(), &u); err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	return u
}

// seedAdmin inserts an administrator with both gates open.
func seedAdmin(t *testing.T, env *testEnv, email string) model.User {
	t.Helper()
	u := model.User{
		FirstName:      "Site",
		LastName:       "Admin",
		Email:          email,
		PasswordHash:   mustHash(t, "password"),
		Role:           model.RoleAdmin,
		EmailConfirmed: true,
		Activated:      true,
	}
	if err := env.store.Users().Create(context.Background(), &u); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return u
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := utils.HashPassword(plain, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}
