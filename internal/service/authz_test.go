package service

import (
	"errors"
	"testing"

	"github.com/iliyamo/marketplace-reputation/internal/model"
)

func TestAuthorize(t *testing.T) {
	owner := uint64(7)
	comment := model.Comment{ID: 1, AuthorID: &owner}

	if err := Authorize(comment, model.User{ID: 7}); err != nil {
		t.Fatalf("owner must be authorized, got %v", err)
	}
	if err := Authorize(comment, model.User{ID: 8}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner must be forbidden, got %v", err)
	}

	// A comment whose author was deleted has no owner; nobody passes the
	// ownership check (admins bypass it at the call site).
	orphan := model.Comment{ID: 2, AuthorID: nil}
	if err := Authorize(orphan, model.User{ID: 7}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ownerless resource must be forbidden, got %v", err)
	}
}
