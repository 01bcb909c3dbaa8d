package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/repository"
)

// Comment status strings surfaced in DTOs.
const (
	StatusApproved = "Approved"
	StatusPending  = "Pending verification"
)

// CommentView is the DTO shape returned to the HTTP layer.
type CommentView struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	Grade     int       `json:"grade"`
	AuthorID  *uint64   `json:"author_id,omitempty"`
	SellerID  uint64    `json:"seller_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func viewOf(c model.Comment) CommentView {
	status := StatusPending
	if c.IsApproved {
		status = StatusApproved
	}
	return CommentView{
		ID:        c.ID,
		Message:   c.Message,
		Grade:     c.Grade,
		AuthorID:  c.AuthorID,
		SellerID:  c.SellerID,
		Status:    status,
		CreatedAt: c.CreatedAt,
	}
}

// CommentService is the moderation engine: create, read with role-aware
// visibility, update, delete and approve/reject. Mutations that change the
// approved set run inside one transaction together with the rating
// recompute.
type CommentService struct {
	store   repository.Store
	ratings *RatingService
}

// NewCommentService builds the moderation engine.
func NewCommentService(store repository.Store, ratings *RatingService) *CommentService {
	return &CommentService{store: store, ratings: ratings}
}

// Create persists a new unapproved comment authored by the actor. The
// seller must exist and be activated.
func (s *CommentService) Create(ctx context.Context, sellerID uint64, message string, grade int, actor model.User) (CommentView, error) {
	if err := s.requireActiveSeller(ctx, sellerID); err != nil {
		return CommentView{}, err
	}
	if err := validateComment(message, grade); err != nil {
		return CommentView{}, err
	}
	authorID := actor.ID
	c := model.Comment{
		Message:  strings.TrimSpace(message),
		Grade:    grade,
		AuthorID: &authorID,
		SellerID: sellerID,
	}
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := st.Comments().Create(ctx, &c); err != nil {
			return err
		}
		// Comments are born unapproved; recompute only on the off-nominal
		// path where one arrives pre-approved.
		if c.IsApproved {
			return s.ratings.Recompute(ctx, st, sellerID)
		}
		return nil
	})
	if err != nil {
		return CommentView{}, err
	}
	return viewOf(c), nil
}

// ListBySeller applies the visibility matrix: admins see everything,
// authenticated users see approved comments plus their own, anonymous
// callers see approved only. actor is nil for anonymous requests.
func (s *CommentService) ListBySeller(ctx context.Context, sellerID uint64, actor *model.User) ([]CommentView, error) {
	isAdmin := actor != nil && actor.IsAdmin()
	if err := s.requireSeller(ctx, sellerID, isAdmin); err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		if isAdmin || visibleTo(c, actor) {
			out = append(out, viewOf(c))
		}
	}
	return out, nil
}

// Get returns one comment, hidden behind ErrNotFound unless the caller is
// an admin, the comment is approved, or the caller authored it.
func (s *CommentService) Get(ctx context.Context, sellerID, commentID uint64, actor *model.User) (CommentView, error) {
	isAdmin := actor != nil && actor.IsAdmin()
	if err := s.requireSeller(ctx, sellerID, isAdmin); err != nil {
		return CommentView{}, err
	}
	c, err := s.getSellerComment(ctx, s.store, sellerID, commentID)
	if err != nil {
		return CommentView{}, err
	}
	if !isAdmin && !visibleTo(c, actor) {
		return CommentView{}, ErrNotFound
	}
	return viewOf(c), nil
}

// Update rewrites message and grade. Only the author or an admin may
// update; the approval state is left untouched.
func (s *CommentService) Update(ctx context.Context, sellerID, commentID uint64, message string, grade int, actor model.User) (CommentView, error) {
	if err := s.requireSeller(ctx, sellerID, true); err != nil {
		return CommentView{}, err
	}
	c, err := s.getSellerComment(ctx, s.store, sellerID, commentID)
	if err != nil {
		return CommentView{}, err
	}
	if !actor.IsAdmin() {
		if err := Authorize(c, actor); err != nil {
			return CommentView{}, err
		}
	}
	if err := validateComment(message, grade); err != nil {
		return CommentView{}, err
	}
	c.Message = strings.TrimSpace(message)
	c.Grade = grade
	if err := s.store.Comments().Update(ctx, c.ID, c.Message, c.Grade); err != nil {
		return CommentView{}, err
	}
	return viewOf(c), nil
}

// Delete removes a comment (author or admin) and recomputes the seller's
// aggregate in the same transaction.
func (s *CommentService) Delete(ctx context.Context, sellerID, commentID uint64, actor model.User) error {
	if err := s.requireSeller(ctx, sellerID, true); err != nil {
		return err
	}
	c, err := s.getSellerComment(ctx, s.store, sellerID, commentID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		if err := Authorize(c, actor); err != nil {
			return err
		}
	}
	return s.store.InTx(ctx, func(st repository.Store) error {
		if err := st.Comments().Delete(ctx, c.ID); err != nil {
			return err
		}
		return s.ratings.Recompute(ctx, st, sellerID)
	})
}

// Approve confirms (approve=true) or rejects (approve=false) a comment.
// Rejection deletes the row. Both branches change the approved set, so
// both recompute the rating.
func (s *CommentService) Approve(ctx context.Context, sellerID, commentID uint64, approve bool) (CommentView, error) {
	if err := s.requireSeller(ctx, sellerID, true); err != nil {
		return CommentView{}, err
	}
	c, err := s.getSellerComment(ctx, s.store, sellerID, commentID)
	if err != nil {
		return CommentView{}, err
	}
	err = s.store.InTx(ctx, func(st repository.Store) error {
		if approve {
			if err := st.Comments().SetApproved(ctx, c.ID, true); err != nil {
				return err
			}
			c.IsApproved = true
		} else {
			if err := st.Comments().Delete(ctx, c.ID); err != nil {
				return err
			}
		}
		return s.ratings.Recompute(ctx, st, sellerID)
	})
	if err != nil {
		return CommentView{}, err
	}
	return viewOf(c), nil
}

// visibleTo reports non-admin visibility: approved, or authored by actor.
func visibleTo(c model.Comment, actor *model.User) bool {
	if c.IsApproved {
		return true
	}
	return actor != nil && c.AuthorID != nil && *c.AuthorID == actor.ID
}

func validateComment(message string, grade int) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: message must not be empty", ErrInvalidArgument)
	}
	if grade < model.GradeMin || grade > model.GradeMax {
		return fmt.Errorf("%w: grade must be between %d and %d", ErrInvalidArgument, model.GradeMin, model.GradeMax)
	}
	return nil
}

// requireSeller checks the seller exists; admins may address inactive
// sellers, everyone else only activated ones.
func (s *CommentService) requireSeller(ctx context.Context, sellerID uint64, anyUser bool) error {
	u, err := s.store.Users().GetByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: seller %d", ErrNotFound, sellerID)
		}
		return err
	}
	if !anyUser && !u.Activated {
		return fmt.Errorf("%w: seller %d", ErrNotFound, sellerID)
	}
	return nil
}

func (s *CommentService) requireActiveSeller(ctx context.Context, sellerID uint64) error {
	return s.requireSeller(ctx, sellerID, false)
}

func (s *CommentService) getSellerComment(ctx context.Context, st repository.Store, sellerID, commentID uint64) (model.Comment, error) {
	c, err := st.Comments().GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Comment{}, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return model.Comment{}, err
	}
	if c.SellerID != sellerID {
		return model.Comment{}, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
	}
	return c, nil
}
