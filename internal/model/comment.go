package model

import "time"

// Grade bounds for a comment. Enforced on create and on update.
const (
	GradeMin = 1
	GradeMax = 5
)

// Comment is buyer feedback about a seller. AuthorID is nullable: it is
// cleared when the authoring account is deleted, while the comment itself
// survives. A comment starts unapproved and becomes publicly visible only
// once an administrator approves it.
type Comment struct {
	ID         uint64    // comments.id
	Message    string    // comments.message
	Grade      int       // comments.grade (1..5)
	AuthorID   *uint64   // comments.author_id (nullable)
	SellerID   uint64    // comments.seller_id
	IsApproved bool      // comments.is_approved
	CreatedAt  time.Time // comments.created_at
}

// OwnerID exposes the comment's author for ownership checks. A nil result
// means the author account no longer exists and nobody owns the comment.
func (c Comment) OwnerID() *uint64 { return c.AuthorID }
