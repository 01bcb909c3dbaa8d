package service

import "github.com/iliyamo/marketplace-reputation/internal/model"

// Ownable is the capability a resource exposes to take part in ownership
// checks. A nil owner means the owning account was deleted; nobody owns
// the resource then. New resource kinds join the authorization oracle by
// implementing this interface, not by adding branches to Authorize.
type Ownable interface {
	OwnerID() *uint64
}

// Authorize permits the actor to touch the resource only when the actor
// is its owner. Administrator bypass is decided by callers before the
// ownership check, so the rule here stays uniform across resource kinds.
func Authorize(res Ownable, actor model.User) error {
	owner := res.OwnerID()
	if owner == nil || *owner != actor.ID {
		return ErrForbidden
	}
	return nil
}
