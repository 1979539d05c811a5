// Package authz holds the permission predicates guarding mutations.
//
// Predicates are pure functions of an Actor and a record. Handlers and
// services compose them into a Chain of Checks, which runs in order and
// stops at the first failure.
package authz

import (
	"github.com/adboard/adboard-api/internal/domain"
)

// Actor is the authenticated caller. The zero value is anonymous.
type Actor struct {
	ID   int64
	Role domain.Role
}

// Anonymous reports whether no user is authenticated.
func (a Actor) Anonymous() bool {
	return a.ID <= 0
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return !a.Anonymous() && a.Role == domain.RoleAdmin
}

// CanMutateAd reports whether actor may update or delete ad.
func CanMutateAd(actor Actor, ad *domain.Ad) bool {
	return actor.IsAdmin() || (!actor.Anonymous() && actor.ID == ad.AuthorID)
}

// CanMutateSelection reports whether actor may change sel.
func CanMutateSelection(actor Actor, sel *domain.Selection) bool {
	return actor.IsAdmin() || (!actor.Anonymous() && actor.ID == sel.OwnerID)
}

// CanMutateUser reports whether actor may update or delete the user with
// id userID.
func CanMutateUser(actor Actor, userID int64) bool {
	return actor.IsAdmin() || (!actor.Anonymous() && actor.ID == userID)
}

// Check is one step of an authorization chain.
type Check func() error

// Chain runs checks in order and returns the first error.
func Chain(checks ...Check) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// Authenticated fails with domain.ErrUnauthorized for an anonymous actor.
func Authenticated(actor Actor) Check {
	return func() error {
		if actor.Anonymous() {
			return domain.ErrUnauthorized
		}
		return nil
	}
}

// AdOwnerOrAdmin fails with domain.ErrForbidden unless actor authored ad or is an admin.
func AdOwnerOrAdmin(actor Actor, ad *domain.Ad) Check {
	return func() error {
		if !CanMutateAd(actor, ad) {
			return domain.ErrForbidden
		}
		return nil
	}
}

// SelectionOwnerOrAdmin fails with domain.ErrForbidden unless actor owns sel or is an admin.
func SelectionOwnerOrAdmin(actor Actor, sel *domain.Selection) Check {
	return func() error {
		if !CanMutateSelection(actor, sel) {
			return domain.ErrForbidden
		}
		return nil
	}
}

// UserSelfOrAdmin fails with domain.ErrForbidden unless actor is the user
// with id userID or an admin.
func UserSelfOrAdmin(actor Actor, userID int64) Check {
	return func() error {
		if !CanMutateUser(actor, userID) {
			return domain.ErrForbidden
		}
		return nil
	}
}

// RoleGrant fails with domain.ErrForbidden when a non-admin asks for a role
// other than current. A nil requested role never fails.
func RoleGrant(actor Actor, current domain.Role, requested *domain.Role) Check {
	return func() error {
		if requested == nil || *requested == current || actor.IsAdmin() {
			return nil
		}
		return domain.ErrForbidden
	}
}
