package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrForbidden       = errors.New("actor lacks confirm authority for this shop")
	ErrUnauthenticated = errors.New("no authenticated actor")
	ErrOutsideShop     = fmt.Errorf("%w: actor does not belong to this shop", ErrForbidden)
)

type Role string

const (
	RoleOwner     Role = "OWNER"      // business owner, every shop of the business
	RoleShopAdmin Role = "SHOP_ADMIN" // one shop
	RoleStaff     Role = "STAFF"
	RoleCollector Role = "COLLECTOR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleShopAdmin, RoleStaff, RoleCollector:
		return true
	}

	return false
}

// Actor is the identity the session layer attaches to every ledger call.
type Actor struct {
	UserID uuid.UUID
	Role   Role
	ShopID *uuid.UUID
}

// CanConfirm reports whether the actor may resolve awaiting payments and
// deposits of the given shop, or record payments that are effective at once.
func (a Actor) CanConfirm(shopID uuid.UUID) bool {
	switch a.Role {
	case RoleOwner:
		return true
	case RoleShopAdmin:
		return a.ShopID != nil && *a.ShopID == shopID
	}

	return false
}

func (a Actor) RequireConfirm(shopID uuid.UUID) error {
	if !a.CanConfirm(shopID) {
		return ErrForbidden
	}

	return nil
}

// BelongsTo reports whether the actor works for the given shop. Owners belong
// to every shop of the business.
func (a Actor) BelongsTo(shopID uuid.UUID) bool {
	if a.Role == RoleOwner {
		return true
	}

	return a.ShopID != nil && *a.ShopID == shopID
}

func (a Actor) RequireMember(shopID uuid.UUID) error {
	if !a.BelongsTo(shopID) {
		return ErrOutsideShop
	}

	return nil
}

type ctxKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (Actor, error) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	if !ok {
		return Actor{}, ErrUnauthenticated
	}

	return a, nil
}
