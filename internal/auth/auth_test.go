package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/layby/internal/auth"
)

func TestActor_CanConfirm(t *testing.T) {
	shop := uuid.New()
	other := uuid.New()

	tests := []struct {
		name  string
		actor auth.Actor
		shop  uuid.UUID
		want  bool
	}{
		{name: "Owner", actor: auth.Actor{Role: auth.RoleOwner}, shop: shop, want: true},
		{name: "AdminOwnShop", actor: auth.Actor{Role: auth.RoleShopAdmin, ShopID: &shop}, shop: shop, want: true},
		{name: "AdminOtherShop", actor: auth.Actor{Role: auth.RoleShopAdmin, ShopID: &other}, shop: shop, want: false},
		{name: "AdminWithoutShop", actor: auth.Actor{Role: auth.RoleShopAdmin}, shop: shop, want: false},
		{name: "Collector", actor: auth.Actor{Role: auth.RoleCollector, ShopID: &shop}, shop: shop, want: false},
		{name: "Staff", actor: auth.Actor{Role: auth.RoleStaff, ShopID: &shop}, shop: shop, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.actor.CanConfirm(tt.shop))

			if tt.want {
				assert.NoError(t, tt.actor.RequireConfirm(tt.shop))
			} else {
				assert.ErrorIs(t, tt.actor.RequireConfirm(tt.shop), auth.ErrForbidden)
			}
		})
	}
}

func TestActor_BelongsTo(t *testing.T) {
	shop := uuid.New()
	other := uuid.New()

	tests := []struct {
		name  string
		actor auth.Actor
		want  bool
	}{
		{name: "Owner", actor: auth.Actor{Role: auth.RoleOwner}, want: true},
		{name: "AdminOwnShop", actor: auth.Actor{Role: auth.RoleShopAdmin, ShopID: &shop}, want: true},
		{name: "CollectorOwnShop", actor: auth.Actor{Role: auth.RoleCollector, ShopID: &shop}, want: true},
		{name: "StaffOwnShop", actor: auth.Actor{Role: auth.RoleStaff, ShopID: &shop}, want: true},
		{name: "CollectorOtherShop", actor: auth.Actor{Role: auth.RoleCollector, ShopID: &other}, want: false},
		{name: "AdminOtherShop", actor: auth.Actor{Role: auth.RoleShopAdmin, ShopID: &other}, want: false},
		{name: "StaffWithoutShop", actor: auth.Actor{Role: auth.RoleStaff}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.actor.BelongsTo(shop))

			if tt.want {
				assert.NoError(t, tt.actor.RequireMember(shop))
			} else {
				err := tt.actor.RequireMember(shop)
				assert.ErrorIs(t, err, auth.ErrOutsideShop)
				assert.ErrorIs(t, err, auth.ErrForbidden)
			}
		})
	}
}

func TestContext(t *testing.T) {
	_, err := auth.FromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	a := auth.Actor{UserID: uuid.New(), Role: auth.RoleCollector}
	got, err := auth.FromContext(auth.WithActor(context.Background(), a))
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := auth.NewTokens("0123456789abcdef0123456789abcdef", "layby", time.Hour)
	shop := uuid.New()
	a := auth.Actor{UserID: uuid.New(), Role: auth.RoleShopAdmin, ShopID: &shop}

	raw, err := tokens.Issue(a, time.Now())
	require.NoError(t, err)

	got, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, a.UserID, got.UserID)
	assert.Equal(t, a.Role, got.Role)
	require.NotNil(t, got.ShopID)
	assert.Equal(t, shop, *got.ShopID)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := auth.NewTokens("0123456789abcdef0123456789abcdef", "layby", time.Hour)
	a := auth.Actor{UserID: uuid.New(), Role: auth.RoleOwner}

	expired, err := tokens.Issue(a, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = tokens.Parse(expired)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	foreign, err := auth.NewTokens("another-secret-another-secret-xx", "layby", time.Hour).Issue(a, time.Now())
	require.NoError(t, err)

	_, err = tokens.Parse(foreign)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
