package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/layby/internal/auth"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		for _, name := range []string{"user", "role", "shop", "ttl"} {
			f := tokenCmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})

	err := rootCmd.Execute()

	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "layby")

	user, shop := uuid.New(), uuid.New()

	out, err := runCLI(t, "token", "--user", user.String(), "--role", "SHOP_ADMIN", "--shop", shop.String())
	require.NoError(t, err)

	got, err := auth.NewTokens("cli-secret", "layby", 0).Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, user, got.UserID)
	assert.Equal(t, auth.RoleShopAdmin, got.Role)
	require.NotNil(t, got.ShopID)
	assert.Equal(t, shop, *got.ShopID)
}

func TestTokenCommand_Rejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	tests := []struct {
		name string
		args []string
	}{
		{name: "BadUser", args: []string{"token", "--user", "nope"}},
		{name: "BadRole", args: []string{"token", "--user", uuid.NewString(), "--role", "KING"}},
		{name: "AdminWithoutShop", args: []string{"token", "--user", uuid.NewString(), "--role", "SHOP_ADMIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
