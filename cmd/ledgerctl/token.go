package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/layby/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API bearer token",
	Example: `  # Token for a shop admin
  ledgerctl token --user 6f1c... --role SHOP_ADMIN --shop 0b7e...

  # Owner token valid for one hour
  ledgerctl token --user 6f1c... --role OWNER --ttl 1h`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "User ID the token is issued to")
	tokenCmd.Flags().String("role", string(auth.RoleShopAdmin), "OWNER, SHOP_ADMIN, STAFF or COLLECTOR")
	tokenCmd.Flags().String("shop", "", "Shop ID the user belongs to")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default JWT_TTL)")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, _ []string) error {
	if cfg.Auth.Secret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	userFlag, _ := cmd.Flags().GetString("user")
	roleFlag, _ := cmd.Flags().GetString("role")
	shopFlag, _ := cmd.Flags().GetString("shop")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	userID, err := uuid.Parse(userFlag)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}

	actor := auth.Actor{UserID: userID, Role: auth.Role(roleFlag)}
	if !actor.Role.Valid() {
		return fmt.Errorf("invalid --role %q", roleFlag)
	}

	if shopFlag != "" {
		shopID, err := uuid.Parse(shopFlag)
		if err != nil {
			return fmt.Errorf("invalid --shop: %w", err)
		}

		actor.ShopID = &shopID
	}

	if actor.Role == auth.RoleShopAdmin && actor.ShopID == nil {
		return errors.New("--shop is required for SHOP_ADMIN")
	}

	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	tok, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.Issuer, ttl).Issue(actor, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)

	return nil
}
