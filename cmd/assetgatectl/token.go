package main

import (
	"fmt"

	"github.com/spf13/cobra"

	jwttoken "assetgate/internal/jwt_token"
	"assetgate/internal/platform/config"
	"assetgate/pkg/domain"
)

// CmdToken issues an admin bearer token for a caller address, signed with the
// server's ASSETGATE_JWT_* settings.
func CmdToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin bearer token acting as --caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rawCaller, _ := cmd.Flags().GetString("caller")
			caller, err := domain.ParseAddress(rawCaller)
			if err != nil {
				return fmt.Errorf("--caller: %w", err)
			}
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}

			svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
			token, err := svc.GenerateAccessToken(caller, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().String("caller", "", "address the token acts as (owner or agent)")
	cmd.Flags().Duration("ttl", 0, "token lifetime (defaults to ASSETGATE_JWT_TTL)")
	_ = cmd.MarkFlagRequired("caller")

	return cmd
}
