package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"eventradar/internal/adapters/auth"
)

var (
	tokenUID    string
	tokenExpiry time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	Long: `Mint an HS256 bearer token for the given user ID, signed with JWT_SECRET.

Example:
  eventradar token --uid u-123 --expiry 2h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		if tokenUID == "" {
			return errors.New("--uid is required")
		}
		token, err := auth.NewJWTIssuer(secret).Issue(tokenUID, tokenExpiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUID, "uid", "", "user ID placed in the token subject")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", time.Hour, "token lifetime")
}
