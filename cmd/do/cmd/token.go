package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/templui/tripjournal/internal/identity"
	"github.com/templui/tripjournal/internal/model"
)

// TokenCmd mints bearer tokens for local testing with AUTH_MODE=hmac
func TokenCmd() *cobra.Command {
	var (
		ident model.Identity
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}

			token, err := identity.NewHMACVerifier(secret).Sign(&ident, ttl)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&ident.UID, "uid", "dev-user", "subject id")
	cmd.Flags().StringVar(&ident.Email, "email", "dev@example.com", "email claim")
	cmd.Flags().StringVar(&ident.Name, "name", "", "name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
