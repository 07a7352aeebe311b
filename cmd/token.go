package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")
		subject, _ := cmd.Flags().GetString("subject")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if r := models.Role(role); r != models.RoleAdmin && r != models.RoleUser {
			return fmt.Errorf("unknown role %q", role)
		}
		if subject == "" {
			subject = uuid.NewString()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ResolveJWTSecret(cmd.Context(), nil); err != nil {
			return err
		}

		tokens, err := auth.NewTokenService(cfg.JWTSecret)
		if err != nil {
			return err
		}

		token, err := tokens.Issue(auth.Identity{UserID: subject, Email: email, Role: models.Role(role)})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("email", "", "Email claim")
	tokenCmd.Flags().String("role", string(models.RoleAdmin), "Role claim (admin or user)")
	tokenCmd.Flags().String("subject", "", "Subject / user id claim, random when empty")
	rootCmd.AddCommand(tokenCmd)
}
