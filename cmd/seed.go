package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the admin account and demo content when missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		result, err := db.Seed(cmd.Context(), cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin created: %t, skills created: %d, projects created: %d\n",
			result.AdminCreated, result.SkillsCreated, result.ProjectsCreated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
