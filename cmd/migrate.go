package cmd

import (
	"fmt"
	"os"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables for every model",
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
		log.Info().Msg("Migrations applied")
		return nil
	},
}

var migrateReportCmd = &cobra.Command{
	Use:   "report",
	Short: "List database columns that no model accounts for",
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

		reports, err := db.ColumnMismatchReport(cmd.Context())
		if err != nil {
			return err
		}
		database.WriteColumnReport(os.Stdout, reports)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateReportCmd)
	rootCmd.AddCommand(migrateCmd)
}
