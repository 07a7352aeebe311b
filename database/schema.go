package database

import (
	"context"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

// Models lists every persisted model, in migration order
func Models() []any {
	return []any{
		&models.User{},
		&models.Project{},
		&models.Skill{},
		&models.ContactMessage{},
	}
}

// Migrate creates or alters tables to match the models
func (d Database) Migrate(ctx context.Context) error {
	migrateDB := d.db.WithContext(ctx).Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := migrateDB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrating models: %w", err)
	}
	return nil
}

// TableColumnReport lists the live columns of one table that no model field maps to
type TableColumnReport struct {
	Table      string
	Exists     bool
	Mismatches []string
}

// ColumnMismatchReport compares database columns with the Go models
func (d Database) ColumnMismatchReport(ctx context.Context) ([]TableColumnReport, error) {
	db := d.db.WithContext(ctx)
	migrator := db.Migrator()

	reports := make([]TableColumnReport, 0, len(Models()))
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parsing model %T: %w", model, err)
		}
		report := TableColumnReport{Table: stmt.Schema.Table}

		if !migrator.HasTable(model) {
			reports = append(reports, report)
			continue
		}
		report.Exists = true

		columnTypes, err := migrator.ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", report.Table, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		report.Mismatches = findColumnMismatches(dbColumns, stmt.Schema.DBNames)
		reports = append(reports, report)
	}
	return reports, nil
}

// WriteColumnReport prints reports in a human readable form
func WriteColumnReport(w io.Writer, reports []TableColumnReport) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, report := range reports {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", report.Table)
		switch {
		case !report.Exists:
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
		case len(report.Mismatches) > 0:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(report.Mismatches))
			for _, col := range report.Mismatches {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			totalMismatches += len(report.Mismatches)
		default:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}
