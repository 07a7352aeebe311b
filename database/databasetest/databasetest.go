// Package databasetest opens throwaway migrated databases for tests.
package databasetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory sqlite database private to t.
func Open(t testing.TB) (database.Database, *gorm.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	// one connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	d := database.New(db)
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return d, db
}
