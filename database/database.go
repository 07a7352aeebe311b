package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db          *gorm.DB
	projectRepo *ProjectRepo
	skillRepo   *SkillRepo
	contactRepo *ContactRepo
	userRepo    *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		projectRepo: NewProjectRepo(db),
		skillRepo:   NewSkillRepo(db),
		contactRepo: NewContactRepo(db),
		userRepo:    NewUserRepo(db),
	}
}

// Open connects to the database selected by cfg.DBType. Reads are spread over
// DATABASE_REPLICA_URLS when any are configured.
func Open(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  cfg.IsDevelopment(),
		},
	)

	var dialector gorm.Dialector
	switch cfg.DBType {
	case "supa":
		dialector = postgres.New(postgres.Config{DSN: cfg.Supabase.DSN(), PreferSimpleProtocol: true})
	case "postgres":
		dialector = postgres.New(postgres.Config{DSN: cfg.DatabaseURL, PreferSimpleProtocol: true})
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating sqlite directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if len(cfg.DatabaseReplicaURLs) > 0 && cfg.DBType != "sqlite" {
		replicas := make([]gorm.Dialector, 0, len(cfg.DatabaseReplicaURLs))
		for _, dsn := range cfg.DatabaseReplicaURLs {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
	}

	return db, nil
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Ping checks the underlying connection pool
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
