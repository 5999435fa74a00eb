package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/reddit-api/internal/models"
)

// New opens a GORM connection from a DATABASE_URL. Postgres is the
// production target; sqlite keeps local development and tests
// self-contained.
func New(databaseURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(databaseURL, "postgres://"):
		dialector = postgres.Open(databaseURL)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		dsn := strings.TrimPrefix(databaseURL, "sqlite://")
		// FK enforcement is off by default in sqlite; cascades need it.
		if !strings.Contains(dsn, "_pragma") {
			dsn += "?_pragma=foreign_keys(1)"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q: must start with postgres:// or sqlite://", databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Msg("✅ Database connected successfully")
	return db, nil
}

var tables = []any{
	&models.User{},
	&models.Subreddit{},
	&models.SubredditFollow{},
	&models.Post{},
	&models.Comment{},
	&models.PostUpvote{},
	&models.CommentUpvote{},
}

// Migrate creates or updates the schema and enables the extensions the
// ranked search queries rely on.
func Migrate(db *gorm.DB) error {
	if err := EnableExtensions(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	return nil
}

// Drop removes every table, dependents first.
func Drop(db *gorm.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops and recreates the schema.
func Reset(db *gorm.DB) error {
	if err := Drop(db); err != nil {
		return err
	}
	return Migrate(db)
}

// EnableExtensions turns on pg_trgm, which provides the similarity()
// score used by subreddit and post search. No-op on sqlite.
func EnableExtensions(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error
}

func DisableExtensions(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec("DROP EXTENSION IF EXISTS pg_trgm").Error
}

// Health checks the database connection by pinging it and reports pool
// statistics.
func Health(db *gorm.DB) map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats := make(map[string]string)

	sqlDB, err := db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db error: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	dbStats := sqlDB.Stats()
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}
