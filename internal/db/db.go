package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lumina/internal/model"
)

// Dialector picks a GORM driver from the DSN: "postgres://" and "postgresql://" use pgx,
// "sqlite:<path>" uses SQLite, anything else (optionally prefixed "mysql://") is MySQL.
func Dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn)
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite:"))
	default:
		return mysql.Open(strings.TrimPrefix(dsn, "mysql://"))
	}
}

// Open returns a connected GORM DB instance.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables of every collection.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Project{},
		&model.Product{},
		&model.Inquiry{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
