// Package storage keeps gjcli's local trophy event history in SQLite.
// Credentials are never written here.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultDBPath = "gjcli.db"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Storage struct {
	db *gorm.DB
}

// NewStorage opens (and migrates) the database file at path.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		path = defaultDBPath
	}
	return open(fmt.Sprintf("file:%s?cache=shared", path))
}

func open(dsn string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := migrate(context.Background(), sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// migrate applies every pending migration under migrations/.
func migrate(ctx context.Context, db *sql.DB) error {
	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return errors.Wrap(err, "failed to load migrations")
	}
	if _, err := provider.Up(ctx); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
