package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// ErrDirtySchema a previous migration failed halfway; fix by hand, then force the version
var ErrDirtySchema = errors.New("database schema is dirty")

// RunMigrations brings the schema up to the newest migration at the root
// of migrations (each service embeds its own numbered *.up.sql / *.down.sql).
// It refuses to touch a dirty schema.
func RunMigrations(db *sql.DB, migrations fs.FS, logger *zap.Logger) error {
	src, err := iofs.New(migrations, ".")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}
	// m.Close is not called: it would close db, which the caller owns.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}

	from, dirty, err := version(m)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("%w at version %d", ErrDirtySchema, from)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("database schema up to date", zap.Uint("version", from))
			return nil
		}
		return fmt.Errorf("apply migrations from version %d: %w", from, err)
	}

	to, _, err := version(m)
	if err != nil {
		return err
	}
	logger.Info("database migrated", zap.Uint("from", from), zap.Uint("to", to))
	return nil
}

// version the applied version; 0 for a fresh database
func version(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return v, dirty, nil
}
