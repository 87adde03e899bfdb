package database

import (
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/config"
)

// OpenMemory opens a private in-memory database with migrations applied.
// Used by repository tests and local tooling.
func OpenMemory(migrations fs.FS) (*gorm.DB, error) {
	cfg := &config.DatabaseConfig{Path: "memory:" + uuid.NewString()}
	db, err := NewDB(cfg, "warn", zap.NewNop())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(sqlDB, migrations, zap.NewNop()); err != nil {
		return nil, fmt.Errorf("migrate memory database: %w", err)
	}
	return db, nil
}
