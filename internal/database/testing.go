package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectTest opens an in-memory SQLite database and migrates the full schema.
// Each call returns an isolated database (unique shared-cache name), so test
// suites never share state. SQLite supports the ON CONFLICT DO NOTHING form
// the like repository relies on, which keeps the repository and end-to-end
// suites runnable without a Postgres instance.
func ConnectTest() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory sqlite: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
