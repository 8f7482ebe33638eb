package database

import (
	"fmt"

	"blogify/internal/models"

	"gorm.io/gorm"
)

// migratedModels lists every persisted model in dependency order.
func migratedModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	}
}

// Migrate runs GORM auto-migration for all application models and creates the
// functional index backing case-insensitive username uniqueness.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(migratedModels()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// Usernames are unique case-insensitively. The column's own unique index
	// covers the exact-case path; this one closes the Alice/alice gap.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username))",
	).Error; err != nil {
		return fmt.Errorf("failed to create lower-username index: %w", err)
	}

	return nil
}
