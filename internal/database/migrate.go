package database

import (
	"gorm.io/gorm"

	"timehair/internal/repository"
)

// Migrate creates or updates every table, including the partial unique
// index on active member phones and the one-session-per-seat index.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(repository.Models()...)
}
