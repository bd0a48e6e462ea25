package database

import (
	"fmt"
	"log"

	"github.com/pageza/dietwise/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the document table
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running auto-migration on %s", db.Dialector.Name())
	if err := db.AutoMigrate(&models.Document{}); err != nil {
		return fmt.Errorf("failed to migrate documents: %w", err)
	}
	return nil
}
