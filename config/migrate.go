package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
)

// Models lists every table in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.Review{},
	}
}

// Migrate creates or updates every table and index. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	// Users tables created before profile images existed get the column added in place
	if db.Migrator().HasTable(&models.User{}) {
		if err := addColumnIfMissing(db, &models.User{}, "ProfileImage"); err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}

// addColumnIfMissing adds field's column and treats "column already exists" as success
func addColumnIfMissing(db *gorm.DB, model interface{}, field string) error {
	if err := db.Migrator().AddColumn(model, field); err != nil {
		if isDuplicateColumn(err) {
			return nil
		}
		return fmt.Errorf("failed to add column %s: %w", field, err)
	}
	return nil
}

// isDuplicateColumn matches the duplicate column errors of both SQLite and PostgreSQL
func isDuplicateColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") ||
		strings.Contains(msg, "already exists")
}
