package database

import (
	"log"

	"github.com/optcg-tools/catalog/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the SQLite database at dbPath and ensures the schema
// exists. AutoMigrate is non-destructive: a fresh file gets empty sets/cards
// tables, an existing file is left as-is.
func Initialize(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	log.Println("Database connected successfully")

	// sets before cards: cards carries the FK
	err = DB.AutoMigrate(&models.Set{}, &models.Card{})
	if err != nil {
		return err
	}

	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// ResetSchema drops and recreates both tables. Destructive and idempotent:
// always yields an empty, correctly shaped database. Drop order matters,
// cards references sets.
func ResetSchema(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&models.Card{}); err != nil {
		return err
	}
	if err := db.Migrator().DropTable(&models.Set{}); err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.Set{}, &models.Card{}); err != nil {
		return err
	}
	log.Println("Database schema reset")
	return nil
}
