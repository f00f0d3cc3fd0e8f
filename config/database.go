package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes the process-wide connection to the PostgreSQL
// database. It is called once at startup; handlers share the pool via GetDB.
func ConnectDatabase() error {
	cfg := GetConfig()
	if cfg == nil || cfg.DatabaseURL == "" {
		return fmt.Errorf("configuration not loaded or DATABASE_URL not set")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	Logger().Info("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
