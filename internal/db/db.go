package db

import (
	"fmt"
	"log"
	"os"

	"rentvoice/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and runs migrations. The handle is owned by the
// caller and injected into services; there is no package-level connection.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=rentvoice port=5432 sslmode=disable"
	}

	// TranslateError lets services recognize unique-index violations
	// (duplicate address race in the resolver) as gorm.ErrDuplicatedKey.
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Println("Database connection established")

	err = conn.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Review{},
		&models.HelpfulnessVote{},
		&models.Report{},
		&models.Notification{},
		&models.SavedProperty{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Println("Database migration completed")

	return conn, nil
}
