package db

import (
	"log"
	"os"

	"inkwell/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the database connection and migrates the schema.
func Init() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=inkwell port=5432 sslmode=disable"
	}

	database, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	return database
}

// Config is the gorm configuration for every connection, production and
// tests alike. References between records are resolved at read time by the
// handlers; the schema carries no foreign key constraints, so deleting a
// category or a post leaves dangling references rather than blocking or
// cascading.
func Config() *gorm.Config {
	return &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true}
}

// Migrate runs AutoMigrate over every model. Shared with tests, which
// migrate an in-memory sqlite database instead of postgres.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
	)
}
