package main

import (
	"log"
	"os"

	"inkwell/internal/assets"
	"inkwell/internal/cache"
	"inkwell/internal/db"
	"inkwell/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	database := db.Init()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	store, err := assets.NewDiskStore(uploadDir)
	if err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	detailCache, err := cache.New(500)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}

	r := gin.Default()

	// Uploaded post images are served straight off disk
	r.Static("/uploads", uploadDir)

	router.RegisterRoutes(r, database, store, detailCache, secret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
