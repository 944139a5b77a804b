package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/minizon/minizon/internal/ai"
	"github.com/minizon/minizon/internal/database"
	"github.com/minizon/minizon/internal/handlers"
	"github.com/minizon/minizon/internal/routes"
	"github.com/minizon/minizon/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := database.RunMigrations(db, migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	app := &handlers.Handlers{
		Users:     &store.UserStore{DB: db},
		Catalog:   &store.CatalogStore{DB: db},
		Inventory: &store.InventoryStore{DB: db},
		Cart:      &store.CartStore{DB: db},
		Orders:    &store.OrderStore{DB: db},
		Ratings:   &store.RatingStore{DB: db},
	}

	// The description suggester is optional; without a key the endpoint
	// reports the feature as disabled.
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		suggester, err := ai.NewSuggester(context.Background(), geminiKey)
		if err != nil {
			log.Fatalf("Failed to initialize description suggester: %v", err)
		}
		defer suggester.Close()
		app.Suggester = suggester
	} else {
		log.Println("GEMINI_API_KEY not set; description suggestions disabled")
	}

	router := routes.SetupRouter(app)

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Printf("Starting Minizon API server on %s...", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
