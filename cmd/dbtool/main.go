package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/adapters/repositories"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/app"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/config"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/db"
	"github.com/joho/godotenv"
)

// dbtool prepares a sqlite or postgres database: schema plus seed data.
// Seeding is skipped when the clients table already has rows.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Store == config.StoreMemory {
		log.Fatal("STORE must be sqlite or postgres")
	}

	ctx := context.Background()

	log.Println("Initializing database schema...")
	conn, dialect, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	defer conn.Close()
	log.Println("Schema ready.")

	if err := seed(ctx, conn, dialect, cfg); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}

func seed(ctx context.Context, conn *sql.DB, dialect db.Dialect, cfg *config.Config) error {
	clients, zones, err := app.SeedData(cfg)
	if err != nil {
		return err
	}

	log.Println("Seeding database...")
	seeded, err := repositories.SeedIfEmpty(ctx, conn, dialect, clients, zones)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if !seeded {
		log.Println("Database already has clients, nothing to seed.")
		return nil
	}
	log.Printf("Seeding complete. clients=%d zones=%d", len(clients), len(zones))

	return nil
}
