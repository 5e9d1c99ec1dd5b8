package main

import (
	"context"
	"log"
	"os"

	"github.com/johnquangdev/joyability/internal/infrastructure/database"
	"github.com/johnquangdev/joyability/pkg/config"
)

// Drops expired rows from the SQLite history store.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.History.Backend != "sqlite" {
		log.Printf("ℹ️  HISTORY_BACKEND is %q, nothing to purge", cfg.History.Backend)
		os.Exit(0)
	}

	ctx := context.Background()
	store, err := database.NewSQLiteStore(ctx, cfg.History.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	log.Printf("✅ Database opened: %s", cfg.History.SQLitePath)
	log.Println("🔄 Purging expired entries...")

	n, err := store.Purge(ctx)
	if err != nil {
		log.Fatalf("Failed to purge: %v", err)
	}

	log.Printf("✅ Purged %d expired entr(ies)", n)
}
