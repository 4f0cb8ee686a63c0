package main

import (
	"context"
	"log"

	"timehair/internal/config"
	"timehair/internal/database"
)

// seed prepares a fresh store (admin account, default staff, seats) without
// starting the API server. Existing rows are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := database.Open(cfg.DSN(), cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("storage open failed storage=%s err=%v", cfg.StorageLabel(), err)
	}
	defer store.Close()

	err = database.Seed(context.Background(), store, database.SeedOptions{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		BcryptCost:    cfg.BcryptCost,
		SeatCount:     cfg.SeatCount,
	})
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed completed storage=%s seats=%d", cfg.StorageLabel(), cfg.SeatCount)
}
