package main

import (
	"context"
	"log"

	"timehair/internal/config"
	"timehair/internal/database"
	jwtsvc "timehair/internal/pkg/jwt"
	"timehair/internal/realtime"
	"timehair/internal/server"
)

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
		log.Fatalf("storage seed failed err=%v", err)
	}

	hub := realtime.NewHub()
	defer hub.Close()

	r := server.NewRouter(cfg, store, jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL), hub)

	log.Printf("listening addr=%s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
