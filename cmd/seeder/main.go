package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"employee-portal/config"
	"employee-portal/internal/database"
	"employee-portal/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for the randomized fixtures")
	flag.Parse()

	fmt.Println("Starting database seeding...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found, using system environment variables.")
	}

	cfg := config.Load()
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	fmt.Println("Running SeedAll...")
	if err := database.SeedAll(context.Background(), repository.NewGormSet(db), database.SeedOptions{Seed: *seed}); err != nil {
		log.Fatalf("seed: %v", err)
	}

	fmt.Println("Seeding done!")
}
