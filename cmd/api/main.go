package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"employee-portal/config"
	"employee-portal/internal/bootstrap"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Starting application... loading .env")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env not found, using system environment variables.")
	}

	cfg := config.Load()

	fmt.Printf("2. Connecting storage (%s) and sessions (%s)...\n", cfg.StorageDriver, cfg.SessionDriver)
	container, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer container.Close()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		fmt.Println("Shutting down...")
		if err := container.App.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	fmt.Printf("3. Server ready, listening on :%s\n", cfg.Port)
	if err := container.App.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
