package main

import (
	"context"
	"log"
	"os"

	"jewelryshop/internal/config"
	"jewelryshop/internal/db"
	slotrepo "jewelryshop/internal/repository/slot"
	"jewelryshop/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	slots := slotrepo.NewPostgres(pool, logger)
	if err := seed.Apply(ctx, slots); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
