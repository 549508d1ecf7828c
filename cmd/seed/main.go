package main

import (
	"context"
	"flag"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/config"
	"github.com/Hariprajaa05/Farmer-project/internal/database"
	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
	"github.com/Hariprajaa05/Farmer-project/internal/seed"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	file := flag.String("file", "fixtures/seed.yaml", "path to YAML fixture")
	flag.Parse()

	cfg := config.Load(*configPath)
	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	fixture, err := seed.LoadFile(*file)
	if err != nil {
		logger.Fatal("Failed to load fixture %s: %v", *file, err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := seed.Apply(ctx, repository.New(db), fixture); err != nil {
		logger.Error("Seeding failed, nothing was written: %v", err)
		return
	}
}
