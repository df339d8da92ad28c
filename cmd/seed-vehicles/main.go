package main

import (
	"context"
	"flag"
	"log"
	"os"

	"vehicle-search-service/internal/adapters/postgres"
	"vehicle-search-service/internal/configs"
	"vehicle-search-service/internal/seed"
)

func main() {
	count := flag.Int("count", 250, "number of vehicles to generate")
	randomSeed := flag.Int64("seed", 42, "random seed (same seed, same inventory)")
	flag.Parse()

	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	catalog, err := seed.LoadCatalog()
	if err != nil {
		log.Printf("Failed to load vehicle catalog: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Database.URL})
	if err != nil {
		log.Printf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	vehicles := seed.NewGenerator(catalog, *randomSeed).Generate(*count)
	if err := seed.Insert(ctx, pool, vehicles); err != nil {
		log.Printf("Failed to insert vehicles: %v", err)
		os.Exit(1)
	}

	log.Printf("Inserted %d vehicles", len(vehicles))
}
