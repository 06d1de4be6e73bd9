package main

import (
	"context"
	"log"

	"orderdesk/internal/config"
	"orderdesk/internal/model"
	"orderdesk/internal/repository"
	"orderdesk/internal/service"
	"orderdesk/internal/store"
)

// Seeds the configured store with a small sample catalogue for manual testing.
// Uses the same environment variables as the API server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	collections, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	products := service.NewProductService(repository.New(collections, logger), nil, logger)

	samples := []struct {
		name  string
		price float64
		stock int
	}{
		{"Widget", 10.00, 5},
		{"Gadget", 19.99, 12},
		{"Bidule", 0.10, 250},
		{"Machin", 149.50, 1},
	}

	for _, s := range samples {
		product, err := products.Create(ctx, model.ProductInput{Name: s.name, Price: s.price, Stock: float64(s.stock)})
		if err != nil {
			log.Fatalf("Failed to create %s: %v", s.name, err)
		}
		log.Printf("Created product %d: %s (%.2f, stock %d)", product.ID, product.Name, product.Price, product.Stock)
	}
}
