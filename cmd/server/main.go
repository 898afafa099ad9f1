package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/promoprecio/backend/config"
	httpDelivery "github.com/promoprecio/backend/internal/delivery/http"
	"github.com/promoprecio/backend/internal/infrastructure/cache"
	"github.com/promoprecio/backend/internal/infrastructure/postgres"
	"github.com/promoprecio/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PromoPreço Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}
	log.Printf("Database connected (max conns: %d)", cfg.Database.MaxConns)

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	products := postgres.NewProductRepository(pool)
	establishments := postgres.NewEstablishmentRepository(pool)
	prices := postgres.NewPriceRepository(pool)
	lists := postgres.NewShoppingListRepository(pool)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(products, establishments, usecase.SearchServiceConfig{
		ScoreThreshold:     cfg.Search.ScoreThreshold,
		FuzzyLimit:         cfg.Search.FuzzyLimit,
		MaxCandidates:      cfg.Search.MaxCandidates,
		EnableDebugLogging: cfg.Search.EnableDebugLogging,
	})
	catalogService := usecase.NewCatalogService(products, establishments, prices)
	priceService := usecase.NewPriceService(prices, products, searchService)
	listService := usecase.NewListService(lists, products, prices)

	log.Printf("Search: threshold=%d%%, fuzzy limit=%d, debug=%v",
		cfg.Search.ScoreThreshold,
		cfg.Search.FuzzyLimit,
		cfg.Search.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, searchService, priceService, listService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, memoryCache)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
