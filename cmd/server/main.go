package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sarahmorr016/RegimenPro-Scrape/config"
	httpDelivery "github.com/sarahmorr016/RegimenPro-Scrape/internal/delivery/http"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/domain"
	"github.com/sarahmorr016/RegimenPro-Scrape/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting RegimenPro-Scrape API v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize usecase layer
	matcher := usecase.NewFieldMatcher(usecase.MatchConfig{
		FuzzyThreshold:     cfg.Matching.FuzzyThreshold,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	reconciler := usecase.NewReconcileService(matcher)

	log.Printf("Matching: fuzzy threshold=%.2f, debug=%v",
		cfg.Matching.FuzzyThreshold, cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(reconciler, domain.ClockFunc(time.Now))

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

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
