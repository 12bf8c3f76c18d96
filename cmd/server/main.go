/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the hour tracker server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env honored locally)
  2. Parse command-line flags (override the environment)
  3. Initialize SQLite store and seed the default shift templates
  4. Load the tax-year policy (JSON file, or the built-in table)
  5. Create API handler and router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port        HTTP server port (default: 8080 or $PORT)
  -db          SQLite database path (default: hourtracker.db or $DB_PATH)
               Use ":memory:" for in-memory database
  -tax-policy  JSON tax-year policy file; empty uses the built-in table

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/hourtracker.db"

  # Run with a future tax year
  ./server -tax-policy="./policies/2027.json"

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dxp/hourtracker/api"
	"github.com/dxp/hourtracker/config"
	"github.com/dxp/hourtracker/factory"
	"github.com/dxp/hourtracker/store/sqlite"
	"github.com/dxp/hourtracker/tax"
)

func main() {
	cfg := config.Load()

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	taxPolicyPath := flag.String("tax-policy", cfg.TaxPolicyPath, "JSON tax-year policy file (empty: built-in table)")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if err := store.SeedDefaultShiftTypes(context.Background()); err != nil {
		log.Fatalf("Failed to seed shift types: %v", err)
	}

	// Resolve the tax-year policy
	policy := tax.Policy2026()
	if *taxPolicyPath != "" {
		policy, err = factory.LoadPolicyFile(*taxPolicyPath)
		if err != nil {
			log.Fatalf("Failed to load tax policy: %v", err)
		}
	}
	log.Printf("Using tax policy for %d", policy.Year)

	// Initialize handler and router
	handler := api.NewHandler(store, policy, cfg.DefaultHourlyRate)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
