// Package main implements the chess rules server with a RESTful API
// and optional SQLite game persistence.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chess/cmd/chess-server/cli"
	"chess/internal/server/config"
	"chess/internal/server/http"
	"chess/internal/server/processor"
	"chess/internal/server/service"
	"chess/internal/server/storage"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// CLI database commands bypass the server entirely
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		configPath = flag.String("config", "", "Path to YAML config file (optional)")
		apiHost    = flag.String("api-host", "", "API server host (overrides config)")
		apiPort    = flag.String("api-port", "", "API server port (overrides config)")
		dev        = flag.Bool("dev", false, "Development mode (relaxed rate limits)")
		noStorage  = flag.Bool("no-storage", false, "Disable SQLite persistence")
		pidPath    = flag.String("pid", "", "Optional path to write PID file")
		pidLock    = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *apiHost != "" {
		cfg.API.Host = *apiHost
	}
	if *apiPort != "" {
		cfg.API.Port = *apiPort
	}
	if *dev {
		cfg.Dev = true
	}
	if *noStorage {
		cfg.Storage.Enabled = false
	}
	if *pidPath != "" {
		cfg.PIDFile = *pidPath
	}

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if *pidPath != "" {
		cleanup, err := managePIDFile(cfg.PIDFile, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", cfg.PIDFile, *pidLock)
	}

	// 1. Storage (optional)
	var store *storage.Store
	if cfg.Storage.Enabled {
		log.Printf("Initializing persistent storage at: %s", cfg.Storage.Path)
		store, err = storage.NewStore(cfg.Storage.Path, cfg.Dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled")
	}

	// 2. Service and processor
	svc := service.New(store)
	proc := processor.New(svc)

	// 3. Fiber app
	app := http.NewFiberApp(proc, svc, cfg.Dev)

	apiAddr := cfg.API.Addr()

	go func() {
		log.Printf("Chess API server starting")
		log.Printf("Listening on: http://%s", apiAddr)
		if cfg.Dev {
			log.Printf("Rate limit: 20 requests/second per IP (dev mode)")
		} else {
			log.Printf("Rate limit: 10 requests/second per IP")
		}
		log.Printf("Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Service shutdown closes the wait registry and storage
	if err = svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
