// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toski_backend/internal/config"
)

func main() {
	auditDecksCmd := flag.NewFlagSet("audit-decks", flag.ExitOnError)
	auditTimeout := auditDecksCmd.Duration("timeout", 30*time.Minute, "Upper bound for the whole audit pass")

	if len(os.Args) > 1 && os.Args[1] == "audit-decks" {
		if err := auditDecksCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		if err := runDeckAudit(*auditTimeout); err != nil {
			log.Printf("ERROR: Deck audit failed: %v", err)
			os.Exit(1)
		}
		return
	}

	// Default: Start server
	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ERROR: Server failed: %v", err)
			return
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runDeckAudit performs a single deck audit pass.
func runDeckAudit(timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	job, cleanup, err := initializeDeckAudit(cfg)
	if err != nil {
		return fmt.Errorf("initialize deck audit: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := job.Run(ctx)
	if err != nil {
		return err
	}
	log.Printf("INFO: Deck audit finished: profiles=%d checked=%d dead=%d skipped=%d",
		report.Profiles, report.Checked, report.Dead, report.Skipped)
	return nil
}
