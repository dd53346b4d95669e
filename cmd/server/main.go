package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avisia/analytics-agent/internal/api"
	"github.com/avisia/analytics-agent/internal/config"
	"github.com/avisia/analytics-agent/internal/ga4"
	"github.com/avisia/analytics-agent/internal/job"
	"github.com/avisia/analytics-agent/internal/mailer"
	"github.com/avisia/analytics-agent/internal/narrative"
	"github.com/avisia/analytics-agent/internal/pkg/logger"
	"github.com/avisia/analytics-agent/internal/render"
	"github.com/avisia/analytics-agent/internal/storage"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logger.DEBUG)
	}

	// Pre-flight check: verify the target port is available
	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", cfg.Server.Port)

	ctx := context.Background()

	// Analytics bridge client
	source := ga4.NewClient(cfg.GA4)

	// Bedrock narrative generator
	narrator, err := narrative.NewGenerator(ctx, cfg.Bedrock)
	if err != nil {
		log.Fatalf("Failed to initialize Bedrock client: %v", err)
	}
	log.Printf("Bedrock client initialized (model: %s, region: %s)", cfg.Bedrock.ModelID, cfg.Bedrock.Region)

	// S3 snapshot store
	store, err := storage.NewStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize S3 store: %v", err)
	}

	// SES delivery client
	sender, err := mailer.NewClient(ctx, cfg.SES)
	if err != nil {
		log.Fatalf("Failed to initialize SES client: %v", err)
	}

	// HTML report renderer
	renderer, err := render.NewRenderer(cfg.Report, cfg.Bedrock.ModelID)
	if err != nil {
		log.Fatalf("Failed to parse report templates: %v", err)
	}

	runner := job.NewRunner(*cfg, source, narrator, store, sender, renderer)
	server := api.NewServer(runner)

	log.Printf("Reporting service configured: property=%s recipients=%d bucket=%s",
		cfg.GA4.PropertyID, len(cfg.Report.Recipients), cfg.Storage.Bucket)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := cfg.Server.Addr()
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
