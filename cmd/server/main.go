package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stock-analyzer/backend/internal/api"
	"github.com/stock-analyzer/backend/internal/config"
	"github.com/stock-analyzer/backend/internal/secrets"
	"github.com/stock-analyzer/backend/internal/service"
	"github.com/stock-analyzer/backend/internal/snaptrade"
	"github.com/stock-analyzer/backend/internal/twelvedata"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Secret store lives for the process lifetime only; user secrets are
	// lost on restart and callers re-run the connect flow.
	secretStore, err := secrets.NewStore(cfg.Auth.SecretKey)
	if err != nil {
		log.Fatalf("Failed to create secret store: %v", err)
	}

	// Create provider clients
	stockClient := twelvedata.NewFinanceClient(cfg.TwelveData.BaseURL, cfg.TwelveData.APIKey)
	brokerageClient := snaptrade.NewBrokerageClient(cfg.SnapTrade.BaseURL, cfg.SnapTrade.ClientID, cfg.SnapTrade.ConsumerKey)

	// Create services
	snapTradeService := service.NewSnapTradeService(brokerageClient, secretStore)

	// Create router
	router := api.NewRouter(stockClient, snapTradeService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
