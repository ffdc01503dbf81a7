package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"StockSight/internal/config"
	"StockSight/internal/news"
	"StockSight/internal/provider"
	"StockSight/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockSight starting...")

	// .env carries the Alpha Vantage API key in development
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] .env not loaded: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	if cfg.AlphaVantage.APIKey == "" {
		log.Println("[WARN] no Alpha Vantage API key configured, fundamentals will fail")
	}

	timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second

	// Init providers
	yahoo := provider.NewYahooProvider(cfg.Provider.Proxy, timeout)
	log.Printf("[INFO] data source: %s", yahoo.Name())
	av := provider.NewAlphaVantageProvider(cfg.AlphaVantage.APIKey, timeout)

	// Init news pipeline
	pipeline := news.NewPipeline(news.NewScraper(timeout))

	// Init HTTP server
	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, yahoo, av, pipeline)
	httpSrv := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("[INFO] StockSight listening on %s", cfg.Server.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	log.Println("[INFO] StockSight stopped")
}
