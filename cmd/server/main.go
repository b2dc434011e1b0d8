// Package main provides the content search HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/prepstack/docsearch/internal/config"
	"github.com/prepstack/docsearch/internal/indexer"
	"github.com/prepstack/docsearch/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg := config.Load()
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	pipeline := indexer.NewPipeline(cfg.ContentDir, cfg.IndexPath, nil)
	srv := server.New(&server.Deps{
		Config:   cfg,
		Pipeline: pipeline,
	})

	// Serve whatever artifact exists; searches answer empty until the first
	// successful build or revalidation.
	if err := srv.ReloadIndex(); err != nil {
		log.Printf("search index not loaded: %v", err)
	}

	addr := "0.0.0.0:" + cfg.Port
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s (artifact at /search-index.json, search at /api/search)", addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
