package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cori-saude/cori-web/internal/api"
	appauth "github.com/cori-saude/cori-web/internal/auth"
	"github.com/cori-saude/cori-web/internal/config"
	"github.com/cori-saude/cori-web/internal/health"
	httpserver "github.com/cori-saude/cori-web/internal/http"
)

func main() {
	log.Println("Starting Cori Web server...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiClient := api.New(cfg.API.BaseURL, cfg.API.Timeout)

	probe := health.NewProbe(apiClient, cfg.API.Timeout)
	if err := probe.Start(cfg.Probe.Schedule); err != nil {
		log.Fatalf("failed to start upstream health probe: %v", err)
	}
	defer probe.Stop()

	sessionManager := appauth.NewSessionManager(cfg)
	authService := appauth.NewService(cfg, apiClient, sessionManager)

	r := httpserver.NewRouter(cfg, authService, probe)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
