package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/oleynichenko/ai-tools-api/internal/audit"
	"github.com/oleynichenko/ai-tools-api/internal/config"
	"github.com/oleynichenko/ai-tools-api/internal/directory"
	openaigw "github.com/oleynichenko/ai-tools-api/internal/gateway/openai"
	"github.com/oleynichenko/ai-tools-api/internal/handler"
	"github.com/oleynichenko/ai-tools-api/internal/port"
	"github.com/oleynichenko/ai-tools-api/internal/router"
	"github.com/oleynichenko/ai-tools-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize audit storage
	var store port.AuditStore
	switch cfg.Audit.Backend {
	case "s3":
		store, err = audit.NewS3Store(&cfg.Audit)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 audit store: %w", err)
		}
	default:
		store = audit.NewFSStore(cfg.Audit.Dir)
	}
	sink := audit.NewSink(store, cfg.Audit.QueueSize)
	defer sink.Close()

	// Initialize provider gateway and user directory
	gw := openaigw.NewGateway(&cfg.OpenAI)
	dir, err := directory.NewDemoDirectory()
	if err != nil {
		return fmt.Errorf("failed to seed user directory: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(dir, cfg.JWT)
	receiptSvc := service.NewReceiptService(gw, sink)
	audioSvc := service.NewAudioService(gw, sink)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, dir)
	receiptH := handler.NewReceiptHandler(receiptSvc)
	audioH := handler.NewAudioHandler(audioSvc)
	modelH := handler.NewModelHandler(gw)
	healthH := handler.NewHealthHandler()

	r := router.Setup(cfg, authSvc, authH, receiptH, audioH, modelH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
