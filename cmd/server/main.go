// Package main is the entry point for the ticket notifier HTTP server.
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

	"github.com/sebasr/ticket-notifier/internal/config"
	"github.com/sebasr/ticket-notifier/internal/email"
	"github.com/sebasr/ticket-notifier/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize email service
	var emailService email.Service
	switch cfg.Email.Provider {
	case config.ProviderConsole:
		emailService = email.NewConsoleService()
		log.Println("Email service initialized in console mode - receipts will be logged, not sent")
	default:
		emailService = email.NewSMTPService(cfg.SMTP)
		if cfg.SMTP.IsComplete() {
			log.Printf("Email service initialized with SMTP relay %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
		} else {
			log.Println("SMTP settings incomplete - send requests will fail until SMTP_HOST, SMTP_USER and SMTP_PASSWORD are set")
		}
	}

	router, err := server.New(&server.Dependencies{
		Config:       cfg,
		EmailService: emailService,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Leaves room for a full relay session
		WriteTimeout: cfg.SMTP.Timeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	// In-flight relay sessions are allowed to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
