// Package server provides HTTP server setup and configuration.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/sebasr/ticket-notifier/internal/config"
	"github.com/sebasr/ticket-notifier/internal/email"
	"github.com/sebasr/ticket-notifier/internal/handlers"
	"github.com/sebasr/ticket-notifier/internal/middleware"
	"github.com/sebasr/ticket-notifier/internal/receipt"
)

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config       *config.Config
	EmailService email.Service
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) (*gin.Engine, error) {
	// Set Gin to release mode to disable ANSI colors in logs
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/v1/health"},
	}))

	// Browser preflights carry an Origin header and are answered here,
	// the notification handler covers the rest. The methods are passed as one
	// entry so the header reads "POST, OPTIONS" on both paths.
	allowMethods := strings.Join([]string{http.MethodPost, http.MethodOptions}, ", ")
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{allowMethods},
		AllowHeaders:              []string{"Content-Type"},
		ExposeHeaders:             []string{"Content-Length", "X-Request-ID"},
		AllowCredentials:          false,
		MaxAge:                    24 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	router.Use(middleware.RequestID())

	rateLimiter, err := middleware.NewRateLimitMiddleware(deps.Config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	if rateLimiter != nil {
		router.Use(rateLimiter)
	}

	// Upstream callers may gzip request bodies. Preflight answers have no
	// body and are never compressed.
	router.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithCustomShouldCompressFn(shouldCompress),
	))

	notificationHandler := handlers.NewNotificationHandler(deps.EmailService, receipt.Sender{
		Address: deps.Config.Email.FromAddress,
		Name:    deps.Config.Email.FromName,
	})

	// Function-style invocation at the root, as the order service calls it
	router.Any("/", notificationHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthHandler)
		v1.Any("/send-email", notificationHandler.Handle)
	}

	return router, nil
}

func shouldCompress(c *gin.Context) bool {
	return c.Request.Method != http.MethodOptions &&
		strings.Contains(c.GetHeader("Accept-Encoding"), "gzip")
}
