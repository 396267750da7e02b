package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Kamar-Folarin/portfolio-api/internal/api"
	"github.com/Kamar-Folarin/portfolio-api/internal/config"
	"github.com/Kamar-Folarin/portfolio-api/internal/db"
	"github.com/Kamar-Folarin/portfolio-api/internal/github"
	"github.com/Kamar-Folarin/portfolio-api/internal/project"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.LogLevel, os.Stdout)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Username == "" {
		logger.Warn("GITHUB_USERNAME is not set; project sync will fail until it is configured")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	store := db.NewPostgresStore(conn)
	defer store.Close()

	// Run migrations with retry logic
	if err := retry(3, 5*time.Second, store.Migrate); err != nil {
		logger.Fatalf("Failed to run migrations after retries: %v", err)
	}

	// Initialize services
	githubClient, err := github.NewGitHubClient(&cfg.GitHubConfig, logger)
	if err != nil {
		logger.Fatalf("Failed to create GitHub client: %v", err)
	}
	syncService := github.NewSyncService(githubClient, store, &cfg.GitHubConfig, &cfg.SyncConfig, logger)
	projectService := project.NewService(store, logger)
	handler := api.NewHandler(projectService, syncService, store, logger)

	router := api.SetupRouter(handler, api.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins(),
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30*time.Second + cfg.RequestTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server exited properly")
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
