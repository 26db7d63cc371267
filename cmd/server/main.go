package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/steemit/hivelens/internal/api"
	"github.com/steemit/hivelens/internal/audit"
	"github.com/steemit/hivelens/internal/cache"
	"github.com/steemit/hivelens/internal/db"
	"github.com/steemit/hivelens/internal/hive"
	"github.com/steemit/hivelens/internal/lookup"
	"github.com/steemit/hivelens/pkg/config"
	"github.com/steemit/hivelens/pkg/logging"
	"github.com/steemit/hivelens/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Hivelens API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Hive node client
	hiveClient, err := hive.New(&cfg.Hive)
	if err != nil {
		logger.Fatal("Failed to initialize Hive client", zap.Error(err))
	}

	// Redis cache (optional)
	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
	}
	defer redisCache.Close()

	// Search audit log (optional)
	var (
		auditSink     lookup.AuditSink
		searchLog     api.SearchLog
		auditRecorder *audit.Recorder
	)
	if cfg.Database.Enabled {
		database, err := db.New(&cfg.Database, cfg.Logging.Level)
		if err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer database.Close()

		auditRecorder, err = audit.NewRecorder(database.DB)
		if err != nil {
			logger.Fatal("Failed to initialize audit recorder", zap.Error(err))
		}
		auditSink = auditRecorder
		searchLog = auditRecorder
	} else {
		logger.Info("Search audit log disabled")
	}

	// Lookup orchestrator
	var bundleCache lookup.BundleCache
	if redisCache != nil {
		bundleCache = redisCache
	}
	orchestrator := lookup.New(hiveClient, bundleCache, auditSink, cfg.Hive.LookupTimeout)

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(orchestrator, hiveClient, redisCache, searchLog)
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
