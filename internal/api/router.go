package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/steemit/hivelens/internal/cache"
	"github.com/steemit/hivelens/internal/hive"
	"github.com/steemit/hivelens/internal/lookup"
	"github.com/steemit/hivelens/internal/models"
	"github.com/steemit/hivelens/pkg/logging"
)

// LookupService runs account lookups and exposes the state machine
type LookupService interface {
	Lookup(ctx context.Context, username string) (*lookup.Bundle, error)
	Status() lookup.Status
}

// ChainInfo supplies the provider reads the handlers use outside a
// full lookup: derived-statistics inputs and chart data
type ChainInfo interface {
	GetDynamicGlobalProperties(ctx context.Context) (*hive.DynamicGlobalProperties, error)
	GetMedianHistoryPrice(ctx context.Context) (*hive.Price, error)
	GetRewardHistory(ctx context.Context, name string) ([]hive.RewardClaim, error)
}

// SearchLog lists recent audit entries
type SearchLog interface {
	Recent(ctx context.Context, limit int) ([]models.Search, error)
}

// Router sets up API routes
type Router struct {
	lookup LookupService
	chain  ChainInfo
	cache  *cache.Cache // nil disables memoization
	audit  SearchLog    // nil disables the recent-searches endpoint
	logger *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(lookupSvc LookupService, chain ChainInfo, redisCache *cache.Cache, audit SearchLog) *Router {
	return &Router{
		lookup: lookupSvc,
		chain:  chain,
		cache:  redisCache,
		audit:  audit,
		logger: logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api")
	api.GET("/accounts/:name", r.getAccount)
	api.GET("/accounts/:name/rewards.png", r.getRewardChart)
	api.GET("/searches/recent", r.getRecentSearches)
	api.GET("/status", r.getStatus)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "hivelens-api",
	})
}
