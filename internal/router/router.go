package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/culinary-assistant/backend/config"
	"github.com/pageza/culinary-assistant/backend/internal/api"
	"github.com/pageza/culinary-assistant/backend/internal/middleware"
	"github.com/pageza/culinary-assistant/backend/internal/repository"
	"github.com/pageza/culinary-assistant/backend/internal/service"
	"github.com/pageza/culinary-assistant/backend/pkg/logger"
)

// Dependencies are the shared resources the router wires into services.
type Dependencies struct {
	DB     *gorm.DB
	Redis  *redis.Client // optional; disables seed caching and rate limiting when nil
	Config *config.Config
	Logger *logger.Logger
	// Rand overrides the random source used to pick a favorite; nil means
	// independently seeded generators.
	Rand service.RandSource
}

// SetupRouter builds services and handlers and configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger

	gormStore := repository.NewGormCandidateStore(deps.DB)
	var (
		store       service.CandidateStore = gormStore
		invalidator service.SeedInvalidator
		limiter     *middleware.RateLimiter
	)
	if deps.Redis != nil {
		if cfg.Recommend.SeedCacheTTL > 0 {
			cached := repository.NewCachedCandidateStore(gormStore, deps.Redis, cfg.Recommend.SeedCacheTTL, log)
			store = cached
			invalidator = cached
		}
		if cfg.Search.RateLimitPerMinute > 0 {
			limiter = middleware.NewSearchRateLimiter(deps.Redis, cfg.Search.RateLimitPerMinute, log)
		}
	}

	tokens := service.NewTokenService(cfg.JWTSecret)
	searchService := service.NewSearchService(store, cfg.Search, log)
	recommendationService := service.NewRecommendationService(store, cfg.Recommend, deps.Rand, log)
	favoriteService := service.NewFavoriteService(deps.DB, invalidator, log)
	reviewService := service.NewReviewService(deps.DB, invalidator, log)

	router := gin.New()
	router.Use(requestid.New())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		api.NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(v1)
		api.NewSearchHandler(searchService, tokens, limiter).RegisterRoutes(v1)
		api.NewRecommendationHandler(recommendationService, tokens).RegisterRoutes(v1)
		api.NewFavoriteHandler(favoriteService, tokens).RegisterRoutes(v1)
		api.NewReviewHandler(reviewService, tokens).RegisterRoutes(v1)
	}

	return router
}
