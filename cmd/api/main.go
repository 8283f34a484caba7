package main

import (
	"context"
	"net/http"

	"reviewdesk/internal/cache"
	"reviewdesk/internal/config"
	"reviewdesk/internal/database"
	"reviewdesk/internal/domain"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/middleware"
	"reviewdesk/internal/modules/admin"
	"reviewdesk/internal/modules/identity"
	"reviewdesk/internal/modules/review"
	"reviewdesk/internal/modules/vote"
	jwtsvc "reviewdesk/internal/pkg/jwt"
	"reviewdesk/internal/pkg/response"
	"reviewdesk/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	cfg.LogSummary()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	var (
		redisClient *cache.RedisClient
		countCache  vote.CountCache
	)
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, vote counts will not be cached")
		} else {
			defer redisClient.Close()
			countCache = cache.NewVoteCountCache(redisClient, cfg.VoteCountCacheTTL)
		}
	}

	platformRepo := repository.NewPlatformReviewRepository(db)
	workerClientRepo := repository.NewWorkerClientReviewRepository(db)
	legacyRepo := repository.NewLegacyWorkerReviewRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	resolver := identity.NewResolver(profileRepo)

	reviewService := review.NewService(
		review.NewSources(platformRepo, workerClientRepo, legacyRepo),
		replyRepo,
		resolver,
	)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(reviewService)
	adminHandler := admin.NewHandler(adminService)

	voteService := vote.NewService(voteRepo, replyRepo, countCache)
	voteHandler := vote.NewHandler(voteService)

	if !cfg.GinDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", healthHandler(db, redisClient))

	v1 := r.Group("/api/v1")
	{
		authed := v1.Group("/")
		authed.Use(middleware.JWTAuth(j))
		{
			reviewHandler.RegisterRoutes(
				authed,
				middleware.RequireRole(domain.TokenRoleClient),
				middleware.RequireRole(domain.TokenRoleClient, domain.TokenRoleWorker),
			)
			voteHandler.RegisterRoutes(authed)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}

func healthHandler(db *gorm.DB, redisClient *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := gin.H{"database": "ok"}
		status := http.StatusOK

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			log.Error().Err(err).Msg("health: database ping failed")
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}

		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.HealthCheck(c.Request.Context()); err != nil {
				// the cache is optional; report it without failing the check
				checks["redis"] = "degraded"
			}
		}

		if status != http.StatusOK {
			response.ErrorWithDetails(c, status, "UNHEALTHY", "Service unhealthy", checks)
			return
		}
		response.Success(c, status, checks)
	}
}
