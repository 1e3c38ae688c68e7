package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bccodingclub/notice-board-api/api/swagger"
	"github.com/bccodingclub/notice-board-api/internal/handler"
	"github.com/bccodingclub/notice-board-api/internal/middleware"
	"github.com/bccodingclub/notice-board-api/internal/models"
	"github.com/bccodingclub/notice-board-api/internal/repository"
	"github.com/bccodingclub/notice-board-api/internal/service"
	"github.com/bccodingclub/notice-board-api/pkg/cache"
	"github.com/bccodingclub/notice-board-api/pkg/config"
	"github.com/bccodingclub/notice-board-api/pkg/database"
	"github.com/bccodingclub/notice-board-api/pkg/logger"
	corsmiddleware "github.com/bccodingclub/notice-board-api/pkg/middleware/cors"
	reqidmiddleware "github.com/bccodingclub/notice-board-api/pkg/middleware/requestid"
)

// @title Notice Board API
// @version 1.0.0
// @description School notice board: visitors browse published notices, admins manage them
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	boardStore := repository.NewInstrumentedBoardStore(
		repository.NewRedisBoardStore(redisClient, cfg.Board.StorageKey, logr),
		metricsSvc,
	)

	noticeRepo := repository.NewNoticeRepository(boardStore, cfg.Board.SeedOnEmpty, logr)
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := noticeRepo.Load(loadCtx); err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to load notice board", "error", err)
	}
	cancel()
	metricsSvc.SetBoardSize(noticeRepo.Count())

	var auditRepo *repository.AuditRepository
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Audit.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to audit database", "error", err)
		}
		defer db.Close() //nolint:errcheck
		auditRepo = repository.NewAuditRepository(db)
	}

	validate := validator.New()
	noticeSvc := service.NewNoticeService(noticeRepo, validate, logr, metricsSvc)
	exportSvc := service.NewExportService(noticeRepo)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AdminSecret:     cfg.Auth.AdminSecret,
		AdminSecretHash: cfg.Auth.AdminSecretHash,
		TokenSecret:     cfg.Auth.TokenSecret,
		TokenExpiry:     cfg.Auth.TokenExpiry,
		Issuer:          cfg.Auth.Issuer,
	})

	noticeHandler := handler.NewNoticeHandler(noticeSvc, exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout",
		middleware.JWT(authSvc),
		middleware.Audit(auditRepo, models.AuditActionLogout, "auth"),
		authHandler.Logout)

	api.GET("/notices", middleware.OptionalJWT(authSvc), noticeHandler.List)
	api.GET("/notices/:id", middleware.OptionalJWT(authSvc), noticeHandler.Get)
	api.POST("/notices/:id/reactions", noticeHandler.React)

	admin := api.Group("/notices", middleware.JWT(authSvc), middleware.RequireAdmin())
	admin.POST("",
		middleware.Audit(auditRepo, models.AuditActionNoticeCreate, "notice"),
		noticeHandler.Create)
	admin.PUT("/:id",
		middleware.Audit(auditRepo, models.AuditActionNoticeUpdate, "notice"),
		noticeHandler.Update)
	admin.DELETE("/:id",
		middleware.Audit(auditRepo, models.AuditActionNoticeDelete, "notice"),
		noticeHandler.Delete)
	admin.PATCH("/:id/visibility",
		middleware.Audit(auditRepo, models.AuditActionNoticeVisibility, "notice"),
		noticeHandler.SetVisibility)
	admin.GET("/export",
		middleware.Audit(auditRepo, models.AuditActionBoardExport, "board"),
		noticeHandler.Export)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "notices", noticeRepo.Count())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
