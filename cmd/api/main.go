package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/srs-go-api/api/swagger"
	"github.com/noah-isme/srs-go-api/internal/handler"
	"github.com/noah-isme/srs-go-api/internal/middleware"
	"github.com/noah-isme/srs-go-api/internal/models"
	"github.com/noah-isme/srs-go-api/internal/repository"
	"github.com/noah-isme/srs-go-api/internal/service"
	"github.com/noah-isme/srs-go-api/pkg/cache"
	"github.com/noah-isme/srs-go-api/pkg/config"
	"github.com/noah-isme/srs-go-api/pkg/database"
	"github.com/noah-isme/srs-go-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/srs-go-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/srs-go-api/pkg/middleware/requestid"
)

// @title Student Records API
// @version 1.0.0
// @description Role-scoped student records with audit trail, reporting and exports
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activitySvc := service.NewActivityService(activityRepo, logr)
	authSvc := service.NewAuthService(userRepo, activitySvc, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, subjectRepo, activitySvc, cacheSvc, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, cacheSvc, validate, logr)
	reportSvc := service.NewReportService(studentRepo, subjectRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(studentRepo, reportSvc, activitySvc, nil, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	dashboardHandler := handler.NewDashboardHandler(reportSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
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

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.POST("/auth/logout", authHandler.Logout)

	authed.GET("/students", studentHandler.List)
	authed.GET("/students/export", exportHandler.Students)
	authed.GET("/students/:id", studentHandler.Get)
	authed.POST("/students", studentHandler.Create)
	authed.PUT("/students/:id", studentHandler.Update)
	authed.DELETE("/students/:id", studentHandler.Delete)

	authed.GET("/subjects", subjectHandler.List)

	adminOnly := authed.Group("")
	adminOnly.Use(middleware.RequireRoles(models.RoleAdmin))
	adminOnly.POST("/subjects", subjectHandler.Create)
	adminOnly.DELETE("/subjects/:id", subjectHandler.Delete)
	adminOnly.GET("/dashboard", dashboardHandler.Summary)
	adminOnly.GET("/dashboard/export", exportHandler.DashboardSummary)
	adminOnly.GET("/activity-logs", activityHandler.List)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
