package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/coachdesk/coachdesk-api/api/swagger"
	"github.com/coachdesk/coachdesk-api/internal/handler"
	"github.com/coachdesk/coachdesk-api/internal/middleware"
	"github.com/coachdesk/coachdesk-api/internal/repository"
	"github.com/coachdesk/coachdesk-api/internal/service"
	"github.com/coachdesk/coachdesk-api/pkg/cache"
	"github.com/coachdesk/coachdesk-api/pkg/config"
	"github.com/coachdesk/coachdesk-api/pkg/database"
	"github.com/coachdesk/coachdesk-api/pkg/logger"
	corsmiddleware "github.com/coachdesk/coachdesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/coachdesk/coachdesk-api/pkg/middleware/requestid"
)

// @title CoachDesk API
// @version 0.1.0
// @description Coach roster, course scheduling and assignment service
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Timetable caching degrades gracefully without Redis.
		logr.Sugar().Warnw("redis unavailable, timetable cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	coachRepo := repository.NewCoachRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	timetableCache := repository.NewTimetableCache(redisClient, cfg.Timetable.CacheTTL)

	metricsSvc := service.NewMetricsService()
	coachSvc := service.NewCoachService(coachRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, coachRepo, timetableCache, validate, logr)
	timetableSvc := service.NewTimetableService(coachRepo, courseRepo, timetableCache, metricsSvc, cfg.Timetable.ExportRows, logr)

	coachHandler := handler.NewCoachHandler(coachSvc, timetableSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

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
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Expose)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.RegisterRoutes(api, coachHandler, courseHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
