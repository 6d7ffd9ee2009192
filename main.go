package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"portfolio/api/auth"
	"portfolio/api/config"
	"portfolio/api/database"
	"portfolio/api/handlers"
	"portfolio/api/middleware"
	"portfolio/api/storage"
	"portfolio/api/store"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger = newLogger(cfg.Log.Level)
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbClient, err := database.NewPostgresDB(cfg.Postgres, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL")
	}
	defer dbClient.Close()

	chClient, err := database.NewClickHouseDB(cfg.ClickHouse, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize ClickHouse")
	}
	defer chClient.Close()

	projectStore := store.NewProjectStore(dbClient.DB)
	pageViewStore := store.NewPageViewStore(dbClient.DB)
	analyticsStore := store.NewAnalyticsStore(chClient)

	authenticator := auth.NewAuthenticator(cfg.Admin)
	if !cfg.AdminConfigured() {
		logger.Warn().Msg("admin credentials not configured; the CMS surface will reject every request")
	}

	var uploader handlers.Uploader
	if s3, err := storage.NewS3Storage(cfg.Storage, &logger); err != nil {
		logger.Warn().Err(err).Msg("image storage not configured; uploads disabled")
	} else {
		uploader = s3
	}

	authHandlers := handlers.NewAuthHandlers(authenticator, &logger)
	analyticsHandlers := handlers.NewAnalyticsHandlers(pageViewStore, analyticsStore, &logger)
	projectHandlers := handlers.NewProjectHandlers(projectStore, &logger)
	uploadHandlers := handlers.NewUploadHandlers(uploader, &logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(&logger))
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigin))

	// Document-level gate for /admin navigation. The SPA shell is served by
	// the hosting layer, which forwards page requests here first.
	pages := r.Group("/admin")
	pages.Use(middleware.PageAuthRequired(authenticator.Page))
	pages.GET("/*page", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	api := r.Group("/api")
	{
		api.POST("/admin/login", authHandlers.Login)
		api.POST("/admin/logout", authHandlers.Logout)
		api.DELETE("/admin/auth", authHandlers.Logout)
		api.GET("/admin/status", authHandlers.Status)

		analytics := api.Group("/analytics")
		{
			analytics.POST("/page-view", analyticsHandlers.TrackPageView)
			analytics.POST("/page-exit", analyticsHandlers.TrackPageExit)
			analytics.POST("/event", analyticsHandlers.TrackEvent)
			analytics.POST("/project-view", analyticsHandlers.TrackProjectView)
		}

		api.GET("/projects", projectHandlers.ListPublic)
		api.GET("/projects/:slug", projectHandlers.GetBySlug)

		admin := api.Group("/admin")
		admin.Use(middleware.APIAuthRequired(authenticator.Secret))
		{
			admin.GET("/projects", projectHandlers.ListAdmin)
			admin.POST("/projects", projectHandlers.Create)
			admin.PUT("/projects/:id", projectHandlers.Update)
			admin.DELETE("/projects/:id", projectHandlers.Delete)

			admin.POST("/upload", uploadHandlers.UploadImage)

			stats := admin.Group("/analytics")
			{
				stats.GET("/page-views", analyticsHandlers.GetDailyPageViews)
				stats.GET("/top-pages", analyticsHandlers.GetTopPages)
				stats.GET("/events", analyticsHandlers.GetEventCounts)
				stats.GET("/project-views", analyticsHandlers.GetTopProjects)
			}
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("portfolio API starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exiting")
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}
