package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bucketview/internal/config"
	"bucketview/internal/handlers"
	"bucketview/internal/logger"
	customMiddleware "bucketview/internal/middleware"
	"bucketview/internal/renderer"
	"bucketview/internal/services"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := services.NewBucketStore(cfg.Storage)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to build object store client")
	}

	e := newServer(cfg, store, "views")

	logger.Log.Info().
		Str("port", cfg.Server.Port).
		Str("bucket", cfg.Storage.Bucket).
		Str("endpoint", cfg.Storage.Endpoint).
		Msg("starting server")
	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}

func newServer(cfg *config.Config, store services.ObjectStore, viewsDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	browseHandler := handlers.NewBrowseHandler(store, cfg.Storage.Bucket, cfg.PresignTTL())

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Server.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(customMiddleware.SecurityHeaders())

	// Template Renderer
	e.Renderer = renderer.New(viewsDir)

	// Browser UI
	e.GET("/", browseHandler.Page)

	// REST API
	e.GET("/api/health", browseHandler.Health)
	e.GET("/api/list", browseHandler.ListObjects)
	e.POST("/api/create-folder", browseHandler.CreateFolder)
	e.POST("/api/presign-upload", browseHandler.PresignUpload)
	e.POST("/api/presign-download", browseHandler.PresignDownload)
	e.DELETE("/api/object", browseHandler.DeleteObject)
	e.POST("/api/delete-bulk", browseHandler.DeleteBulk)
	e.GET("/api/object/info", browseHandler.ObjectInfo)
	e.GET("/api/zip", browseHandler.DownloadZip)

	return e
}
