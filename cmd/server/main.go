// Command server runs the Daraz seller gateway: the OAuth connection flow,
// the cross-account dashboard API, and the pack fulfillment action.
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
	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/application/connect"
	"github.com/gmh-saber/daraz-seller-gateway/internal/application/dashboard"
	"github.com/gmh-saber/daraz-seller-gateway/internal/infrastructure/config"
	"github.com/gmh-saber/daraz-seller-gateway/internal/infrastructure/daraz"
	"github.com/gmh-saber/daraz-seller-gateway/internal/infrastructure/logger"
	"github.com/gmh-saber/daraz-seller-gateway/internal/infrastructure/store"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/handler"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/middleware"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/router"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = appLogger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	credStore := store.NewMemoryStore()
	gateway := daraz.NewClient(&daraz.Config{
		AppKey:         cfg.Daraz.AppKey,
		AppSecret:      cfg.Daraz.AppSecret,
		APIBaseURL:     cfg.Daraz.APIBaseURL,
		AuthBaseURL:    cfg.Daraz.AuthBaseURL,
		RedirectURI:    cfg.Daraz.RedirectURL,
		TimeoutSeconds: cfg.Daraz.TimeoutSeconds,
	}, credStore, appLogger)

	connectSvc := connect.NewService(gateway, credStore, appLogger)
	dashboardSvc := dashboard.NewService(gateway, credStore, appLogger)

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			appLogger.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{cfg.Frontend.BaseURL}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(appLogger))
	engine.Use(logger.GinMiddleware(appLogger))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.New(
		handler.NewSystemHandler(version),
		handler.NewAuthHandler(connectSvc, cfg.Frontend.BaseURL, appLogger),
		handler.NewAccountHandler(connectSvc),
		handler.NewDashboardHandler(dashboardSvc, appLogger),
		handler.NewFulfillmentHandler(dashboardSvc),
	).Register(engine)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLogger.Info("Server started",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("daraz_configured", cfg.Daraz.AppKey != ""),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited")
}
