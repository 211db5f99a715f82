package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/calc-hub/internal/cache"
	"github.com/Dan9191/calc-hub/internal/config"
	"github.com/Dan9191/calc-hub/internal/games"
	"github.com/Dan9191/calc-hub/internal/handler"
	"github.com/Dan9191/calc-hub/internal/integrations/ratefeed"
	"github.com/Dan9191/calc-hub/internal/jobs"
	"github.com/Dan9191/calc-hub/internal/repository"
	"github.com/Dan9191/calc-hub/internal/service"
	"github.com/Dan9191/calc-hub/internal/sitemap"
	"github.com/Dan9191/calc-hub/internal/utils/email"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, db, err := repository.Open(ctx, cfg.DBDriver, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}
	logger.Infof("Content store: %s", cfg.DBDriver)

	// Shared cache
	var shared cache.Cache = cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(cfg.RedisURL, "calc-hub:")
		if err != nil {
			logger.Fatalf("Failed to configure redis: %v", err)
		}
		if err := rc.Ping(ctx); err != nil {
			logger.Warnf("Redis unreachable, falling back to in-memory cache: %v", err)
			rc.Close()
		} else {
			defer rc.Close()
			shared = rc
		}
	}

	// Initialize layers
	var notifier service.Notifier
	if cfg.MailEnabled() {
		notifier = email.NewSender(cfg, logger)
	}
	svc := service.NewService(store, logger, cfg, notifier)
	if err := svc.SeedAdmin(ctx); err != nil {
		logger.Fatalf("Failed to seed admin user: %v", err)
	}

	routes, err := sitemap.LoadRoutes(cfg.SitemapRoutes)
	if err != nil {
		logger.Fatalf("Failed to load sitemap routes: %v", err)
	}
	gen := sitemap.NewGenerator(cfg.SiteBaseURL, routes)
	rates := ratefeed.NewClient(cfg, shared, logger)

	h := handler.NewHandler(svc, logger, handler.Deps{
		Table:   games.NewTable(nil),
		Rates:   rates,
		Sitemap: gen,
		Cache:   shared,
	})

	// Background jobs
	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.Add("sitemap", cfg.SitemapCron, jobs.SitemapJob(gen, cfg.SitemapPath, logger)); err != nil {
		logger.Fatalf("%v", err)
	}
	refresh := fmt.Sprintf("@every %s", cfg.RateCacheTTL)
	if err := scheduler.Add("rate refresh", refresh, jobs.RateRefreshJob(rates, 15*time.Second, logger)); err != nil {
		logger.Fatalf("%v", err)
	}
	scheduler.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Errorf("Server failed: %v", err)
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	scheduler.Stop(shutdownCtx)

	flushed := make(chan struct{})
	go func() {
		svc.Wait()
		close(flushed)
	}()
	select {
	case <-flushed:
	case <-shutdownCtx.Done():
		logger.Warn("Pending content notifications abandoned")
	}
	logger.Info("Server stopped")
}
