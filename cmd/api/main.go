package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/findamedi/clinics-api/internal/config"
	"github.com/findamedi/clinics-api/internal/handler"
	adminHandler "github.com/findamedi/clinics-api/internal/handler/admin"
	authHandler "github.com/findamedi/clinics-api/internal/handler/auth"
	categoryHandler "github.com/findamedi/clinics-api/internal/handler/category"
	clinicHandler "github.com/findamedi/clinics-api/internal/handler/clinic"
	contactHandler "github.com/findamedi/clinics-api/internal/handler/contact"
	reviewHandler "github.com/findamedi/clinics-api/internal/handler/review"
	"github.com/findamedi/clinics-api/internal/middleware"
	"github.com/findamedi/clinics-api/internal/repository/postgres"
	"github.com/findamedi/clinics-api/internal/router"
	authService "github.com/findamedi/clinics-api/internal/service/auth"
	categoryService "github.com/findamedi/clinics-api/internal/service/category"
	clinicService "github.com/findamedi/clinics-api/internal/service/clinic"
	contactService "github.com/findamedi/clinics-api/internal/service/contact"
	reviewService "github.com/findamedi/clinics-api/internal/service/review"
	statsService "github.com/findamedi/clinics-api/internal/service/stats"
	"github.com/findamedi/clinics-api/internal/web"
	"github.com/findamedi/clinics-api/pkg/logger"
	"github.com/findamedi/clinics-api/pkg/messaging"
	redisBroker "github.com/findamedi/clinics-api/pkg/messaging/redis"
	"github.com/findamedi/clinics-api/pkg/metrics"
)

const categoryCacheTTL = 5 * time.Minute

func main() {
	log := logger.New(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// The broker only feeds the analytics pipeline; the site stays up
	// without it.
	var broker messaging.Broker
	b, err := redisBroker.NewBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Zerolog())
	if err != nil {
		log.Warn("redis unavailable, view events disabled", "error", err.Error())
	} else {
		broker = b
		defer broker.Close()
	}

	m := metrics.New("findamedi")

	base := postgres.NewBaseRepository(db)
	clinicRepo := postgres.NewClinicRepository(base)
	categoryRepo := postgres.NewCategoryRepository(base)
	reviewRepo := postgres.NewReviewRepository(base)
	statsRepo := postgres.NewStatsRepository(base)
	userRepo := postgres.NewUserRepository(base)

	clinicSvc := clinicService.NewService(clinicRepo, broker, cfg.Redis.ViewChannel, log, m)
	categorySvc := categoryService.NewService(categoryRepo, categoryCacheTTL)
	reviewSvc := reviewService.NewService(reviewRepo, clinicRepo, m)
	contactSvc := contactService.NewService(cfg.SMTP, log, m)
	authSvc := authService.NewService(userRepo, cfg.JWT)
	statsSvc := statsService.NewService(statsRepo)

	handler.RegisterValidations()

	authMW := middleware.NewAuthMiddleware(authSvc)

	var pinger handler.Pinger
	if p, ok := broker.(handler.Pinger); ok {
		pinger = p
	}
	health := handler.NewHealth(db, pinger)

	public := []router.Handler{
		clinicHandler.NewHandler(clinicSvc),
		categoryHandler.NewHandler(categorySvc),
		reviewHandler.NewHandler(reviewSvc),
		contactHandler.NewHandler(contactSvc),
		authHandler.NewHandler(authSvc),
	}
	admin := adminHandler.NewHandler(reviewSvc, statsSvc, authMW)
	pages := web.NewHandler(clinicSvc, categorySvc, contactSvc, log, cfg.Server.BaseURL, "")

	r := router.New(log.Zerolog(), health, public, admin, pages, router.Config{
		CORS:             middleware.DefaultCORSConfig(),
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimitRPS:     cfg.RateLimit.RPS,
		RateLimitBurst:   cfg.RateLimit.Burst,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MetricsPrefix:    "findamedi_http",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
	log.Info("server stopped")
}
