package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/findamedi/clinics-api/internal/config"
	"github.com/findamedi/clinics-api/internal/repository/postgres"
	"github.com/findamedi/clinics-api/pkg/logger"
	redisBroker "github.com/findamedi/clinics-api/pkg/messaging/redis"
	"github.com/findamedi/clinics-api/pkg/metrics"
	"github.com/findamedi/clinics-api/pkg/worker"
)

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

	broker, err := redisBroker.NewBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Zerolog())
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	statsRepo := postgres.NewStatsRepository(postgres.NewBaseRepository(db))

	processor := worker.NewStatsProcessor(statsRepo, broker, worker.StatsProcessorConfig{
		Channel:       cfg.Redis.ViewChannel,
		FlushInterval: cfg.Worker.FlushInterval,
	}, log, metrics.New("findamedi_worker"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down worker")
		cancel()
	}()

	log.Info("starting stats worker", "channel", cfg.Redis.ViewChannel)
	if err := processor.Start(ctx); err != nil {
		log.Fatal(err, "worker failed")
	}
	log.Info("worker stopped")
}
