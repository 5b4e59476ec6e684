package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	"github.com/findamedi/clinics-api/pkg/logger"
	"github.com/findamedi/clinics-api/pkg/messaging"
	"github.com/findamedi/clinics-api/pkg/metrics"
)

type StatsProcessorConfig struct {
	Channel       string
	FlushInterval time.Duration
}

// StatsProcessor consumes clinic view events from the broker, aggregates
// them per clinic and UTC date, and periodically upserts clinic_stats
// rows. Events are at-most-once; a lost batch only skews analytics.
type StatsProcessor struct {
	repo    repository.StatsRepository
	broker  messaging.Broker
	config  StatsProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics

	pending  map[statsKey]*model.StatsDelta
	visitors map[statsKey]map[string]struct{}
}

type statsKey struct {
	clinicID string
	date     string
}

func NewStatsProcessor(
	repo repository.StatsRepository,
	broker messaging.Broker,
	config StatsProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *StatsProcessor {
	if config.Channel == "" {
		panic("Channel must be set")
	}
	if config.FlushInterval <= 0 {
		panic("FlushInterval must be greater than 0")
	}

	return &StatsProcessor{
		repo:     repo,
		broker:   broker,
		config:   config,
		logger:   logger,
		metrics:  metrics,
		pending:  make(map[statsKey]*model.StatsDelta),
		visitors: make(map[statsKey]map[string]struct{}),
	}
}

// Start consumes events until the context is cancelled. A final flush
// runs on shutdown.
func (p *StatsProcessor) Start(ctx context.Context) error {
	msgs, err := p.broker.Subscribe(ctx, p.config.Channel)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	p.logger.Info("starting stats processor", "channel", p.config.Channel)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down stats processor")
			p.flush(context.Background())
			return nil
		case payload, ok := <-msgs:
			if !ok {
				p.flush(context.Background())
				return nil
			}
			p.consume(payload)
		case <-ticker.C:
			p.flush(ctx)
		}
	}
}

func (p *StatsProcessor) consume(payload []byte) {
	var ev model.ViewEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		p.logger.Warn("dropping malformed view event", "error", err.Error())
		return
	}
	p.Record(ev)
}

// Record folds a single view event into the pending aggregation.
func (p *StatsProcessor) Record(ev model.ViewEvent) {
	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	day := occurred.UTC().Truncate(24 * time.Hour)
	key := statsKey{clinicID: ev.ClinicID.String(), date: day.Format("2006-01-02")}

	delta, ok := p.pending[key]
	if !ok {
		delta = &model.StatsDelta{
			ClinicID:     ev.ClinicID,
			Date:         day,
			CountryViews: make(map[string]int64),
		}
		p.pending[key] = delta
		p.visitors[key] = make(map[string]struct{})
	}

	delta.Views++
	if ev.Country != "" {
		delta.CountryViews[ev.Country]++
	}
	if ev.VisitorID != "" {
		seen := p.visitors[key]
		if _, dup := seen[ev.VisitorID]; !dup {
			seen[ev.VisitorID] = struct{}{}
			delta.UniqueVisitors++
		}
	}
}

// Pending returns the number of unflushed aggregation buckets.
func (p *StatsProcessor) Pending() int {
	return len(p.pending)
}

func (p *StatsProcessor) flush(ctx context.Context) {
	if len(p.pending) == 0 {
		return
	}

	timer := prometheus.NewTimer(p.metrics.StatsFlushLatency)
	defer timer.ObserveDuration()

	for key, delta := range p.pending {
		if err := p.repo.ApplyDelta(ctx, delta); err != nil {
			// Keep the bucket; it will be retried on the next flush.
			p.logger.Error(err, "failed to flush clinic stats",
				"clinic_id", key.clinicID, "date", key.date)
			p.metrics.DatabaseOperations.WithLabelValues("stats_upsert", "error").Inc()
			continue
		}
		p.metrics.DatabaseOperations.WithLabelValues("stats_upsert", "success").Inc()
		delete(p.pending, key)
		delete(p.visitors, key)
	}

	p.metrics.StatsFlushes.Inc()
}

// Flush forces a synchronous flush; used by tests and shutdown paths.
func (p *StatsProcessor) Flush(ctx context.Context) {
	p.flush(ctx)
}
