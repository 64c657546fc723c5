package sched

import (
	"context"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/repository"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Janitor periodically evicts finished jobs older than the retention
// window. Running jobs are never touched, so a slow plan can outlive many
// sweeps.
type Janitor struct {
	interval  time.Duration
	retention time.Duration
	jobs      repository.JobRepository
	log       *zerolog.Logger
}

func NewJanitor(interval, retention time.Duration, jobs repository.JobRepository, logger *zerolog.Logger) *Janitor {
	jLog := logger.With().Str("component", "Janitor").Logger()
	return &Janitor{
		interval:  interval,
		retention: retention,
		jobs:      jobs,
		log:       &jLog,
	}
}

func (w *Janitor) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Dur("retention", w.retention).Msg("Starting job janitor")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping job janitor")
			return ctx.Err()
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-w.retention)
			n, err := w.jobs.DeleteFinishedBefore(ctx, cutoff)
			if err != nil {
				w.log.Error().Err(err).Msg("janitor sweep error")
				continue
			}
			if n > 0 {
				metrics.AddJobsEvicted(n)
				w.log.Info().Int("count", n).Msg("finished jobs evicted")
			}
		}
	}
}
