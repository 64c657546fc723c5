package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/repository"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/logging"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/metrics"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/worker"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ TripUseCase = (*tripUC)(nil)

// TripUseCase is the job gateway: accept a trip request, hand it to the
// background dispatcher, and answer polls by job id.
type TripUseCase interface {
	// Kickoff creates a running job and schedules generation. It returns as
	// soon as the job is queued; it never waits for the planner.
	Kickoff(ctx context.Context, req model.TripRequest) (jobID string, err error)
	// Result looks up a job. Read-only; unknown ids return ErrJobNotFound.
	Result(ctx context.Context, jobID string) (*model.Job, error)
}

// Dispatcher is the injected background-execution capability. Production
// wires *worker.Pool; tests wire a synchronous fake.
type Dispatcher interface {
	Submit(task worker.Task) error
}

type tripUC struct {
	jobs       repository.JobRepository
	generator  ItineraryGenerator
	dispatcher Dispatcher
	timeout    time.Duration
	log        *zerolog.Logger
}

func NewTripUseCase(jobs repository.JobRepository, gen ItineraryGenerator, d Dispatcher, timeout time.Duration, logger *zerolog.Logger) *tripUC {
	ucLog := logger.With().Str("component", "TripUC").Logger()
	return &tripUC{
		jobs:       jobs,
		generator:  gen,
		dispatcher: d,
		timeout:    timeout,
		log:        &ucLog,
	}
}

func (u *tripUC) Kickoff(ctx context.Context, req model.TripRequest) (string, error) {
	job := model.NewJob(uuid.NewString(), req)
	if err := u.jobs.Create(ctx, job); err != nil {
		return "", err
	}

	id := job.ID
	if err := u.dispatcher.Submit(func(ctx context.Context) error {
		u.process(ctx, id, req)
		return nil
	}); err != nil {
		// The pool dropped the task; the record must not sit in "running"
		// forever, so park it as failed before reporting busy.
		_ = u.jobs.Fail(context.Background(), id, "rejected: worker queue full")
		return "", domain.ErrBusy
	}

	metrics.IncKickoff()
	u.log.Info().Str("job_id", id).Int("cities", len(req.CitiesToInclude)).Msg("job accepted")
	return id, nil
}

func (u *tripUC) Result(ctx context.Context, jobID string) (*model.Job, error) {
	return u.jobs.FindByID(ctx, jobID)
}

// process runs on a pool worker. It is the single writer that finishes the
// job: exactly one Complete or Fail per id, using a background context for
// the final write so a planning timeout cannot lose the outcome.
func (u *tripUC) process(ctx context.Context, id string, req model.TripRequest) {
	ctx = logging.WithJobID(ctx, id)
	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "TripUC.process")()

	genCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	result, err := u.generator.Generate(genCtx, req)

	if err != nil {
		metrics.IncJobFinished(string(model.JobStatusFailed))
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("itinerary generation failed")
		if ferr := u.jobs.Fail(context.Background(), id, err.Error()); ferr != nil {
			log.Error().Err(ferr).Msg("could not record job failure")
		}
		return
	}

	if cerr := u.jobs.Complete(context.Background(), id, result); cerr != nil {
		// The record must still reach a terminal state, or pollers would
		// see "running" forever.
		log.Error().Err(cerr).Msg("could not record job result")
		metrics.IncJobFinished(string(model.JobStatusFailed))
		if ferr := u.jobs.Fail(context.Background(), id, cerr.Error()); ferr != nil {
			log.Error().Err(ferr).Msg("could not record job failure")
		}
		return
	}
	metrics.IncJobFinished(string(model.JobStatusDone))
	log.Info().Dur("duration", time.Since(start)).Msg("itinerary ready")
}
