package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo keeps job records as JSON values in redis. Running jobs carry no
// expiry; finishing a job rewrites the record with the retention TTL, so
// eviction is native and DeleteFinishedBefore has nothing to sweep.
type JobRepo struct {
	client    RedisClient
	retention time.Duration
}

func NewJobRepo(client RedisClient, retention time.Duration) *JobRepo {
	return &JobRepo{client: client, retention: retention}
}

func key(id string) string { return "trip_job:" + id }

func (r *JobRepo) Create(ctx context.Context, job *model.Job) error {
	if job == nil || job.ID == "" {
		return domain.ErrInvalidArgument
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, key(job.ID), data, 0)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrJobExists
	}
	return nil
}

func (r *JobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	data, err := r.client.Get(ctx, key(id))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	var job model.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepo) Complete(ctx context.Context, id string, result json.RawMessage) error {
	return r.finish(ctx, id, func(j *model.Job) error { return j.MarkDone(result) })
}

func (r *JobRepo) Fail(ctx context.Context, id string, reason string) error {
	return r.finish(ctx, id, func(j *model.Job) error { return j.MarkFailed(reason) })
}

// finish rewrites the record in one Set so pollers observe either the
// running job or the complete terminal record, never a mix. A single writer
// finishes any given job, which keeps the read-modify-write safe.
func (r *JobRepo) finish(ctx context.Context, id string, mutate func(*model.Job) error) error {
	job, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := mutate(job); err != nil {
		return err
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(id), data, r.retention)
}

func (r *JobRepo) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	// Retention is enforced by the per-key TTL set in finish.
	return 0, nil
}
