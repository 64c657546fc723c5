package memstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo is the default, process-memory job table. Records are copied on
// the way in and out so a poller can never see a half-written job: the
// completion write swaps the whole record under the lock.
type JobRepo struct {
	mu   sync.RWMutex
	jobs map[string]model.Job
}

func NewJobRepo() *JobRepo {
	return &JobRepo{jobs: make(map[string]model.Job)}
}

func (r *JobRepo) Create(ctx context.Context, job *model.Job) error {
	if job == nil || job.ID == "" {
		return domain.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; ok {
		return domain.ErrJobExists
	}
	r.jobs[job.ID] = *job
	return nil
}

func (r *JobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := j
	return &cp, nil
}

func (r *JobRepo) Complete(ctx context.Context, id string, result json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if err := j.MarkDone(result); err != nil {
		return err
	}
	r.jobs[id] = j
	return nil
}

func (r *JobRepo) Fail(ctx context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if err := j.MarkFailed(reason); err != nil {
		return err
	}
	r.jobs[id] = j
	return nil
}

func (r *JobRepo) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, j := range r.jobs {
		if j.Finished() && j.UpdatedAt.Before(cutoff) {
			delete(r.jobs, id)
			n++
		}
	}
	return n, nil
}

// Len reports the number of retained jobs. Used by tests and logs.
func (r *JobRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
