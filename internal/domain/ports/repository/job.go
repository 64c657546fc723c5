package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
)

// JobRepository owns the job table. It is injected into the gateway at
// construction; there is no package-level store.
//
// Exactly one writer finishes a given job (the background completion
// callback) while pollers read concurrently, so implementations must publish
// records atomically: a reader may never observe a done job without its
// result.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// Complete transitions running -> done and stores the result.
	Complete(ctx context.Context, id string, result json.RawMessage) error
	// Fail transitions running -> failed and records the reason.
	Fail(ctx context.Context, id string, reason string) error

	// DeleteFinishedBefore evicts done/failed jobs whose last update is
	// older than cutoff. Running jobs are never evicted.
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
