package model

import (
	"encoding/json"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
)

type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"
)

// Job is one tracked itinerary-generation run. A job starts in "running"
// the moment it is accepted and transitions exactly once to "done" or
// "failed"; both are terminal. Result is set if and only if the job is done.
type Job struct {
	ID        string          `json:"id"`
	Status    JobStatus       `json:"status"`
	Request   TripRequest     `json:"request"`
	Result    json.RawMessage `json:"result,omitempty"`
	LastError string          `json:"last_error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewJob(id string, req TripRequest) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        id,
		Status:    JobStatusRunning,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (j *Job) Finished() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusFailed
}

// MarkDone records the planner output. It is the only way Result gets set,
// so a "done" job always carries its result.
func (j *Job) MarkDone(result json.RawMessage) error {
	if j.Finished() {
		return domain.ErrJobFinished
	}
	if len(result) == 0 {
		return domain.ErrEmptyItinerary
	}
	j.Status = JobStatusDone
	j.Result = result
	j.UpdatedAt = time.Now().UTC()
	return nil
}

func (j *Job) MarkFailed(reason string) error {
	if j.Finished() {
		return domain.ErrJobFinished
	}
	j.Status = JobStatusFailed
	j.LastError = reason
	j.UpdatedAt = time.Now().UTC()
	return nil
}
