//go:build !integration

package web

import (
	"context"
	"sync"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/usecase"
)

// Compile-time check
var _ usecase.TripUseCase = (*mockTripUC)(nil)

type mockTripUC struct {
	mu         sync.Mutex
	jobs       map[string]*model.Job
	nextID     string
	KickoffErr error // to simulate busy/internal errors
	kickoffs   []model.TripRequest
}

func newMockTripUC() *mockTripUC {
	return &mockTripUC{jobs: map[string]*model.Job{}, nextID: "job-1"}
}

func (m *mockTripUC) Kickoff(ctx context.Context, req model.TripRequest) (string, error) {
	if m.KickoffErr != nil {
		return "", m.KickoffErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kickoffs = append(m.kickoffs, req)
	job := model.NewJob(m.nextID, req)
	m.jobs[job.ID] = job
	return job.ID, nil
}

func (m *mockTripUC) Result(ctx context.Context, jobID string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *mockTripUC) lastKickoff() (model.TripRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.kickoffs) == 0 {
		return model.TripRequest{}, false
	}
	return m.kickoffs[len(m.kickoffs)-1], true
}
