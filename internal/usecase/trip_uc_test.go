//go:build !integration

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/memstore"

	"github.com/rs/zerolog"
)

func tripRequest() model.TripRequest {
	return model.TripRequest{
		PlanningType:    "explore",
		TravelWith:      "solo",
		Pace:            "equilibre",
		FirstName:       "John",
		DepartureDate:   "2025-10-11",
		ReturnDate:      "2025-10-13",
		Duration:        2,
		CitiesToInclude: []string{"Kyoto"},
		Budget:          5000,
		Interests:       []string{"temples"},
		Services:        []string{"restaurants", "lodging"},
	}
}

func newTripUC(gen ItineraryGenerator, d Dispatcher) (*tripUC, *memstore.JobRepo) {
	repo := memstore.NewJobRepo()
	logger := zerolog.Nop()
	return NewTripUseCase(repo, gen, d, time.Minute, &logger), repo
}

func TestKickoffReturnsWhileGenerationRuns(t *testing.T) {
	gen := &fakeGenerator{result: json.RawMessage(`{"summary":"trip"}`), release: make(chan struct{})}
	d := newAsyncDispatcher()
	uc, _ := newTripUC(gen, d)

	id, err := uc.Kickoff(context.Background(), tripRequest())
	if err != nil {
		t.Fatalf("Kickoff: %v", err)
	}
	if id == "" {
		t.Fatalf("empty job id")
	}

	// Poll while the generator is still blocked: must be running, and
	// repeated polls must agree.
	for i := 0; i < 3; i++ {
		job, err := uc.Result(context.Background(), id)
		if err != nil {
			t.Fatalf("Result: %v", err)
		}
		if job.Status != model.JobStatusRunning {
			t.Fatalf("status before completion = %q, want running", job.Status)
		}
	}

	close(gen.release)
	select {
	case <-d.done:
	case <-time.After(time.Second):
		t.Fatalf("generation never finished")
	}

	job, err := uc.Result(context.Background(), id)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if job.Status != model.JobStatusDone {
		t.Fatalf("status after completion = %q, want done", job.Status)
	}
	if string(job.Result) != `{"summary":"trip"}` {
		t.Fatalf("result = %s", job.Result)
	}
}

func TestGenerationFailureSurfacesAsFailed(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("provider down")}
	uc, _ := newTripUC(gen, syncDispatcher{})

	id, err := uc.Kickoff(context.Background(), tripRequest())
	if err != nil {
		t.Fatalf("Kickoff: %v", err)
	}

	job, err := uc.Result(context.Background(), id)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if job.Status != model.JobStatusFailed {
		t.Fatalf("status = %q, want failed", job.Status)
	}
	if job.LastError == "" {
		t.Fatalf("failed job missing reason")
	}
	if job.Result != nil {
		t.Fatalf("failed job must not carry a result")
	}
}

func TestEmptyGeneratorOutputParksJobFailed(t *testing.T) {
	// A generator that reports success with no payload cannot satisfy the
	// done-implies-result rule; the job must land in failed, not stay
	// running.
	gen := &fakeGenerator{result: nil}
	uc, _ := newTripUC(gen, syncDispatcher{})

	id, err := uc.Kickoff(context.Background(), tripRequest())
	if err != nil {
		t.Fatalf("Kickoff: %v", err)
	}

	job, err := uc.Result(context.Background(), id)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if job.Status != model.JobStatusFailed {
		t.Fatalf("status = %q, want failed", job.Status)
	}
	if job.LastError != domain.ErrEmptyItinerary.Error() {
		t.Fatalf("reason = %q, want %q", job.LastError, domain.ErrEmptyItinerary)
	}
}

func TestKickoffOnSaturatedPool(t *testing.T) {
	gen := &fakeGenerator{result: json.RawMessage(`{}`)}
	uc, repo := newTripUC(gen, busyDispatcher{})

	if _, err := uc.Kickoff(context.Background(), tripRequest()); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("Kickoff err = %v, want ErrBusy", err)
	}

	// The rejected job must not linger as running: everything retained has
	// to be finished, hence sweepable.
	before := repo.Len()
	n, err := repo.DeleteFinishedBefore(context.Background(), time.Now().UTC().Add(time.Second))
	if err != nil {
		t.Fatalf("DeleteFinishedBefore: %v", err)
	}
	if n != before {
		t.Fatalf("%d job(s) left running after rejected kickoff", before-n)
	}
}

func TestResultUnknownID(t *testing.T) {
	uc, _ := newTripUC(&fakeGenerator{}, syncDispatcher{})
	if _, err := uc.Result(context.Background(), "nonexistent-id"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}
