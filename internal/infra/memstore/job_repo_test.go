package memstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
)

func newRunningJob(t *testing.T, repo *JobRepo, id string) *model.Job {
	t.Helper()
	job := model.NewJob(id, model.TripRequest{FirstName: "John", Duration: 2})
	if err := repo.Create(context.Background(), job); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return job
}

func TestCreateAndFind(t *testing.T) {
	repo := NewJobRepo()
	newRunningJob(t, repo, "j1")

	got, err := repo.FindByID(context.Background(), "j1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != model.JobStatusRunning || got.Request.FirstName != "John" {
		t.Fatalf("unexpected job: %+v", got)
	}

	if err := repo.Create(context.Background(), model.NewJob("j1", model.TripRequest{})); !errors.Is(err, domain.ErrJobExists) {
		t.Fatalf("duplicate Create err = %v, want ErrJobExists", err)
	}
}

func TestFindUnknownID(t *testing.T) {
	repo := NewJobRepo()
	if _, err := repo.FindByID(context.Background(), "nope"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("lookup miss must not create a job")
	}
}

func TestCompleteOnce(t *testing.T) {
	repo := NewJobRepo()
	newRunningJob(t, repo, "j1")
	res := json.RawMessage(`{"summary":"ok"}`)

	if err := repo.Complete(context.Background(), "j1", res); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	got, _ := repo.FindByID(context.Background(), "j1")
	if got.Status != model.JobStatusDone || string(got.Result) != string(res) {
		t.Fatalf("job after Complete: %+v", got)
	}

	if err := repo.Complete(context.Background(), "j1", res); !errors.Is(err, domain.ErrJobFinished) {
		t.Fatalf("second Complete err = %v, want ErrJobFinished", err)
	}
	if err := repo.Fail(context.Background(), "j1", "late"); !errors.Is(err, domain.ErrJobFinished) {
		t.Fatalf("Fail after Complete err = %v, want ErrJobFinished", err)
	}
}

func TestFailRecordsReason(t *testing.T) {
	repo := NewJobRepo()
	newRunningJob(t, repo, "j1")

	if err := repo.Fail(context.Background(), "j1", "boom"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	got, _ := repo.FindByID(context.Background(), "j1")
	if got.Status != model.JobStatusFailed || got.LastError != "boom" {
		t.Fatalf("job after Fail: %+v", got)
	}
}

// A done status must never be visible without its result, no matter how the
// poll interleaves with completion.
func TestConcurrentPollersSeeConsistentRecord(t *testing.T) {
	repo := NewJobRepo()
	newRunningJob(t, repo, "j1")
	res := json.RawMessage(`{"days":[{"date":"2025-10-11","city":"Kyoto"}]}`)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got, err := repo.FindByID(context.Background(), "j1")
				if err != nil {
					t.Errorf("FindByID: %v", err)
					return
				}
				if got.Status == model.JobStatusDone && len(got.Result) == 0 {
					t.Errorf("observed done without result")
					return
				}
			}
		}()
	}

	time.Sleep(5 * time.Millisecond)
	if err := repo.Complete(context.Background(), "j1", res); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	close(stop)
	wg.Wait()
}

func TestDeleteFinishedBefore(t *testing.T) {
	repo := NewJobRepo()
	newRunningJob(t, repo, "running")
	newRunningJob(t, repo, "old-done")
	newRunningJob(t, repo, "fresh-done")

	if err := repo.Complete(context.Background(), "old-done", json.RawMessage(`{}`)); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := repo.Complete(context.Background(), "fresh-done", json.RawMessage(`{}`)); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Age the first finished job past the cutoff.
	repo.mu.Lock()
	j := repo.jobs["old-done"]
	j.UpdatedAt = time.Now().UTC().Add(-48 * time.Hour)
	repo.jobs["old-done"] = j
	repo.mu.Unlock()

	n, err := repo.DeleteFinishedBefore(context.Background(), time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteFinishedBefore: %v", err)
	}
	if n != 1 {
		t.Fatalf("evicted %d jobs, want 1", n)
	}
	if _, err := repo.FindByID(context.Background(), "old-done"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("old-done should be gone, err = %v", err)
	}
	for _, id := range []string{"running", "fresh-done"} {
		if _, err := repo.FindByID(context.Background(), id); err != nil {
			t.Fatalf("%s should survive the sweep: %v", id, err)
		}
	}
}
