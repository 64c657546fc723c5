package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
)

func sampleRequest() TripRequest {
	return TripRequest{
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

func TestNewJobStartsRunning(t *testing.T) {
	j := NewJob("j1", sampleRequest())
	if j.Status != JobStatusRunning {
		t.Fatalf("new job status = %q, want running", j.Status)
	}
	if j.Result != nil {
		t.Fatalf("new job must not carry a result")
	}
	if j.Finished() {
		t.Fatalf("new job must not be finished")
	}
}

func TestMarkDoneIsTerminal(t *testing.T) {
	j := NewJob("j1", sampleRequest())
	res := json.RawMessage(`{"days":[]}`)

	if err := j.MarkDone(res); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if j.Status != JobStatusDone || string(j.Result) != string(res) {
		t.Fatalf("done job missing result: status=%q result=%q", j.Status, j.Result)
	}

	// No regression from a terminal state, in either direction.
	if err := j.MarkDone(res); !errors.Is(err, domain.ErrJobFinished) {
		t.Fatalf("second MarkDone err = %v, want ErrJobFinished", err)
	}
	if err := j.MarkFailed("late failure"); !errors.Is(err, domain.ErrJobFinished) {
		t.Fatalf("MarkFailed after done err = %v, want ErrJobFinished", err)
	}
	if j.Status != JobStatusDone {
		t.Fatalf("status regressed to %q", j.Status)
	}
}

func TestMarkDoneRejectsEmptyResult(t *testing.T) {
	j := NewJob("j1", sampleRequest())
	if err := j.MarkDone(nil); !errors.Is(err, domain.ErrEmptyItinerary) {
		t.Fatalf("MarkDone(nil) err = %v, want ErrEmptyItinerary", err)
	}
	if j.Finished() {
		t.Fatalf("job must stay running after rejected completion")
	}
}

func TestMarkFailedRecordsReason(t *testing.T) {
	j := NewJob("j1", sampleRequest())
	if err := j.MarkFailed("planner exploded"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if j.Status != JobStatusFailed || j.LastError != "planner exploded" {
		t.Fatalf("failed job: status=%q last_error=%q", j.Status, j.LastError)
	}
	if err := j.MarkDone(json.RawMessage(`{}`)); !errors.Is(err, domain.ErrJobFinished) {
		t.Fatalf("MarkDone after failed err = %v, want ErrJobFinished", err)
	}
}

func TestTripRequestHasService(t *testing.T) {
	req := sampleRequest()
	if !req.HasService("restaurants") {
		t.Fatalf("restaurants should be requested")
	}
	if req.HasService("transport") {
		t.Fatalf("transport should not be requested")
	}
}

func TestTripRequestCitiesFallback(t *testing.T) {
	req := sampleRequest()
	if got := req.Cities(); len(got) != 1 || got[0] != "Kyoto" {
		t.Fatalf("Cities() = %v", got)
	}
	req.CitiesToInclude = nil
	if got := req.Cities(); len(got) != 1 || got[0] != "Japan" {
		t.Fatalf("Cities() fallback = %v", got)
	}
}
