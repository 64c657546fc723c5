package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxKickoffBodySize = 1 << 20 // 1MB

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Handler for submitting a trip request. Decodes the payload, creates the
// job and returns immediately; generation happens on the worker pool.
func kickoffHandler(tripUC usecase.TripUseCase, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		r.Body = http.MaxBytesReader(w, r.Body, maxKickoffBodySize)
		defer r.Body.Close()

		var req model.TripRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		jobID, err := tripUC.Kickoff(ctx, req)
		if err != nil {
			if errors.Is(err, domain.ErrBusy) {
				writeDetail(w, http.StatusServiceUnavailable, "server busy, try again later")
				return
			}
			log.Error().Err(err).Msg("kickoff failed")
			writeDetail(w, http.StatusInternalServerError, "Failed to create job")
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{
			"status": "accepted",
			"job_id": jobID,
		})
	}
}

// Handler for polling a job by id. Read-only and idempotent; the payload
// shape depends only on the job status.
func resultsHandler(tripUC usecase.TripUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		jobID := chi.URLParam(r, "job_id")
		job, err := tripUC.Result(ctx, jobID)
		if err != nil {
			if errors.Is(err, domain.ErrJobNotFound) {
				writeDetail(w, http.StatusNotFound, "Job not found")
				return
			}
			writeDetail(w, http.StatusInternalServerError, "Failed to get job")
			return
		}

		switch job.Status {
		case model.JobStatusDone:
			writeJSON(w, http.StatusOK, struct {
				Status string          `json:"status"`
				Data   json.RawMessage `json:"data"`
			}{Status: "done", Data: job.Result})
		case model.JobStatusFailed:
			writeJSON(w, http.StatusOK, struct {
				Status string `json:"status"`
				Detail string `json:"detail"`
			}{Status: "failed", Detail: job.LastError})
		default:
			writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
