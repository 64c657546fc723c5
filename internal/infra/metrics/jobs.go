package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(kickoffsTotal, jobsFinishedTotal, jobsInFlight, jobsEvictedTotal) }

var kickoffsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "kickoffs_total",
		Help: "Total number of accepted kickoff requests.",
	},
)

var jobsFinishedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobs_finished_total",
		Help: "Total number of itinerary jobs finished, labeled by status.",
	},
	[]string{"status"}, // 'done', 'failed'
)

var jobsInFlight = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "jobs_in_flight",
		Help: "Number of itinerary jobs currently running.",
	},
)

var jobsEvictedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "jobs_evicted_total",
		Help: "Finished jobs removed by the retention janitor.",
	},
)

func IncKickoff() {
	kickoffsTotal.Inc()
	jobsInFlight.Inc()
}

func IncJobFinished(status string) {
	jobsFinishedTotal.WithLabelValues(norm(status)).Inc()
	jobsInFlight.Dec()
}

func AddJobsEvicted(n int) {
	if n > 0 {
		jobsEvictedTotal.Add(float64(n))
	}
}
