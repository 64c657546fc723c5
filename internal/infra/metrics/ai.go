package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(llmTokensIn, llmTokensOut, llmTokensTotal, llmCallsLatencyMs) }

var llmTokensIn = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "llm_tokens_in",
		Help: "Sum of prompt (input) tokens per provider/model.",
	},
	[]string{"provider", "model"},
)

var llmTokensOut = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "llm_tokens_out",
		Help: "Sum of completion (output) tokens per provider/model.",
	},
	[]string{"provider", "model"},
)

var llmTokensTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Sum of total tokens per provider/model.",
	},
	[]string{"provider", "model"},
)

var llmCallsLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "llm_calls_latency_ms",
		Help:    "LLM call latency distribution in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
	},
	[]string{"provider", "model", "success"},
)

// ObserveLLMCall records one chat call made by the planner pipeline.
func ObserveLLMCall(provider, model string, promptTokens, completionTokens, totalTokens, latencyMs int, success bool) {
	p, m := norm(provider), norm(model)
	llmTokensIn.WithLabelValues(p, m).Add(float64(promptTokens))
	llmTokensOut.WithLabelValues(p, m).Add(float64(completionTokens))
	llmTokensTotal.WithLabelValues(p, m).Add(float64(totalTokens))
	llmCallsLatencyMs.WithLabelValues(p, m, strconv.FormatBool(success)).Observe(float64(latencyMs))
}
