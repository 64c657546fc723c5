//go:build !integration

package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/adapter"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/worker"
)

// --- Dispatcher fakes ---

// syncDispatcher runs the task inline, so Kickoff only returns after the
// whole generation finished. Useful for deterministic outcome checks.
type syncDispatcher struct{}

func (syncDispatcher) Submit(task worker.Task) error {
	return task(context.Background())
}

// asyncDispatcher runs the task on a goroutine and reports completion.
type asyncDispatcher struct {
	done chan struct{}
}

func newAsyncDispatcher() *asyncDispatcher {
	return &asyncDispatcher{done: make(chan struct{})}
}

func (d *asyncDispatcher) Submit(task worker.Task) error {
	go func() {
		_ = task(context.Background())
		close(d.done)
	}()
	return nil
}

// busyDispatcher simulates a saturated pool.
type busyDispatcher struct{}

func (busyDispatcher) Submit(task worker.Task) error { return domain.ErrBusy }

// --- Generator fakes ---

type fakeGenerator struct {
	result  json.RawMessage
	err     error
	release chan struct{} // when non-nil, Generate blocks until closed
}

func (g *fakeGenerator) Generate(ctx context.Context, req model.TripRequest) (json.RawMessage, error) {
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.result, g.err
}

// --- LLM / search fakes for the pipeline ---

// scriptedLLM answers each call based on the stage's system prompt and
// records which stages ran. Safe for the weather fan-out.
type scriptedLLM struct {
	mu             sync.Mutex
	synthesis      string // reply for the synthesis stage
	stageErr       map[string]error
	calls          []string
	synthesisInput string // user message the synthesis stage received
}

func newScriptedLLM(synthesis string) *scriptedLLM {
	return &scriptedLLM{synthesis: synthesis, stageErr: map[string]error{}}
}

func (f *scriptedLLM) Name() string { return "scripted" }

func (f *scriptedLLM) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	text, _, err := f.ChatWithUsage(ctx, model, messages)
	return text, err
}

func (f *scriptedLLM) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	stage := stageOf(messages[0].Content)
	f.mu.Lock()
	f.calls = append(f.calls, stage)
	if stage == "synthesis" && len(messages) > 1 {
		f.synthesisInput = messages[1].Content
	}
	err := f.stageErr[stage]
	f.mu.Unlock()
	if err != nil {
		return "", adapter.Usage{}, err
	}
	if stage == "synthesis" {
		return f.synthesis, adapter.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30}, nil
	}
	return stage + " note", adapter.Usage{}, nil
}

func (f *scriptedLLM) synthesisSeen() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.synthesisInput
}

func (f *scriptedLLM) stages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *scriptedLLM) count(stage string) int {
	n := 0
	for _, s := range f.stages() {
		if s == stage {
			n++
		}
	}
	return n
}

func stageOf(system string) string {
	switch {
	case strings.Contains(system, "travel profiler"):
		return "profile"
	case strings.Contains(system, "weather analyst"):
		return "weather"
	case strings.Contains(system, "live-news analyst"):
		return "advisories"
	case strings.Contains(system, "lodging scout"):
		return "lodging"
	case strings.Contains(system, "dining planner"):
		return "restaurants"
	case strings.Contains(system, "transport planner"):
		return "transport"
	case strings.Contains(system, "activities planner"):
		return "activities"
	case strings.Contains(system, "budget controller"):
		return "budget"
	case strings.Contains(system, "consistency auditor"):
		return "audit"
	case strings.Contains(system, "itinerary synthesizer"):
		return "synthesis"
	}
	return "unknown"
}

type fakeSearch struct {
	hits []adapter.SearchResult
	err  error
}

func (f *fakeSearch) Search(ctx context.Context, query string, limit int) ([]adapter.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}
