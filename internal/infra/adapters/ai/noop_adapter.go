package ai

import (
	"context"
	"time"

	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/adapter"
)

var _ adapter.LLMAdapter = (*NoopAdapter)(nil)

// NoopAdapter implements adapter.LLMAdapter for local/dev runs without any
// provider key. It answers every stage with a fixed reply after a short,
// context-aware delay.
type NoopAdapter struct {
	Reply string
	Delay time.Duration
}

func NewNoopAdapter() *NoopAdapter {
	return &NoopAdapter{Reply: "{}", Delay: 50 * time.Millisecond}
}

func (a *NoopAdapter) Name() string { return "noop" }

func (a *NoopAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	text, _, err := a.ChatWithUsage(ctx, model, messages)
	return text, err
}

func (a *NoopAdapter) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	select {
	case <-time.After(a.Delay):
	case <-ctx.Done():
		return "", adapter.Usage{}, ctx.Err()
	}
	return a.Reply, adapter.Usage{}, nil
}
