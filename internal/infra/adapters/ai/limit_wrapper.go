package ai

import (
	"context"

	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.LLMAdapter = (*limitedLLM)(nil)

type limitedLLM struct {
	inner adapter.LLMAdapter
	sem   chan struct{}
}

// NewLimitedLLM caps concurrent calls into the provider across all running
// jobs. maxConcurrent <= 0 disables the cap.
func NewLimitedLLM(inner adapter.LLMAdapter, maxConcurrent int) adapter.LLMAdapter {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedLLM{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedLLM) Name() string { return l.inner.Name() }

func (l *limitedLLM) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	if err := l.acquire(ctx); err != nil {
		return "", err
	}
	defer l.release()
	return l.inner.Chat(ctx, model, messages)
}

func (l *limitedLLM) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	if err := l.acquire(ctx); err != nil {
		return "", adapter.Usage{}, err
	}
	defer l.release()
	return l.inner.ChatWithUsage(ctx, model, messages)
}

func (l *limitedLLM) acquire(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *limitedLLM) release() { <-l.sem }
