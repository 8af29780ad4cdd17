package llm

import (
	"context"
	"fmt"
	"log/slog"

	"shopfront/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
)

// Invoker tries an ordered list of completion backends and returns the first
// success. One hop, no retries, no backoff: the fallback provider is the
// whole recovery strategy.
type Invoker struct {
	backends []Backend
}

func New(di *do.Injector) (*Invoker, error) {
	cfg := do.MustInvoke[*config.Config](di)

	primary, err := newBackend(cfg.LLM.Primary)
	if err != nil {
		return nil, oops.Errorf("failed to create primary backend: %w", err)
	}

	fallback, err := newBackend(cfg.LLM.Fallback)
	if err != nil {
		return nil, oops.Errorf("failed to create fallback backend: %w", err)
	}

	return NewWithBackends(primary, fallback), nil
}

func NewWithBackends(backends ...Backend) *Invoker {
	return &Invoker{backends: backends}
}

func (inv *Invoker) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, backend := range inv.backends {
		reply, err := backend.Complete(ctx, prompt)
		if err == nil {
			return reply, nil
		}

		lastErr = err
		slog.Warn("Completion backend failed",
			"backend", backend.Name(),
			"error", err,
		)
	}

	if lastErr == nil {
		return "", ErrAllProvidersFailed
	}

	return "", fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}
