package llm

import (
	"context"
	"errors"

	"shopfront/app/config"

	"github.com/samber/oops"
)

var ErrAllProvidersFailed = errors.New("all completion providers failed")

// Backend is a single completion provider: prompt text in, reply text out.
// Both providers are capability-equivalent behind this interface.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

func newBackend(cfg config.ModelConfig) (Backend, error) {
	switch cfg.Kind {
	case "openai":
		return newOpenAIBackend(cfg), nil
	case "ollama":
		return newOllamaBackend(cfg)
	default:
		return nil, oops.Errorf("unknown llm backend kind: %s", cfg.Kind)
	}
}
