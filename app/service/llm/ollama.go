package llm

import (
	"context"
	"fmt"
	"strings"

	"shopfront/app/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

type ollamaBackend struct {
	llm   *ollama.LLM
	model string
}

func newOllamaBackend(cfg config.ModelConfig) (*ollamaBackend, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &ollamaBackend{
		llm:   llm,
		model: cfg.Model,
	}, nil
}

func (b *ollamaBackend) Name() string {
	return "ollama/" + b.model
}

func (b *ollamaBackend) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	result, err := llms.GenerateFromSinglePrompt(ctx, b.llm, prompt,
		llms.WithMaxTokens(600),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	return strings.TrimSpace(result), nil
}
