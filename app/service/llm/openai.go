package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shopfront/app/config"

	"github.com/sashabaranov/go-openai"
)

const completionTimeout = 30 * time.Second

type openAIBackend struct {
	client *openai.Client
	model  string
}

func newOpenAIBackend(cfg config.ModelConfig) *openAIBackend {
	clientConfig := openai.DefaultConfig(cfg.Token)

	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: completionTimeout,
	}

	return &openAIBackend{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (b *openAIBackend) Name() string {
	return "openai/" + b.model
}

func (b *openAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	aiResponse, err := b.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: b.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxCompletionTokens: 600,
			Temperature:         0.7,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}
