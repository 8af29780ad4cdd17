package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log       Log       `yaml:"log"`
	Server    Server    `yaml:"server"`
	LLM       LLM       `yaml:"llm"`
	Assistant Assistant `yaml:"assistant"`
}

type LLM struct {
	Primary  ModelConfig `yaml:"primary" validate:"required"`
	Fallback ModelConfig `yaml:"fallback" validate:"required"`
}

type ModelConfig struct {
	// Backend kind: "openai" for any OpenAI-compatible API, "ollama" for a local ollama server
	Kind string `yaml:"kind" example:"openai" validate:"required,oneof=openai ollama"`
	// API base url
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// API token (unused by ollama)
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Model name
	Model string `yaml:"model" example:"deepseek/deepseek-chat-v3-0324:free" validate:"required"`
}

type Server struct {
	// Address the storefront API listens on
	Addr string `yaml:"addr" example:":8080"`
}

type Assistant struct {
	// Minimum score a product needs to appear in suggestions
	RelevanceThreshold float64 `yaml:"relevance_threshold"`
	// Maximum number of products attached to a single reply
	MaxSuggestions int `yaml:"max_suggestions"`
	// Number of recent turns included in the prompt context
	ContextTurns int `yaml:"context_turns"`
	// Number of recent searches remembered per session
	SearchWindow int `yaml:"search_window"`
	// Number of distinct interest categories remembered per session
	InterestWindow int `yaml:"interest_window"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	result.ApplyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Assistant.RelevanceThreshold == 0 {
		c.Assistant.RelevanceThreshold = 2
	}
	if c.Assistant.MaxSuggestions == 0 {
		c.Assistant.MaxSuggestions = 3
	}
	if c.Assistant.ContextTurns == 0 {
		c.Assistant.ContextTurns = 6
	}
	if c.Assistant.SearchWindow == 0 {
		c.Assistant.SearchWindow = 10
	}
	if c.Assistant.InterestWindow == 0 {
		c.Assistant.InterestWindow = 5
	}
}
