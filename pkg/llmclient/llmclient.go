// Package llmclient builds the chat completions client from environment
// configuration. The base URL may point at any OpenAI-compatible endpoint
// (hosted API, OpenRouter, or a local server).
package llmclient

import (
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"http://127.0.0.1:1234/v1"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" required:"true"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("llm model is required")
	}
	return nil
}

// NewClient builds the completions client. Local OpenAI-compatible servers
// accept any key, so an empty APIKey is allowed when BaseURL is set.
func NewClient(cfg Config) *openai.Client {
	opts := []option.RequestOption{
		option.WithRequestTimeout(cfg.Timeout),
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		opts = append(opts, option.WithAPIKey(key))
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	client := openai.NewClient(opts...)
	return &client
}
