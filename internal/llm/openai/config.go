package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Azure OpenAI client.
type Config struct {
	Endpoint            string        // e.g. https://<resource>.cognitiveservices.azure.com
	Deployment          string        // e.g. "gpt-5-mini"
	APIVersion          string        // e.g. "2024-12-01-preview"
	APIKey              string        // if empty, falls back to env AZURE_OPENAI_API_KEY
	Timeout             time.Duration // http client timeout
	MaxCompletionTokens int           // extracted documents routinely need several thousand tokens
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("AZURE_OPENAI_API_KEY")
	}
	if cfg.Deployment == "" {
		cfg.Deployment = "gpt-5-mini"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-12-01-preview"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.MaxCompletionTokens <= 0 {
		cfg.MaxCompletionTokens = 16384
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// HasCredential reports whether the client holds an API key. Tasks use it
// as a precondition check before issuing a call.
func (c *Client) HasCredential() bool {
	return c.cfg.APIKey != ""
}
