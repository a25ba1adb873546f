// Package inference calls a hosted image-to-text model to read invoice
// images. It is deliberately thin: it supplies a text blob; everything that
// understands the text lives in internal/fields.
package inference

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Config for the inference client. Credentials are passed in explicitly;
// the env fallback exists only for the small CLI tools.
type Config struct {
	BaseURL       string        // endpoint root, e.g. https://api-inference.huggingface.co
	APIKey        string        // bearer token; falls back to env INFERENCE_API_KEY
	Model         string        // model path appended to BaseURL
	Timeout       time.Duration // http client timeout
	MaxImageBytes int64         // refuse larger uploads; 0 = 10 MiB
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("INFERENCE_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "microsoft/trocr-base-printed"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 10 * 1024 * 1024
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
