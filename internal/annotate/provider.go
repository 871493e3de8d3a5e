package annotate

import (
	"context"
	"errors"
	"time"

	"github.com/bkmekonnen/vigil/internal/model"
)

// ErrUnavailable signals that the annotation backend could not be reached.
// Callers treat it as transient and may retry.
var ErrUnavailable = errors.New("annotator unavailable")

// Provider defines the interface for annotation backends. An annotator turns
// raw article text into sentences with tokens, POS tags, lemmas, named
// entities, dependency parses and coreference chains.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Annotate runs the full annotation pipeline over one article
	Annotate(ctx context.Context, article model.Article) (*model.ArticleContext, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds annotation provider configuration
type Config struct {
	// Provider name: "corenlp" or "openai"
	Provider string

	// BaseURL of the CoreNLP server or an OpenAI-compatible endpoint
	BaseURL string

	// APIKey for the openai provider
	APIKey string

	// Model name for the openai provider
	Model string

	// Timeout for one annotation request
	Timeout time.Duration

	// MaxRetries bounds retry attempts on transient failures
	MaxRetries int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts the application config into a provider Config.
func ConfigFromModel(cfg model.AnnotatorConfig, http model.HTTPConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		HTTPProxy:  http.HTTPProxy,
		HTTPSProxy: http.HTTPSProxy,
		NoProxy:    http.NoProxy,
	}
}
