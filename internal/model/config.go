package model

import "time"

// Config is the complete vigil configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Annotator   AnnotatorConfig   `yaml:"annotator" json:"annotator"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" json:"rate_limit"`
	Thresholds  ThresholdConfig   `yaml:"thresholds" json:"thresholds"`
	Lexicon     LexiconConfig     `yaml:"lexicon" json:"lexicon"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig controls the article fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// AnnotatorConfig selects and configures the annotation collaborator
type AnnotatorConfig struct {
	// Provider name: "corenlp" or "openai"
	Provider string `yaml:"provider" json:"provider"`

	// BaseURL of the CoreNLP server or OpenAI-compatible endpoint
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// APIKey for the openai provider
	APIKey string `yaml:"api_key,omitempty" json:"-"`

	// Model name for the openai provider
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries"`
}

// CacheConfig controls annotation-response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls the article worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// RateLimitConfig controls per-host request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size"`
}

// ThresholdConfig holds the empirically chosen pipeline constants. The
// defaults are the tuned values; they are configuration, not fixed law.
type ThresholdConfig struct {
	SalienceMin     int     `yaml:"salience_min" json:"salience_min"`
	ClusterMin      int     `yaml:"cluster_min" json:"cluster_min"`
	ConfidenceMin   float64 `yaml:"confidence_min" json:"confidence_min"`
	CasualtyMin     int     `yaml:"casualty_min" json:"casualty_min"`
	CasualtyMax     int     `yaml:"casualty_max" json:"casualty_max"`
	ActorWindowSize int     `yaml:"actor_window_size" json:"actor_window_size"`
}

// LexiconConfig points at optional YAML overrides for the built-in
// lexicons and gazetteers.
type LexiconConfig struct {
	ViolenceLexiconPath string `yaml:"violence_lexicon_path,omitempty" json:"violence_lexicon_path,omitempty"`
	GazetteerPath       string `yaml:"gazetteer_path,omitempty" json:"gazetteer_path,omitempty"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
	Verbose   bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Vigil/0.1 (+https://github.com/bkmekonnen/vigil)",
			MaxBodyBytes: 2_000_000,
		},
		Annotator: AnnotatorConfig{
			Provider:   "corenlp",
			BaseURL:    "http://localhost:9000",
			Timeout:    60 * time.Second,
			MaxRetries: 3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".vigil-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2.0,
			BurstSize:         5,
		},
		Thresholds: ThresholdConfig{
			SalienceMin:     7,
			ClusterMin:      4,
			ConfidenceMin:   0.30,
			CasualtyMin:     1,
			CasualtyMax:     10000,
			ActorWindowSize: 5,
		},
		Output: OutputConfig{
			Directory: "./vigil-output",
		},
	}
}
