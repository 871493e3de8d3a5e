package annotate

import (
	"fmt"
	"strings"
)

// NewProvider creates an annotation provider based on configuration.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "corenlp", "":
		return NewCoreNLPProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown annotation provider: %s (supported: corenlp, openai)", config.Provider)
	}
}
