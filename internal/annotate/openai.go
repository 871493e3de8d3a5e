package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bkmekonnen/vigil/internal/model"
)

// OpenAIProvider implements the Provider interface using an LLM behind an
// OpenAI-compatible API. The model is asked to emit the same annotation
// schema a CoreNLP server would produce, already 0-based. Useful where no
// CoreNLP server can run; slower and costs tokens.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// openaiAnnotation is the JSON document the model is instructed to return.
type openaiAnnotation struct {
	Sentences   []model.AnnotatedSentence `json:"sentences"`
	CorefChains []model.CorefChain        `json:"coref_chains,omitempty"`
}

// NewOpenAIProvider creates an LLM-backed annotator.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

const annotationSystemPrompt = `You are a linguistic annotation engine. Given a news article, return ONLY a JSON object with this exact schema:

{
  "sentences": [
    {
      "index": 0,
      "text": "sentence text",
      "tokens": [{"word": "...", "lemma": "lowercase lemma", "pos": "Penn Treebank tag", "entity": "PERSON|ORGANIZATION|LOCATION|DATE|NUMBER or omit", "index": 0}],
      "entities": [{"text": "...", "type": "PERSON|ORGANIZATION|LOCATION|DATE|NUMBER", "start": 0, "end": 1}],
      "dependencies": [{"relation": "nsubj|dobj|det|amod|compound|nummod|nmod|...", "governor": 1, "dependent": 0}]
    }
  ],
  "coref_chains": [
    {"id": 0, "mentions": [{"text": "...", "sentence_index": 0, "start_token": 0, "end_token": 1, "representative": true}]}
  ]
}

Rules:
- All token indices are 0-based. The dependency root's governor is -1.
- Entity start/end are inclusive token indices within the sentence.
- Exactly one mention per coreference chain is representative.
- Only include coreference chains with two or more mentions.
- Do not include any text outside the JSON object.`

// Annotate asks the model for an annotation document and parses it.
func (p *OpenAIProvider) Annotate(ctx context.Context, article model.Article) (*model.ArticleContext, error) {
	modelName := p.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	timeout := p.config.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: annotationSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: article.Text,
			},
		},
		Temperature: 0, // annotation must be deterministic
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty completion")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var ann openaiAnnotation
	if err := json.Unmarshal([]byte(content), &ann); err != nil {
		return nil, fmt.Errorf("openai: parse annotation: %w", err)
	}

	for i := range ann.Sentences {
		ann.Sentences[i].Index = i
	}

	return &model.ArticleContext{
		ArticleID:        article.ID,
		Title:            article.Title,
		DeclaredDate:     article.Date,
		DeclaredLocation: article.Location,
		Sentences:        ann.Sentences,
		CorefChains:      ann.CorefChains,
	}, nil
}
