package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bkmekonnen/vigil/internal/model"
	"github.com/bkmekonnen/vigil/internal/util"
)

const corenlpAnnotators = "tokenize,ssplit,pos,lemma,ner,depparse,coref"

// CoreNLPProvider implements the Provider interface against a Stanford
// CoreNLP server. CoreNLP addresses tokens 1-based with the artificial ROOT
// at position 0; everything is rebased to 0-based indices with the root
// governor at -1 during conversion.
type CoreNLPProvider struct {
	baseURL    string
	httpClient *http.Client
	config     Config
}

// CoreNLP server JSON structures
type corenlpDocument struct {
	Sentences []corenlpSentence           `json:"sentences"`
	Corefs    map[string][]corenlpMention `json:"corefs"`
}

type corenlpSentence struct {
	Index             int                 `json:"index"`
	Tokens            []corenlpToken      `json:"tokens"`
	BasicDependencies []corenlpDependency `json:"basicDependencies"`
	EntityMentions    []corenlpEntity     `json:"entitymentions"`
}

type corenlpToken struct {
	Index int    `json:"index"` // 1-based
	Word  string `json:"word"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	NER   string `json:"ner"`
}

type corenlpDependency struct {
	Dep       string `json:"dep"`
	Governor  int    `json:"governor"`  // 1-based, 0 = ROOT
	Dependent int    `json:"dependent"` // 1-based
}

type corenlpEntity struct {
	Text       string `json:"text"`
	NER        string `json:"ner"`
	TokenBegin int    `json:"tokenBegin"` // 0-based, inclusive
	TokenEnd   int    `json:"tokenEnd"`   // 0-based, exclusive
}

type corenlpMention struct {
	Text             string `json:"text"`
	SentNum          int    `json:"sentNum"`     // 1-based
	StartIndex       int    `json:"startIndex"`  // 1-based, inclusive
	EndIndex         int    `json:"endIndex"`    // 1-based, exclusive
	IsRepresentative bool   `json:"isRepresentativeMention"`
}

type corenlpError struct {
	Message string `json:"message"`
}

// NewCoreNLPProvider creates a provider talking to a CoreNLP server.
func NewCoreNLPProvider(config Config) (*CoreNLPProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second // coref on long articles is slow
	}

	return &CoreNLPProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			},
		},
		config: config,
	}, nil
}

// Name returns the provider name
func (p *CoreNLPProvider) Name() string {
	return "corenlp"
}

// IsAvailable checks if the CoreNLP server answers its readiness probe
func (p *CoreNLPProvider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/ready", nil)
	if err != nil {
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CoreNLP availability check failed (connection to %s): %v\n", p.baseURL, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// Annotate sends the article text to the server and converts the response.
func (p *CoreNLPProvider) Annotate(ctx context.Context, article model.Article) (*model.ArticleContext, error) {
	props, err := json.Marshal(map[string]string{
		"annotators":   corenlpAnnotators,
		"outputFormat": "json",
	})
	if err != nil {
		return nil, fmt.Errorf("corenlp: marshal properties: %w", err)
	}

	endpoint := fmt.Sprintf("%s/?properties=%s", p.baseURL, url.QueryEscape(string(props)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(article.Text))
	if err != nil {
		return nil, fmt.Errorf("corenlp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("corenlp: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr corenlpError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("corenlp: server error (HTTP %d): %s", resp.StatusCode, apiErr.Message)
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("corenlp: server error (HTTP %d)", resp.StatusCode)
	}

	var doc corenlpDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("corenlp: parse response: %w", err)
	}

	return convertDocument(article, doc), nil
}

// convertDocument rebases a CoreNLP document onto 0-based model types.
func convertDocument(article model.Article, doc corenlpDocument) *model.ArticleContext {
	ctx := &model.ArticleContext{
		ArticleID:        article.ID,
		Title:            article.Title,
		DeclaredDate:     article.Date,
		DeclaredLocation: article.Location,
		Sentences:        make([]model.AnnotatedSentence, 0, len(doc.Sentences)),
	}

	for i, s := range doc.Sentences {
		sent := model.AnnotatedSentence{
			Index:  i,
			Tokens: make([]model.Token, 0, len(s.Tokens)),
		}

		var words []string
		for _, t := range s.Tokens {
			sent.Tokens = append(sent.Tokens, model.Token{
				Word:   t.Word,
				Lemma:  strings.ToLower(t.Lemma),
				POS:    t.POS,
				Entity: nerTag(t.NER),
				Index:  t.Index - 1,
			})
			words = append(words, t.Word)
		}
		sent.Text = strings.Join(words, " ")

		for _, d := range s.BasicDependencies {
			sent.Dependencies = append(sent.Dependencies, model.Dependency{
				Relation:  d.Dep,
				Governor:  d.Governor - 1,
				Dependent: d.Dependent - 1,
			})
		}

		for _, e := range s.EntityMentions {
			if e.NER == "" || e.NER == "O" {
				continue
			}
			sent.Entities = append(sent.Entities, model.Entity{
				Text:  e.Text,
				Type:  e.NER,
				Start: e.TokenBegin,
				End:   e.TokenEnd - 1,
			})
		}

		ctx.Sentences = append(ctx.Sentences, sent)
	}

	// Map iteration order is random; sort the chain keys so repeated runs
	// produce identical output.
	keys := make([]string, 0, len(doc.Corefs))
	for k := range doc.Corefs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	chainID := 0
	for _, k := range keys {
		mentions := doc.Corefs[k]
		if len(mentions) < 2 {
			continue
		}
		chain := model.CorefChain{ID: chainID}
		for _, m := range mentions {
			chain.Mentions = append(chain.Mentions, model.CorefMention{
				Text:           m.Text,
				SentenceIndex:  m.SentNum - 1,
				StartToken:     m.StartIndex - 1,
				EndToken:       m.EndIndex - 2,
				Representative: m.IsRepresentative,
			})
		}
		ctx.CorefChains = append(ctx.CorefChains, chain)
		chainID++
	}

	return ctx
}

func nerTag(ner string) string {
	if ner == "O" {
		return ""
	}
	return ner
}
