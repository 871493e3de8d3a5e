package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bkmekonnen/vigil/internal/model"
	"github.com/bkmekonnen/vigil/internal/pipeline"
)

var (
	outJSON       string
	outCSV        string
	timeout       time.Duration
	userAgent     string
	maxBytes      int64
	noCache       bool
	httpProxy     string
	httpsProxy    string
	annotator     string
	annotatorURL  string
	annotatorKey  string
	openaiModel   string
	lexiconPath   string
	gazetteerPath string
	minConfidence float64
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <corpus.md|articles.json|url>",
	Short: "Extract violent events from articles",
	Long: `Extract runs the full event pipeline over a markdown corpus file,
a JSON article file, or a single article URL:
- Annotate each article (tokens, lemmas, NER, dependencies, coreference)
- Detect violence triggers and fill the six event roles
- Split reciprocal clashes, merge and cluster duplicate mentions
- Filter by salience and confidence, classify into the taxonomy
- Write events as JSON and flattened records as CSV

Example:
  vigil extract corpus.md
  vigil extract articles.json --json events.json --csv events.csv
  vigil extract https://example.com/news/attack --annotator corenlp
  vigil extract corpus.md --annotator openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output flags
	extractCmd.Flags().StringVar(&outJSON, "json", "events.json", "output JSON path")
	extractCmd.Flags().StringVar(&outCSV, "csv", "events.csv", "output CSV path")

	// HTTP flags
	extractCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall extraction timeout")
	extractCmd.Flags().StringVar(&userAgent, "ua", "Vigil/0.1 (+https://github.com/bkmekonnen/vigil)", "HTTP User-Agent")
	extractCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable annotation cache (force fresh annotation)")
	extractCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	extractCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Annotator flags
	extractCmd.Flags().StringVar(&annotator, "annotator", "corenlp", "annotation provider (corenlp, openai)")
	extractCmd.Flags().StringVar(&annotatorURL, "annotator-url", "http://localhost:9000", "annotation server base URL")
	extractCmd.Flags().StringVar(&openaiModel, "model", "gpt-4o-mini", "model name for the openai annotator")

	// Lexicon flags
	extractCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "violence lexicon YAML override")
	extractCmd.Flags().StringVar(&gazetteerPath, "gazetteer", "", "gazetteer YAML override")

	// Threshold flags
	extractCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.30, "minimum event confidence to keep")
}

// buildConfig assembles the pipeline configuration from flags and env vars.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Annotator.Provider = annotator
	cfg.Annotator.BaseURL = annotatorURL
	cfg.Annotator.Model = openaiModel
	cfg.Lexicon.ViolenceLexiconPath = lexiconPath
	cfg.Lexicon.GazetteerPath = gazetteerPath
	cfg.Thresholds.ConfidenceMin = minConfidence
	cfg.Output.Verbose = verbose

	if annotator == "openai" {
		cfg.Annotator.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Annotator.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

// loadArticles reads articles from a markdown corpus, a JSON file, or a
// single URL.
func loadArticles(ctx context.Context, cfg *model.Config, input string) ([]model.Article, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		fetcher := pipeline.NewFetcher(cfg.HTTP, cfg.RateLimit)
		article, err := fetcher.Fetch(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("fetch article: %w", err)
		}
		return []model.Article{*article}, nil
	}

	if strings.EqualFold(filepath.Ext(input), ".json") {
		return pipeline.LoadJSONArticles(input)
	}
	return pipeline.LoadMarkdownCorpus(input)
}

func runExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Input: %s\n", input)
		fmt.Fprintf(os.Stderr, "Annotator: %s (%s)\n", cfg.Annotator.Provider, cfg.Annotator.BaseURL)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	articles, err := loadArticles(ctx, cfg, input)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d article(s)\n", len(articles))
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	var results []*pipeline.ArticleResult
	for _, article := range articles {
		result, err := p.ProcessArticle(ctx, article)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", article.ID, err)
			continue
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return fmt.Errorf("no articles could be processed")
	}

	renderer := pipeline.NewRenderer(verbose)
	if outJSON != "" {
		if err := renderer.RenderJSON(results, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outCSV != "" {
		if err := renderer.RenderCSV(results, outCSV); err != nil {
			return fmt.Errorf("render CSV: %w", err)
		}
	}
	renderer.RenderSummary(results)

	return nil
}
