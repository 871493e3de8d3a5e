package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bkmekonnen/vigil/internal/model"
	"github.com/bkmekonnen/vigil/internal/pipeline"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <corpus.md|articles.json|urls.txt>",
	Short: "Extract events from many articles in parallel",
	Long: `Batch processes a whole corpus concurrently:
- Read articles from a markdown corpus, a JSON file, or a URL list
- Annotate and extract with a configurable worker count
- One failed article never aborts the batch
- Write combined JSON and CSV output plus per-article results

Example:
  vigil batch corpus.md
  vigil batch urls.txt --concurrency 8 --output-dir ./events
  vigil batch articles.json --annotator openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./vigil-output", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Shared flags with extract
	batchCmd.Flags().StringVar(&userAgent, "ua", "Vigil/0.1 (+https://github.com/bkmekonnen/vigil)", "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable annotation cache")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().StringVar(&annotator, "annotator", "corenlp", "annotation provider (corenlp, openai)")
	batchCmd.Flags().StringVar(&annotatorURL, "annotator-url", "http://localhost:9000", "annotation server base URL")
	batchCmd.Flags().StringVar(&openaiModel, "model", "gpt-4o-mini", "model name for the openai annotator")
	batchCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "violence lexicon YAML override")
	batchCmd.Flags().StringVar(&gazetteerPath, "gazetteer", "", "gazetteer YAML override")
	batchCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.30, "minimum event confidence to keep")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	timeout = batchTimeout
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Directory = outputDir

	fmt.Fprintf(os.Stderr, "Vigil batch extraction\n")
	fmt.Fprintf(os.Stderr, "  Input:      %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Annotator:  %s\n", cfg.Annotator.Provider)
	fmt.Fprintf(os.Stderr, "  Output dir: %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	processor := pipeline.NewBatchProcessor(p, concurrency)

	var batchResults []*pipeline.ExtractResult
	if strings.EqualFold(filepath.Ext(input), ".txt") {
		fetcher := pipeline.NewFetcher(cfg.HTTP, cfg.RateLimit)
		batchResults, err = processor.ProcessURLFile(ctx, fetcher, input)
		if err != nil {
			return fmt.Errorf("process URL file: %w", err)
		}
	} else {
		var articles []model.Article
		if strings.EqualFold(filepath.Ext(input), ".json") {
			articles, err = pipeline.LoadJSONArticles(input)
		} else {
			articles, err = pipeline.LoadMarkdownCorpus(input)
		}
		if err != nil {
			return fmt.Errorf("load articles: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Loaded %d article(s)\n\n", len(articles))
		batchResults = processor.ProcessArticles(ctx, articles)
	}

	var results []*pipeline.ArticleResult
	successCount, failureCount := 0, 0
	for _, r := range batchResults {
		if r.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", r.ArticleID, r.Error)
			continue
		}
		successCount++
		results = append(results, r.Result)
		fmt.Fprintf(os.Stderr, "ok   %s: %d event(s)\n", r.ArticleID, len(r.Result.Events))
	}

	if len(results) > 0 {
		renderer := pipeline.NewRenderer(verbose)
		if err := renderer.RenderJSON(results, filepath.Join(outputDir, "events.json")); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if err := renderer.RenderCSV(results, filepath.Join(outputDir, "events.csv")); err != nil {
			return fmt.Errorf("render CSV: %w", err)
		}
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Batch complete: %d ok, %d failed, output in %s\n", successCount, failureCount, outputDir)

	return nil
}
