package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bkmekonnen/vigil/internal/model"
	"github.com/bkmekonnen/vigil/internal/worker"
)

// Processor runs the extraction pipeline on one article.
type Processor interface {
	ProcessArticle(ctx context.Context, article model.Article) (*ArticleResult, error)
}

// ExtractJob is one article queued for extraction.
type ExtractJob struct {
	Article   model.Article
	Processor Processor
}

// Execute runs the extraction job.
func (j *ExtractJob) Execute(ctx context.Context) worker.Result {
	result, err := j.Processor.ProcessArticle(ctx, j.Article)
	return &ExtractResult{
		ArticleID: j.Article.ID,
		Result:    result,
		Error:     err,
	}
}

// ExtractResult is the outcome of one extraction job. A failed article
// carries its error and nothing else; other articles are unaffected.
type ExtractResult struct {
	ArticleID string
	Result    *ArticleResult
	Error     error
}

// GetError returns the error from the extraction result.
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts events from multiple articles concurrently.
// Articles are independent; one annotation failure never aborts the batch.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessArticles extracts events from all articles concurrently. Results
// come back in article order regardless of completion order.
func (b *BatchProcessor) ProcessArticles(ctx context.Context, articles []model.Article) []*ExtractResult {
	if len(articles) == 0 {
		return []*ExtractResult{}
	}

	pool := worker.NewSizedPool(b.concurrency, len(articles))
	pool.Start()

	order := make(map[string]int, len(articles))
	for i, article := range articles {
		order[article.ID] = i
		pool.Submit(&ExtractJob{Article: article, Processor: b.processor})
	}

	results := pool.Wait()

	extractResults := make([]*ExtractResult, 0, len(results))
	for _, result := range results {
		extractResults = append(extractResults, result.(*ExtractResult))
	}
	sort.SliceStable(extractResults, func(i, j int) bool {
		return order[extractResults[i].ArticleID] < order[extractResults[j].ArticleID]
	})

	return extractResults
}

// ProcessURLFile fetches and extracts every URL listed in a file.
func (b *BatchProcessor) ProcessURLFile(ctx context.Context, fetcher *Fetcher, filePath string) ([]*ExtractResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	var articles []model.Article
	var failed []*ExtractResult
	for _, u := range urls {
		article, err := fetcher.Fetch(ctx, u)
		if err != nil {
			failed = append(failed, &ExtractResult{ArticleID: u, Error: err})
			continue
		}
		articles = append(articles, *article)
	}

	results := b.ProcessArticles(ctx, articles)
	return append(results, failed...), nil
}

// ReadURLsFromFile reads URLs from a file (one per line)
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate URLs
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
