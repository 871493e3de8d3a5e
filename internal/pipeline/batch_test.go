package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bkmekonnen/vigil/internal/model"
)

// mockProcessor implements Processor
type mockProcessor struct {
	failID string
}

func (m *mockProcessor) ProcessArticle(ctx context.Context, article model.Article) (*ArticleResult, error) {
	time.Sleep(5 * time.Millisecond) // Simulate work
	if article.ID == m.failID {
		return nil, errors.New("annotation failed")
	}
	return &ArticleResult{ArticleID: article.ID}, nil
}

func TestBatchProcessorRunsAllArticles(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{}, 2)

	articles := []model.Article{
		{ID: "a1", Text: "one"},
		{ID: "a2", Text: "two"},
		{ID: "a3", Text: "three"},
	}

	results := b.ProcessArticles(context.Background(), articles)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for i, r := range results {
		if r.Error != nil {
			t.Errorf("result %d: %v", i, r.Error)
		}
	}
	// Results keep article order regardless of completion order
	for i, want := range []string{"a1", "a2", "a3"} {
		if results[i].ArticleID != want {
			t.Errorf("result %d = %s, want %s", i, results[i].ArticleID, want)
		}
	}
}

func TestBatchProcessorIsolatesFailures(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{failID: "a2"}, 2)

	articles := []model.Article{
		{ID: "a1", Text: "one"},
		{ID: "a2", Text: "two"},
		{ID: "a3", Text: "three"},
	}

	results := b.ProcessArticles(context.Background(), articles)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	var failed, ok int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			if r.ArticleID != "a2" {
				t.Errorf("wrong article failed: %s", r.ArticleID)
			}
			if r.Result != nil {
				t.Error("failed article must carry no partial result")
			}
		} else {
			ok++
		}
	}
	if failed != 1 || ok != 2 {
		t.Errorf("failed = %d, ok = %d", failed, ok)
	}
}

func TestBatchProcessorEmptyInput(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{}, 2)
	results := b.ProcessArticles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestBatchProcessorManyArticlesSmallPool(t *testing.T) {
	b := NewBatchProcessor(&mockProcessor{}, 2)

	var articles []model.Article
	for i := 0; i < 50; i++ {
		articles = append(articles, model.Article{ID: string(rune('a'+i%26)) + "-article", Text: "x"})
	}
	// IDs repeat; ordering by ID is not asserted here, only completion
	results := b.ProcessArticles(context.Background(), articles)
	if len(results) != 50 {
		t.Fatalf("results = %d, want 50", len(results))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# comment
http://example.com/a

http://example.com/b
http://example.com/a
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("urls = %v, want deduplicated pair", urls)
	}
	if urls[0] != "http://example.com/a" || urls[1] != "http://example.com/b" {
		t.Errorf("urls = %v", urls)
	}
}
