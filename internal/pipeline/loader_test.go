package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCorpus = `# Test Corpus

## Article 1: reuters-somalia
### Al-Shabaab attacks military base
**Source:** Reuters
**Date:** June 15, 2023
**Location:** Mogadishu, Somalia

Al-Shabaab militants attacked a military base on Thursday.

At least 15 soldiers were killed in the assault.

## Article 2: afp-drc
### Ethnic clashes in Ituri
**Source:** AFP
**Date:** June 16, 2023
**Location:** Ituri, DRC

Clashes between Hema and Lendu communities left 12 people dead.

## Article 3: stub-only
**Source:** Unknown
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMarkdownCorpus(t *testing.T) {
	path := writeTemp(t, "corpus.md", sampleCorpus)

	articles, err := LoadMarkdownCorpus(path)
	if err != nil {
		t.Fatalf("LoadMarkdownCorpus: %v", err)
	}
	// Article 3 has no title or body and is skipped
	if len(articles) != 2 {
		t.Fatalf("articles = %d, want 2", len(articles))
	}

	a := articles[0]
	if a.ID != "article-1" {
		t.Errorf("ID = %q", a.ID)
	}
	if a.Title != "Al-Shabaab attacks military base" {
		t.Errorf("title = %q", a.Title)
	}
	if a.Source != "Reuters" {
		t.Errorf("source = %q", a.Source)
	}
	if a.Date != "June 15, 2023" {
		t.Errorf("date = %q", a.Date)
	}
	if a.Location != "Mogadishu, Somalia" {
		t.Errorf("location = %q", a.Location)
	}
	want := "Al-Shabaab militants attacked a military base on Thursday.\n\nAt least 15 soldiers were killed in the assault."
	if a.Text != want {
		t.Errorf("text = %q", a.Text)
	}

	if articles[1].ID != "article-2" || articles[1].Location != "Ituri, DRC" {
		t.Errorf("second article = %+v", articles[1])
	}
}

func TestLoadMarkdownCorpusRejectsEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.md", "no article sections here\n")
	if _, err := LoadMarkdownCorpus(path); err == nil {
		t.Error("expected error for corpus without article sections")
	}
}

func TestLoadJSONArticlesArray(t *testing.T) {
	path := writeTemp(t, "articles.json", `[
  {"id": "x1", "title": "T1", "text": "Body one."},
  {"title": "T2", "text": "Body two."}
]`)

	articles, err := LoadJSONArticles(path)
	if err != nil {
		t.Fatalf("LoadJSONArticles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("articles = %d", len(articles))
	}
	if articles[0].ID != "x1" {
		t.Errorf("explicit ID overwritten: %q", articles[0].ID)
	}
	if articles[1].ID != "article-2" {
		t.Errorf("missing ID not assigned: %q", articles[1].ID)
	}
}

func TestLoadJSONArticlesWrappedObject(t *testing.T) {
	path := writeTemp(t, "wrapped.json", `{"articles": [{"title": "T", "text": "Body."}]}`)

	articles, err := LoadJSONArticles(path)
	if err != nil {
		t.Fatalf("LoadJSONArticles: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "article-1" {
		t.Errorf("articles = %+v", articles)
	}
}
