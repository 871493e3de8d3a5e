package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bkmekonnen/vigil/internal/model"
)

// Corpus loaders for the two batch input formats: a markdown corpus file
// ("## Article N: ..." sections) and a JSON array of articles.

var articleHeaderRe = regexp.MustCompile(`(?m)^## Article (\d+):([^\n]*)$`)

// LoadMarkdownCorpus parses a markdown corpus file into articles. Each
// article section looks like:
//
//	## Article 1: source-name
//	### Headline of the article
//	**Source:** Reuters
//	**Date:** June 15, 2023
//	**Location:** Mogadishu, Somalia
//
//	Body paragraphs...
func LoadMarkdownCorpus(path string) ([]model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	content := string(data)
	headers := articleHeaderRe.FindAllStringSubmatchIndex(content, -1)
	if len(headers) == 0 {
		return nil, fmt.Errorf("no article sections in %s", path)
	}

	var articles []model.Article
	for i, h := range headers {
		start := h[1]
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}

		num := content[h[2]:h[3]]
		source := strings.TrimSpace(content[h[4]:h[5]])

		article := parseArticleSection(content[start:end])
		article.ID = "article-" + num
		if article.Source == "" {
			article.Source = source
		}
		if article.Title == "" || article.Text == "" {
			continue // metadata-only stub, nothing to extract
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// parseArticleSection pulls title, metadata lines and body out of one
// markdown section.
func parseArticleSection(section string) model.Article {
	var article model.Article
	var body []string
	foundTitle := false

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "### "):
			article.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "### "))
			foundTitle = true

		case strings.HasPrefix(trimmed, "**Source:**"):
			article.Source = strings.TrimSpace(strings.TrimPrefix(trimmed, "**Source:**"))

		case strings.HasPrefix(trimmed, "**Date:**"):
			article.Date = strings.TrimSpace(strings.TrimPrefix(trimmed, "**Date:**"))

		case strings.HasPrefix(trimmed, "**Location:**"):
			article.Location = strings.TrimSpace(strings.TrimPrefix(trimmed, "**Location:**"))

		case foundTitle && trimmed != "" && !strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "**"):
			body = append(body, trimmed)
		}
	}

	article.Text = strings.Join(body, "\n\n")
	return article
}

// LoadJSONArticles parses a JSON file holding either an array of articles
// or an object with an "articles" field.
func LoadJSONArticles(path string) ([]model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}

	var articles []model.Article
	if err := json.Unmarshal(data, &articles); err == nil {
		return withIDs(articles), nil
	}

	var wrapped struct {
		Articles []model.Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse articles: %w", err)
	}
	return withIDs(wrapped.Articles), nil
}

func withIDs(articles []model.Article) []model.Article {
	for i := range articles {
		if articles[i].ID == "" {
			articles[i].ID = fmt.Sprintf("article-%d", i+1)
		}
	}
	return articles
}
