package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/bkmekonnen/vigil/internal/model"
	"github.com/bkmekonnen/vigil/internal/util"
	"github.com/bkmekonnen/vigil/internal/worker"
)

// Fetcher downloads news articles from URLs and reduces them to plain text
// for annotation. Honors robots.txt and per-domain rate limits.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewFetcher creates a fetcher from configuration.
func NewFetcher(cfg model.HTTPConfig, rl model.RateLimitConfig) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, 10*time.Second),
		limiter:   worker.NewLimiter(rl.RequestsPerSecond, rl.BurstSize),
	}
}

// Fetch retrieves one article. The returned Article has its Title and Text
// populated from the page; Date and Location stay empty unless the page
// metadata carries them.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*model.Article, error) {
	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("robots.txt disallows %s", rawURL)
	}
	if crawlDelay > 0 {
		select {
		case <-time.After(crawlDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	title, date, text, err := parsePage(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return &model.Article{
		ID:    finalURL,
		URL:   finalURL,
		Title: title,
		Date:  date,
		Text:  text,
	}, nil
}

// parsePage extracts the title, a published date if declared, and the
// article body text from an HTML page.
func parsePage(htmlContent string) (title, date, text string, err error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", "", err
	}

	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer", "aside":
				return
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				if date == "" && metaAttr(n, "property") == "article:published_time" {
					date = metaAttr(n, "content")
				}
			case "p":
				if t := nodeText(n); t != "" {
					paragraphs = append(paragraphs, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, date, strings.Join(paragraphs, "\n\n"), nil
}

// nodeText flattens the text nodes under n.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(strings.Join(strings.Fields(buf.String()), " "))
}

func metaAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
