package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bkmekonnen/vigil/internal/model"
	"github.com/bkmekonnen/vigil/internal/pipeline"
)

var fetchTimeout time.Duration

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch one article and print its extracted text",
	Long: `Fetch downloads a single news article, honoring robots.txt and
per-domain rate limits, and prints the extracted title and body text.
Useful for checking what the extraction pipeline will see before
running a full batch.

Example:
  vigil fetch https://example.com/news/attack`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		cfg := model.DefaultConfig()
		cfg.HTTP.Timeout = fetchTimeout

		fetcher := pipeline.NewFetcher(cfg.HTTP, cfg.RateLimit)
		article, err := fetcher.Fetch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch: %w", err)
		}

		if article.Title != "" {
			fmt.Printf("# %s\n\n", article.Title)
		}
		if article.Date != "" {
			fmt.Printf("Date: %s\n\n", article.Date)
		}
		fmt.Println(article.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "fetch timeout")
}
