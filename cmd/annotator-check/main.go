// Diagnostic program for the annotation collaborator.
// Checks that the configured provider is reachable and round-trips a
// sample sentence, printing the tokens, entities, and dependencies it
// produced. Run this before a large batch to catch a dead CoreNLP
// server or a bad API key early.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bkmekonnen/vigil/internal/annotate"
	"github.com/bkmekonnen/vigil/internal/model"
)

const sampleText = "Al-Shabaab militants attacked a military base in Mogadishu on Friday, killing at least 15 soldiers."

func main() {
	provider := flag.String("annotator", "corenlp", "annotation provider (corenlp, openai)")
	baseURL := flag.String("url", "http://localhost:9000", "annotation server base URL")
	openaiModel := flag.String("model", "gpt-4o-mini", "model name for the openai provider")
	timeout := flag.Duration("timeout", 60*time.Second, "annotation timeout")
	flag.Parse()

	cfg := annotate.Config{
		Provider: *provider,
		BaseURL:  *baseURL,
		APIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:    *openaiModel,
		Timeout:  *timeout,
	}

	p, err := annotate.NewProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create provider: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Printf("Provider: %s\n", p.Name())
	if !p.IsAvailable(ctx) {
		fmt.Println("Availability: NOT REACHABLE")
		os.Exit(1)
	}
	fmt.Println("Availability: ok")

	article := model.Article{ID: "check", Text: sampleText}
	start := time.Now()
	annotated, err := p.Annotate(ctx, article)
	if err != nil {
		fmt.Fprintf(os.Stderr, "annotate: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Round trip: %v\n\n", time.Since(start).Round(time.Millisecond))

	for _, sent := range annotated.Sentences {
		fmt.Printf("Sentence %d: %s\n", sent.Index, sent.Text)
		fmt.Printf("  Tokens: %d, Dependencies: %d\n", len(sent.Tokens), len(sent.Dependencies))
		for _, e := range sent.Entities {
			fmt.Printf("  Entity: %q (%s) tokens %d-%d\n", e.Text, e.Type, e.Start, e.End)
		}
	}
	if len(annotated.CorefChains) > 0 {
		fmt.Printf("\nCoreference chains: %d\n", len(annotated.CorefChains))
	}
}
