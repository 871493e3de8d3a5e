package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bkmekonnen/vigil/internal/model"
)

// Renderer serializes article results to JSON and CSV.
type Renderer struct {
	verbose bool
}

// NewRenderer creates a renderer.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes the full results, events included, as indented JSON.
func (r *Renderer) RenderJSON(results []*ArticleResult, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	if r.verbose {
		fmt.Printf("Wrote JSON: %s\n", path)
	}
	return nil
}

// RenderCSV writes the flattened event records with the fixed column set.
func (r *Renderer) RenderCSV(results []*ArticleResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(model.RecordColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, result := range results {
		for _, rec := range result.Records {
			row := []string{
				rec.EventID, rec.ArticleID, rec.TriggerWord, rec.TriggerLemma,
				strconv.Itoa(rec.SentenceIndex),
				rec.WhoText, rec.WhoType,
				rec.WhatType,
				rec.WhomText, rec.WhomType,
				intPtrField(rec.Deaths), intPtrField(rec.Injuries),
				rec.WhereText, rec.WhereType, rec.WhereCountry,
				rec.WhenText, rec.WhenNormalized,
				rec.HowWeapons, rec.HowTactics,
				rec.TaxonomyL1, rec.TaxonomyL2, rec.TaxonomyL3,
				strconv.FormatFloat(rec.Confidence, 'f', 2, 64),
				strconv.FormatFloat(rec.Completeness, 'f', 2, 64),
				strconv.FormatBool(rec.Reciprocal), rec.PairID,
				strconv.FormatBool(rec.FlaggedForReview), rec.Notes,
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	if r.verbose {
		fmt.Printf("Wrote CSV: %s\n", path)
	}
	return nil
}

// RenderSummary prints a per-article digest to stdout.
func (r *Renderer) RenderSummary(results []*ArticleResult) {
	total := 0
	for _, result := range results {
		total += len(result.Events)
		fmt.Printf("%s: %d event(s)\n", result.ArticleID, len(result.Events))
		for i, e := range result.Events {
			who := "Unknown"
			if e.Who != nil {
				who = e.Who.Text
			}
			tax := ""
			if e.Taxonomy != nil {
				tax = fmt.Sprintf(" [%s > %s > %s]", e.Taxonomy.L1, e.Taxonomy.L2, e.Taxonomy.L3)
			}
			fmt.Printf("  %d. %s: %s (confidence %.2f)%s\n", i+1, e.What, who, e.Confidence, tax)
		}
	}
	fmt.Printf("Total: %d event(s) across %d article(s)\n", total, len(results))
}

// intPtrField renders an optional count; absent stays empty, never zero.
func intPtrField(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
