package pipeline

import (
	"context"
	"fmt"

	"github.com/bkmekonnen/vigil/internal/annotate"
	"github.com/bkmekonnen/vigil/internal/cache"
	"github.com/bkmekonnen/vigil/internal/dates"
	"github.com/bkmekonnen/vigil/internal/extract"
	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
	"github.com/bkmekonnen/vigil/internal/refine"
	"github.com/bkmekonnen/vigil/internal/taxonomy"
)

// Pipeline orchestrates the complete extraction process for one article:
// annotation, trigger detection, slot filling, reciprocal splitting,
// merging, clustering, salience and confidence filtering, classification.
// The pass order is fixed; each pass depends on the previous one's output.
type Pipeline struct {
	annotator  annotate.Provider
	detector   *extract.TriggerDetector
	filler     *extract.SlotFiller
	splitter   *extract.ReciprocalSplitter
	merger     *refine.EventMerger
	clusterer  *refine.EventClusterer
	salience   *refine.SalienceFilter
	confidence *refine.ConfidenceFilter
	classifier *taxonomy.Classifier
	gaz        *lexicon.Gazetteer
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration. Lexicon and gazetteer
// are loaded once here and shared read-only across all articles.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	lex := lexicon.Default()
	if cfg.Lexicon.ViolenceLexiconPath != "" {
		loaded, err := lexicon.Load(cfg.Lexicon.ViolenceLexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}

	gaz := lexicon.DefaultGazetteer()
	if cfg.Lexicon.GazetteerPath != "" {
		loaded, err := lexicon.LoadGazetteer(cfg.Lexicon.GazetteerPath)
		if err != nil {
			return nil, fmt.Errorf("load gazetteer: %w", err)
		}
		gaz = loaded
	}

	provider, err := annotate.NewProvider(annotate.ConfigFromModel(cfg.Annotator, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create annotator: %w", err)
	}
	provider = annotate.WithRetry(provider, cfg.Annotator.MaxRetries)
	if cfg.Cache.Enabled {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		provider = annotate.WithCache(provider, store, cfg.Cache.DiskTTL)
	}

	t := cfg.Thresholds
	casualties := extract.NewCasualtyParser(t.CasualtyMin, t.CasualtyMax)

	return &Pipeline{
		annotator:  provider,
		detector:   extract.NewTriggerDetector(lex),
		filler:     extract.NewSlotFiller(lex, gaz, dates.New(), casualties, t.ActorWindowSize),
		splitter:   extract.NewReciprocalSplitter(lex, gaz),
		merger:     refine.NewEventMerger(lex),
		clusterer:  refine.NewEventClusterer(lex, t.ClusterMin),
		salience:   refine.NewSalienceFilter(lex, t.SalienceMin),
		confidence: refine.NewConfidenceFilter(t.ConfidenceMin),
		classifier: taxonomy.NewClassifier(),
		gaz:        gaz,
		config:     cfg,
	}, nil
}

// ArticleResult is the per-article output: the final classified events plus
// their flattened records.
type ArticleResult struct {
	ArticleID string              `json:"article_id"`
	Title     string              `json:"title,omitempty"`
	Events    []model.Event       `json:"events"`
	Records   []model.EventRecord `json:"records"`
}

// ProcessArticle runs the full pipeline on one raw article. Annotation
// failure is all-or-nothing: the article yields an error and zero events,
// never partial output.
func (p *Pipeline) ProcessArticle(ctx context.Context, article model.Article) (*ArticleResult, error) {
	annotated, err := p.annotator.Annotate(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("annotate article %s: %w", article.ID, err)
	}

	p.enrich(annotated)
	return p.ProcessAnnotated(annotated)
}

// ProcessAnnotated runs the extraction passes over an already annotated
// article. Useful for tests and for pre-annotated corpora.
func (p *Pipeline) ProcessAnnotated(annotated *model.ArticleContext) (*ArticleResult, error) {
	events := p.detectAndFill(annotated)
	events = p.splitter.Split(events, annotated)
	events = p.merger.Merge(events)
	events = p.clusterer.Cluster(events)
	events = p.salience.Filter(events, annotated)
	events = p.confidence.Filter(events)
	p.classify(events, annotated)

	result := &ArticleResult{
		ArticleID: annotated.ArticleID,
		Title:     annotated.Title,
		Events:    events,
	}
	for i := range events {
		eventID := fmt.Sprintf("%s-e%d", annotated.ArticleID, i+1)
		result.Records = append(result.Records, model.FlattenEvent(annotated.ArticleID, eventID, events[i]))
	}
	return result, nil
}

// detectAndFill runs trigger detection and slot filling over every sentence.
func (p *Pipeline) detectAndFill(ctx *model.ArticleContext) []model.Event {
	var events []model.Event
	for i := range ctx.Sentences {
		for _, trigger := range p.detector.Detect(&ctx.Sentences[i]) {
			events = append(events, p.filler.Fill(trigger, ctx))
		}
	}
	return events
}

// classify attaches the taxonomy triple to every surviving event.
func (p *Pipeline) classify(events []model.Event, ctx *model.ArticleContext) {
	for i := range events {
		sentenceText := ""
		if sent, ok := ctx.Sentence(events[i].SentenceIndex()); ok {
			sentenceText = sent.Text
		}
		tax := p.classifier.Classify(&events[i], sentenceText)
		events[i].Taxonomy = &tax
	}
}

// enrich sets the violence-sentence flags and refines entity spans with
// gazetteer metadata before extraction starts.
func (p *Pipeline) enrich(ctx *model.ArticleContext) {
	for i := range ctx.Sentences {
		sent := &ctx.Sentences[i]
		sent.IsViolence = p.detector.ScoreSentence(sent) >= 0.2

		for j := range sent.Entities {
			e := &sent.Entities[j]
			if grp, ok := p.gaz.LookupGroup(e.Text); ok {
				e.Type = "ORGANIZATION"
				e.Subtype = grp.Type
				e.Country = grp.Country
				e.Region = grp.Region
				continue
			}
			if place, ok := p.gaz.LookupPlace(e.Text); ok {
				if e.Type == "" || e.Type == "LOCATION" || e.Type == "MISC" {
					e.Type = "LOCATION"
				}
				e.Subtype = place.Type
				e.Country = place.Country
				e.Region = place.Region
			}
		}
	}
}

// Annotator exposes the configured provider for availability checks.
func (p *Pipeline) Annotator() annotate.Provider { return p.annotator }
