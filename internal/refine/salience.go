package refine

import (
	"strings"

	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// SalienceFilter separates headline events from background mentions.
// Reciprocal events bypass the threshold and always survive as a pair, and
// an article with any detected trigger never yields zero events: when
// nothing clears the bar, the single top-scoring event is kept.
type SalienceFilter struct {
	lex       *lexicon.Lexicon
	threshold int
}

// NewSalienceFilter creates a salience filter.
func NewSalienceFilter(lex *lexicon.Lexicon, threshold int) *SalienceFilter {
	return &SalienceFilter{lex: lex, threshold: threshold}
}

var modalWords = map[string]bool{
	"could": true, "would": true, "may": true, "might": true,
	"threaten": true, "threatened": true, "warn": true, "warned": true,
	"plan": true, "planned": true, "plot": true,
}

// Filter keeps events scoring at or above the threshold.
func (s *SalienceFilter) Filter(events []model.Event, ctx *model.ArticleContext) []model.Event {
	if len(events) == 0 {
		return events
	}

	var kept []model.Event
	bestIdx, bestScore := -1, -1<<31

	for i := range events {
		if events[i].Reciprocal {
			kept = append(kept, events[i])
			continue
		}
		score := s.Score(&events[i], ctx)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
		if score >= s.threshold {
			kept = append(kept, events[i])
		}
	}

	// Fallback: a detected trigger must never vanish entirely
	if len(kept) == 0 && bestIdx >= 0 {
		kept = append(kept, events[bestIdx])
	}

	return kept
}

// Score computes the per-event salience score.
func (s *SalienceFilter) Score(event *model.Event, ctx *model.ArticleContext) int {
	score := 0
	sentIdx := event.SentenceIndex()

	// Lead position
	if sentIdx < 2 {
		score += 3
	}

	if event.Whom != nil && event.Whom.Casualties.Present() {
		score += 4
	}

	// Specific victim, not a pronoun or placeholder
	if event.Whom != nil && !s.lex.IsGenericPhrase(event.Whom.Text) {
		score += 2
	}

	if event.Completeness >= 0.8 {
		score += 2
	}
	if event.Confidence >= 0.8 {
		score += 2
	}

	if event.Where != nil && ctx.DeclaredLocation != "" {
		declared := strings.ToLower(ctx.DeclaredLocation)
		loc := strings.ToLower(event.Where.Text)
		if strings.Contains(declared, loc) || strings.Contains(loc, declared) {
			score += 2
		}
	}

	sent, ok := ctx.Sentence(sentIdx)
	if ok {
		if s.isHypothetical(sent) {
			score -= 3
		} else if s.isBackground(sent, sentIdx) {
			score--
		}
	}

	return score
}

// isHypothetical detects modal or threatened-but-not-happened phrasing.
func (s *SalienceFilter) isHypothetical(sent *model.AnnotatedSentence) bool {
	for _, tok := range sent.Tokens {
		if tok.POS == "MD" && modalWords[strings.ToLower(tok.Word)] {
			return true
		}
		if modalWords[strings.ToLower(tok.Lemma)] {
			return true
		}
	}
	return false
}

// isBackground flags past-context recaps far from the lead ("had killed",
// "in recent years").
func (s *SalienceFilter) isBackground(sent *model.AnnotatedSentence, sentIdx int) bool {
	if sentIdx < 3 {
		return false
	}
	lower := strings.ToLower(sent.Text)
	for _, marker := range []string{"had killed", "had attacked", "in recent years", "in recent months", "previously", "in the past", "last year"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
