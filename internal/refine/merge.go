// Package refine holds the event consolidation and filtering passes that
// run between slot filling and classification. Every pass is a pure
// transformation: it takes an event list and returns a new one.
package refine

import (
	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// EventMerger collapses adjacent-sentence duplicates describing the same
// micro-incident ("a bomb exploded... the explosion killed...").
type EventMerger struct {
	lex *lexicon.Lexicon
}

// NewEventMerger creates a merger.
func NewEventMerger(lex *lexicon.Lexicon) *EventMerger {
	return &EventMerger{lex: lex}
}

// Merge repeatedly folds mergeable pairs until a fixed point. Two events
// merge when their sentences are at most one apart, their trigger lemmas
// are related, and neither is reciprocal.
func (m *EventMerger) Merge(events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	merged := make([]bool, len(events))

	for i := range events {
		if merged[i] {
			continue
		}
		current := events[i].Clone()

		for j := i + 1; j < len(events); j++ {
			if merged[j] {
				continue
			}
			if !m.mergeable(&current, &events[j]) {
				continue
			}
			current = unionRoles(current, events[j])
			merged[j] = true
		}

		out = append(out, current)
	}

	return out
}

func (m *EventMerger) mergeable(a, b *model.Event) bool {
	if a.Reciprocal || b.Reciprocal {
		return false
	}
	dist := a.SentenceIndex() - b.SentenceIndex()
	if dist < -1 || dist > 1 {
		return false
	}
	return m.lex.Related(a.Trigger.Lemma, b.Trigger.Lemma)
}

// unionRoles builds a new event from the union of populated roles. The
// earlier-sentence event keeps its trigger and its who, except that a
// named armed group beats a generic actor description; for whom the
// event carrying casualty counts wins; remaining roles take the first
// non-null value in sentence order. Confidence and completeness are
// recomputed.
func unionRoles(a, b model.Event) model.Event {
	first, second := a, b
	if second.SentenceIndex() < first.SentenceIndex() {
		first, second = second, first
	}

	out := first.Clone()
	sec := second.Clone()

	if out.Who == nil {
		out.Who = sec.Who
	} else if sec.Who != nil && sec.Who.KnownGroup && !out.Who.KnownGroup {
		out.Who = sec.Who
	}
	if out.Whom == nil {
		out.Whom = sec.Whom
	} else if sec.Whom != nil && !out.Whom.Casualties.Present() && sec.Whom.Casualties.Present() {
		out.Whom = sec.Whom
	}
	if out.Where == nil {
		out.Where = sec.Where
	}
	if out.When == nil {
		out.When = sec.When
	}
	if out.How == nil {
		out.How = sec.How
	}
	// A specific event type beats the generic label
	if (out.What == "" || out.What == "violence") && sec.What != "" && sec.What != "violence" {
		out.What = sec.What
	}

	out.Rescore()
	return out
}
