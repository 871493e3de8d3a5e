package refine

import (
	"strings"

	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// EventClusterer is the article-wide consolidation pass. Where the merger
// only looks at adjacent sentences, the clusterer scores every unordered
// event pair on weighted similarity and merges pairs above threshold.
// Reciprocal events are exempt.
type EventClusterer struct {
	lex       *lexicon.Lexicon
	threshold int
}

// NewEventClusterer creates a clusterer with the given similarity threshold.
func NewEventClusterer(lex *lexicon.Lexicon, threshold int) *EventClusterer {
	return &EventClusterer{lex: lex, threshold: threshold}
}

// Cluster merges similar event pairs until no pair clears the threshold.
func (c *EventClusterer) Cluster(events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	absorbed := make([]bool, len(events))

	for i := range events {
		if absorbed[i] {
			continue
		}
		current := events[i].Clone()
		if current.Reciprocal {
			out = append(out, current)
			continue
		}

		for j := i + 1; j < len(events); j++ {
			if absorbed[j] || events[j].Reciprocal {
				continue
			}
			if c.similarity(&current, &events[j]) >= c.threshold {
				current = unionRoles(current, events[j])
				absorbed[j] = true
			}
		}

		out = append(out, current)
	}

	return out
}

// similarity scores one unordered pair: +3 same actor, +3 same location,
// +5 same casualty numbers, +1 sentence proximity, +2 related triggers.
func (c *EventClusterer) similarity(a, b *model.Event) int {
	score := 0

	if a.Who != nil && b.Who != nil && strings.EqualFold(a.Who.Text, b.Who.Text) {
		score += 3
	}
	if a.Where != nil && b.Where != nil && strings.EqualFold(a.Where.Text, b.Where.Text) {
		score += 3
	}
	if sameCasualties(a.Whom, b.Whom) {
		score += 5
	}

	dist := a.SentenceIndex() - b.SentenceIndex()
	if dist < 0 {
		dist = -dist
	}
	if dist <= 2 {
		score++
	}

	if c.lex.Related(a.Trigger.Lemma, b.Trigger.Lemma) {
		score += 2
	}

	return score
}

// sameCasualties requires both events to carry counts and agree on them.
func sameCasualties(a, b *model.VictimMention) bool {
	if a == nil || b == nil {
		return false
	}
	if !a.Casualties.Present() || !b.Casualties.Present() {
		return false
	}
	return eqIntPtr(a.Casualties.Deaths, b.Casualties.Deaths) &&
		eqIntPtr(a.Casualties.Injuries, b.Casualties.Injuries)
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
