package refine

import (
	"testing"

	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

func TestClusterMergesSameIncidentAcrossArticle(t *testing.T) {
	c := NewEventClusterer(lexicon.Default(), 4)

	// Lead paragraph and recap far below, same actor and location
	a := event("attack", 0)
	a.Who = &model.ActorMention{Text: "Al-Shabaab", Type: model.ActorPolitical}
	a.Where = &model.LocationMention{Text: "Mogadishu", Country: "Somalia"}

	b := event("raid", 6)
	b.Who = &model.ActorMention{Text: "Al-Shabaab", Type: model.ActorPolitical}
	b.Where = &model.LocationMention{Text: "Mogadishu", Country: "Somalia"}
	b.When = &model.TemporalMention{Text: "Friday", Normalized: "2023-06-16"}

	// same actor +3, same location +3, related attack~raid +2 = 8
	out := c.Cluster([]model.Event{a, b})
	if len(out) != 1 {
		t.Fatalf("expected 1 clustered event, got %d", len(out))
	}
	if out[0].When == nil || out[0].When.Normalized != "2023-06-16" {
		t.Errorf("cluster should union roles, when = %+v", out[0].When)
	}
}

func TestClusterScoresMatchWeights(t *testing.T) {
	c := NewEventClusterer(lexicon.Default(), 4)

	deaths := 15
	a := event("kill", 0)
	a.Who = &model.ActorMention{Text: "gunmen"}
	a.Whom = &model.VictimMention{Text: "civilians", Casualties: model.Casualties{Deaths: &deaths}}

	d2 := 15
	b := event("shoot", 1)
	b.Who = &model.ActorMention{Text: "gunmen"}
	b.Whom = &model.VictimMention{Text: "people", Casualties: model.Casualties{Deaths: &d2}}

	// +3 actor, +5 casualties, +1 proximity, +2 related kill~shoot = 11
	if got := c.similarity(&a, &b); got != 11 {
		t.Errorf("similarity = %d, want 11", got)
	}

	// Different counts kill the casualty bonus
	d3 := 7
	b.Whom.Casualties.Deaths = &d3
	if got := c.similarity(&a, &b); got != 6 {
		t.Errorf("similarity = %d, want 6", got)
	}
}

func TestClusterBelowThresholdStaysSeparate(t *testing.T) {
	c := NewEventClusterer(lexicon.Default(), 4)

	a := event("kidnap", 0)
	b := event("bomb", 8) // unrelated, distant, no shared roles

	out := c.Cluster([]model.Event{a, b})
	if len(out) != 2 {
		t.Errorf("dissimilar events clustered: %d", len(out))
	}
}

func TestClusterExemptsReciprocal(t *testing.T) {
	c := NewEventClusterer(lexicon.Default(), 4)

	a := event("clash", 0)
	a.Reciprocal = true
	a.Who = &model.ActorMention{Text: "Hema"}
	b := event("clash", 0)
	b.Reciprocal = true
	b.Who = &model.ActorMention{Text: "Lendu communities"}

	out := c.Cluster([]model.Event{a, b})
	if len(out) != 2 {
		t.Errorf("reciprocal events clustered: %d", len(out))
	}
}
