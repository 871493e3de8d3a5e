package taxonomy

import (
	"testing"

	"github.com/bkmekonnen/vigil/internal/model"
)

func TestClassifySuicideBombing(t *testing.T) {
	c := NewClassifier()

	event := &model.Event{
		Trigger: model.Trigger{Lemma: "detonate"},
		Who:     &model.ActorMention{Text: "Al-Shabaab", Type: model.ActorPolitical, KnownGroup: true},
		Whom:    &model.VictimMention{Text: "15 civilians"},
		How:     &model.MethodMention{Weapons: []string{"explosive device"}, Tactics: []string{"suicide"}},
	}

	got := c.Classify(event, "A suicide bomber detonated an explosive device at the market")
	want := model.Taxonomy{L1: "Political Violence", L2: "Terrorism", L3: "Suicide Bombing"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClassifyPoliceShooting(t *testing.T) {
	c := NewClassifier()

	event := &model.Event{
		Trigger: model.Trigger{Lemma: "shoot"},
		Who:     &model.ActorMention{Text: "police officers", Type: model.ActorState},
		Whom:    &model.VictimMention{Text: "protesters"},
	}

	got := c.Classify(event, "Police officers shot protesters during a rally")
	if got.L1 != "State Violence Against Civilians" {
		t.Errorf("L1 = %q", got.L1)
	}
	if got.L2 != "State Repression of Protests" {
		t.Errorf("L2 = %q", got.L2)
	}
}

func TestClassifyEthnicClash(t *testing.T) {
	c := NewClassifier()

	event := &model.Event{
		Trigger: model.Trigger{Lemma: "clash"},
		Who:     &model.ActorMention{Text: "Hema community", Type: model.ActorCommunal},
		Whom:    &model.VictimMention{Text: "Lendu community", Type: model.ActorCommunal},
	}

	got := c.Classify(event, "Clashes between Hema and Lendu communities left 12 dead")
	want := model.Taxonomy{L1: "Communal Violence", L2: "Ethnic/Tribal Conflict", L3: "Armed Clash"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClassifyKidnappingForRansom(t *testing.T) {
	c := NewClassifier()

	event := &model.Event{
		Trigger: model.Trigger{Lemma: "kidnap"},
		Who:     &model.ActorMention{Text: "armed bandits", Type: model.ActorCriminal},
		Whom:    &model.VictimMention{Text: "schoolgirls"},
	}

	got := c.Classify(event, "Armed bandits kidnapped dozens of schoolgirls")
	if got.L1 != "Criminal Violence" || got.L2 != "Kidnapping for Ransom" || got.L3 != "Abduction" {
		t.Errorf("got %+v", got)
	}
}

func TestClassifyAlwaysCompleteTriple(t *testing.T) {
	c := NewClassifier()

	// Degenerate inputs still classify: nil roles, unknown types, empty text
	events := []*model.Event{
		{Trigger: model.Trigger{Lemma: "attack"}},
		{Trigger: model.Trigger{}},
		{
			Trigger: model.Trigger{Lemma: "burn"},
			Who:     &model.ActorMention{Text: "", Type: model.ActorUnknown},
		},
		{
			Trigger: model.Trigger{Lemma: "fight"},
			Who:     &model.ActorMention{Text: "soldiers", Type: model.ActorState},
			Whom:    &model.VictimMention{Text: "rebels"}, // not civilian: no state-violence L1
		},
	}

	for i, e := range events {
		got := c.Classify(e, "")
		if got.L1 == "" || got.L2 == "" || got.L3 == "" {
			t.Errorf("event %d: incomplete triple %+v", i, got)
		}
	}
}

func TestClassifyStateActorNonCivilianVictim(t *testing.T) {
	c := NewClassifier()

	// State vs combatants is insurgency fighting, not state violence
	event := &model.Event{
		Trigger: model.Trigger{Lemma: "clash"},
		Who:     &model.ActorMention{Text: "government soldiers", Type: model.ActorState},
		Whom:    &model.VictimMention{Text: "insurgent fighters"},
	}
	got := c.Classify(event, "Government soldiers clashed with insurgent fighters")
	if got.L1 == "State Violence Against Civilians" {
		t.Errorf("combatant victims must not classify as state violence against civilians: %+v", got)
	}
}
