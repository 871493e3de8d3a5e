package extract

import (
	"testing"

	"github.com/bkmekonnen/vigil/internal/dates"
	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

func newTestFiller() *SlotFiller {
	return NewSlotFiller(
		lexicon.Default(),
		lexicon.DefaultGazetteer(),
		dates.New(),
		NewCasualtyParser(1, 10000),
		5,
	)
}

// militantsSentence: "Militants killed 15 civilians in Maiduguri on Friday"
func militantsSentence() model.AnnotatedSentence {
	sent := sentence(0,
		[3]string{"Militants", "militant", "NNS"},
		[3]string{"killed", "kill", "VBD"},
		[3]string{"15", "15", "CD"},
		[3]string{"civilians", "civilian", "NNS"},
		[3]string{"in", "in", "IN"},
		[3]string{"Maiduguri", "maiduguri", "NNP"},
		[3]string{"on", "on", "IN"},
		[3]string{"Friday", "friday", "NNP"},
	)
	sent.Dependencies = []model.Dependency{
		{Relation: "ROOT", Governor: -1, Dependent: 1},
		{Relation: "nsubj", Governor: 1, Dependent: 0},
		{Relation: "dobj", Governor: 1, Dependent: 3},
		{Relation: "nummod", Governor: 3, Dependent: 2},
	}
	sent.Entities = []model.Entity{
		{Text: "Maiduguri", Type: "LOCATION", Start: 5, End: 5},
		{Text: "Friday", Type: "DATE", Start: 7, End: 7},
	}
	return sent
}

func TestFillRolesFromDependencyParse(t *testing.T) {
	f := newTestFiller()
	ctx := &model.ArticleContext{
		ArticleID:    "a1",
		DeclaredDate: "2023-06-19", // a Monday
		Sentences:    []model.AnnotatedSentence{militantsSentence()},
	}
	trigger := model.Trigger{Word: "killed", Lemma: "kill", POS: "VBD", Kind: model.TriggerVerb, SentenceIndex: 0, TokenIndex: 1}

	event := f.Fill(trigger, ctx)

	if event.What != "killing" {
		t.Errorf("what = %q, want killing", event.What)
	}
	if event.Who == nil || event.Who.Text != "Militants" {
		t.Fatalf("who = %+v", event.Who)
	}
	if event.Who.Type != model.ActorPolitical {
		t.Errorf("who type = %q, want political", event.Who.Type)
	}
	if event.Whom == nil || event.Whom.Text != "15 civilians" {
		t.Fatalf("whom = %+v", event.Whom)
	}
	if event.Whom.Casualties.Deaths == nil || *event.Whom.Casualties.Deaths != 15 {
		t.Errorf("deaths = %v, want 15", event.Whom.Casualties.Deaths)
	}
	if event.Where == nil || event.Where.Text != "Maiduguri" {
		t.Fatalf("where = %+v", event.Where)
	}
	if event.Where.Country != "Nigeria" {
		t.Errorf("gazetteer country = %q, want Nigeria", event.Where.Country)
	}
	if event.When == nil || event.When.Text != "Friday" {
		t.Fatalf("when = %+v", event.When)
	}
	// Friday before Monday 2023-06-19 is 2023-06-16
	if event.When.Normalized != "2023-06-16" {
		t.Errorf("when normalized = %q, want 2023-06-16", event.When.Normalized)
	}
	// No weapon mention and no method inference for "kill"
	if event.How != nil {
		t.Errorf("how = %+v, want nil", event.How)
	}
	if event.Completeness != 5.0/6.0 {
		t.Errorf("completeness = %f, want %f", event.Completeness, 5.0/6.0)
	}
	if event.Confidence < 0.9 {
		t.Errorf("confidence = %f, want >= 0.9", event.Confidence)
	}
}

func TestWhoFallsBackToResponsibilityClaim(t *testing.T) {
	f := newTestFiller()

	// Trigger sentence has no subject; a later sentence carries the claim
	attack := sentence(0,
		[3]string{"An", "a", "DT"},
		[3]string{"explosion", "explosion", "NN"},
		[3]string{"ripped", "rip", "VBD"},
		[3]string{"through", "through", "IN"},
		[3]string{"the", "the", "DT"},
		[3]string{"market", "market", "NN"},
	)
	claim := sentence(1,
		[3]string{"Al-Shabaab", "al-shabaab", "NNP"},
		[3]string{"claimed", "claim", "VBD"},
		[3]string{"responsibility", "responsibility", "NN"},
	)

	ctx := &model.ArticleContext{ArticleID: "a2", Sentences: []model.AnnotatedSentence{attack, claim}}
	trigger := model.Trigger{Word: "explosion", Lemma: "explosion", POS: "NN", Kind: model.TriggerNoun, SentenceIndex: 0, TokenIndex: 1}

	event := f.Fill(trigger, ctx)
	if event.Who == nil || event.Who.Text != "Al-Shabaab" {
		t.Fatalf("who = %+v, want Al-Shabaab", event.Who)
	}
	if event.Who.Provenance != model.FromClaim {
		t.Errorf("provenance = %q, want %q", event.Who.Provenance, model.FromClaim)
	}
	if !event.Who.KnownGroup {
		t.Error("Al-Shabaab should be flagged as a known group")
	}
}

func TestWhoResolvesPronounThroughCoreference(t *testing.T) {
	f := newTestFiller()

	intro := sentence(0,
		[3]string{"Boko", "boko", "NNP"},
		[3]string{"Haram", "haram", "NNP"},
		[3]string{"entered", "enter", "VBD"},
		[3]string{"the", "the", "DT"},
		[3]string{"town", "town", "NN"},
	)
	action := sentence(1,
		[3]string{"They", "they", "PRP"},
		[3]string{"killed", "kill", "VBD"},
		[3]string{"residents", "resident", "NNS"},
	)
	action.Dependencies = []model.Dependency{
		{Relation: "nsubj", Governor: 1, Dependent: 0},
		{Relation: "dobj", Governor: 1, Dependent: 2},
	}

	ctx := &model.ArticleContext{
		ArticleID: "a3",
		Sentences: []model.AnnotatedSentence{intro, action},
		CorefChains: []model.CorefChain{
			{ID: 0, Mentions: []model.CorefMention{
				{Text: "Boko Haram", SentenceIndex: 0, StartToken: 0, EndToken: 1, Representative: true},
				{Text: "They", SentenceIndex: 1, StartToken: 0, EndToken: 0},
			}},
		},
	}
	trigger := model.Trigger{Word: "killed", Lemma: "kill", POS: "VBD", Kind: model.TriggerVerb, SentenceIndex: 1, TokenIndex: 1}

	event := f.Fill(trigger, ctx)
	if event.Who == nil || event.Who.Text != "Boko Haram" {
		t.Fatalf("who = %+v, want Boko Haram via coreference", event.Who)
	}
	if event.Who.Provenance != model.FromCoreference {
		t.Errorf("provenance = %q", event.Who.Provenance)
	}
}

func TestWhoNeverStoplisted(t *testing.T) {
	f := newTestFiller()

	// Subject resolves to a stoplisted token; the event must not keep it
	sent := sentence(0,
		[3]string{"Bakara", "bakara", "NNP"},
		[3]string{"attacked", "attack", "VBD"},
	)
	sent.Dependencies = []model.Dependency{
		{Relation: "nsubj", Governor: 1, Dependent: 0},
	}

	ctx := &model.ArticleContext{ArticleID: "a4", Sentences: []model.AnnotatedSentence{sent}}
	trigger := model.Trigger{Word: "attacked", Lemma: "attack", POS: "VBD", Kind: model.TriggerVerb, SentenceIndex: 0, TokenIndex: 1}

	event := f.Fill(trigger, ctx)
	for _, banned := range []string{"bakara", "the", "violent", "during"} {
		if event.Who != nil && equalsFold(event.Who.Text, banned) {
			t.Errorf("who = %q is stoplisted", event.Who.Text)
		}
		if event.Whom != nil && equalsFold(event.Whom.Text, banned) {
			t.Errorf("whom = %q is stoplisted", event.Whom.Text)
		}
	}
}

func equalsFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func TestWhomRejectsWeaponPhrase(t *testing.T) {
	f := newTestFiller()

	// "detonated an explosive device, killing 15 civilians"
	sent := sentence(0,
		[3]string{"A", "a", "DT"},
		[3]string{"bomber", "bomber", "NN"},
		[3]string{"detonated", "detonate", "VBD"},
		[3]string{"an", "a", "DT"},
		[3]string{"explosive", "explosive", "JJ"},
		[3]string{"device", "device", "NN"},
		[3]string{",", ",", ","},
		[3]string{"killing", "kill", "VBG"},
		[3]string{"15", "15", "CD"},
		[3]string{"civilians", "civilian", "NNS"},
	)
	sent.Dependencies = []model.Dependency{
		{Relation: "nsubj", Governor: 2, Dependent: 1},
		{Relation: "dobj", Governor: 2, Dependent: 5},
		{Relation: "det", Governor: 5, Dependent: 3},
		{Relation: "amod", Governor: 5, Dependent: 4},
	}

	ctx := &model.ArticleContext{ArticleID: "a5", Sentences: []model.AnnotatedSentence{sent}}
	trigger := model.Trigger{Word: "detonated", Lemma: "detonate", POS: "VBD", Kind: model.TriggerVerb, SentenceIndex: 0, TokenIndex: 2}

	event := f.Fill(trigger, ctx)
	if event.Whom == nil {
		t.Fatal("whom should be synthesized from the casualty phrase")
	}
	if event.Whom.Text == "an explosive device" {
		t.Errorf("weapon phrase accepted as victim: %+v", event.Whom)
	}
	if event.Whom.Casualties.Deaths == nil || *event.Whom.Casualties.Deaths != 15 {
		t.Errorf("deaths = %v, want 15", event.Whom.Casualties.Deaths)
	}
}

func TestWhereFallsBackToPrepositionPattern(t *testing.T) {
	f := newTestFiller()

	sent := sentence(0,
		[3]string{"Fighting", "fighting", "NN"},
		[3]string{"erupted", "erupt", "VBD"},
		[3]string{"near", "near", "IN"},
		[3]string{"Lower", "lower", "NNP"},
		[3]string{"Shabelle", "shabelle", "NNP"},
	)
	ctx := &model.ArticleContext{ArticleID: "a6", Sentences: []model.AnnotatedSentence{sent}}

	where := f.fillWhere(&ctx.Sentences[0], ctx)
	if where == nil || where.Text != "Lower Shabelle" {
		t.Fatalf("where = %+v", where)
	}
	if where.Country != "Somalia" {
		t.Errorf("country = %q, want Somalia", where.Country)
	}
}

func TestWhenKeepsRawTextOnNormalizationFailure(t *testing.T) {
	f := newTestFiller()

	sent := sentence(0,
		[3]string{"during", "during", "IN"},
		[3]string{"the", "the", "DT"},
		[3]string{"harvest", "harvest", "NN"},
		[3]string{"season", "season", "NN"},
	)
	sent.Entities = []model.Entity{{Text: "the harvest season", Type: "DATE", Start: 1, End: 3}}

	ctx := &model.ArticleContext{ArticleID: "a7", DeclaredDate: "2023-06-19", Sentences: []model.AnnotatedSentence{sent}}
	when := f.fillWhen(&ctx.Sentences[0], ctx)
	if when == nil || when.Text != "the harvest season" {
		t.Fatalf("when = %+v", when)
	}
	if when.Normalized != "" {
		t.Errorf("normalization should fail, got %q", when.Normalized)
	}
}

func TestHowPrefersMultiWordPhrases(t *testing.T) {
	f := newTestFiller()

	sent := sentence(0,
		[3]string{"A", "a", "DT"},
		[3]string{"suicide", "suicide", "NN"},
		[3]string{"bombing", "bombing", "NN"},
		[3]string{"destroyed", "destroy", "VBD"},
		[3]string{"the", "the", "DT"},
		[3]string{"explosive", "explosive", "JJ"},
		[3]string{"device", "device", "NN"},
	)
	trigger := model.Trigger{Word: "bombing", Lemma: "bombing", POS: "NN", SentenceIndex: 0, TokenIndex: 2}

	how := f.fillHow(trigger, &sent)
	if how == nil {
		t.Fatal("how is nil")
	}
	if !contains(how.Weapons, "explosive device") {
		t.Errorf("weapons = %v, want explosive device phrase", how.Weapons)
	}
	if !contains(how.Tactics, "suicide bombing") {
		t.Errorf("tactics = %v, want suicide bombing phrase", how.Tactics)
	}
	// Component tokens of matched phrases must not duplicate
	if contains(how.Weapons, "explosive") || contains(how.Tactics, "suicide") {
		t.Errorf("phrase components duplicated: %v / %v", how.Weapons, how.Tactics)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
