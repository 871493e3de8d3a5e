package extract

import (
	"strings"
	"unicode"

	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// ActorValidator is the validation predicate every who/whom candidate must
// pass before acceptance. Rejection is silent and causes the slot filler to
// fall through to the next strategy.
type ActorValidator struct {
	lex *lexicon.Lexicon
	gaz *lexicon.Gazetteer
}

// NewActorValidator creates an actor validator.
func NewActorValidator(lex *lexicon.Lexicon, gaz *lexicon.Gazetteer) *ActorValidator {
	return &ActorValidator{lex: lex, gaz: gaz}
}

// Valid reports whether text can name an actor or victim. Rejects
// determiners, prepositions, bare adjectives, temporal nouns, known
// locations and the non-actor stoplist.
func (v *ActorValidator) Valid(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	lower := strings.ToLower(text)
	if v.lex.IsNonActor(lower) || v.lex.IsTemporalWord(lower) {
		return false
	}

	// A bare place name is a location, not an actor
	if _, ok := v.gaz.LookupPlace(lower); ok {
		if _, alsoGroup := v.gaz.LookupGroup(lower); !alsoGroup {
			return false
		}
	}

	// Every content word stoplisted means nothing actor-like remains
	// ("the violent", "during Friday")
	words := strings.Fields(lower)
	content := 0
	for _, w := range words {
		w = strings.Trim(w, ".,;:\"'")
		if w == "" || v.lex.IsNonActor(w) || v.lex.IsTemporalWord(w) {
			continue
		}
		content++
	}
	if content == 0 {
		return false
	}

	// Reject pure numbers and punctuation fragments
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

// ValidVictim applies Valid plus victim-specific rejections: a weapon phrase
// is never a victim ("detonated an explosive device").
func (v *ActorValidator) ValidVictim(text string) bool {
	if !v.Valid(text) {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range v.lex.WeaponPhrases() {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, w := range strings.Fields(lower) {
		if v.lex.IsWeapon(strings.Trim(w, ".,;:\"'")) {
			return false
		}
	}
	return true
}

// actor type keyword tables, checked in priority order
var (
	stateIndicators     = []string{"military", "army", "police", "soldier", "troop", "security force", "officer"}
	terroristIndicators = []string{"militant", "extremist", "jihadist", "terrorist"}
	rebelIndicators     = []string{"rebel", "insurgent", "fighter"}
	criminalIndicators  = []string{"gunman", "gunmen", "gang", "robber", "bandit", "kidnapper"}
	communalIndicators  = []string{"community", "communities", "ethnic", "tribal", "clan", "herder", "herdsmen", "farmer", "villager", "hema", "lendu", "hutu", "tutsi"}
	politicalIndicators = []string{"protester", "demonstrator", "opposition", "supporter"}
)

// Classify resolves the coarse actor type for a mention. Gazetteer armed
// groups win over keyword inference; entity spans in the sentence refine
// organization/person when keywords stay silent.
func (v *ActorValidator) Classify(text string, entities []model.Entity) (model.ActorType, bool) {
	if _, ok := v.gaz.FindGroupIn(text); ok {
		return model.ActorPolitical, true
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, stateIndicators):
		return model.ActorState, false
	case containsAny(lower, terroristIndicators), containsAny(lower, rebelIndicators):
		return model.ActorPolitical, false
	case containsAny(lower, criminalIndicators):
		return model.ActorCriminal, false
	case containsAny(lower, communalIndicators):
		return model.ActorCommunal, false
	case containsAny(lower, politicalIndicators):
		return model.ActorPolitical, false
	}

	for _, e := range entities {
		if !strings.Contains(lower, strings.ToLower(e.Text)) && !strings.Contains(strings.ToLower(e.Text), lower) {
			continue
		}
		switch e.Type {
		case "ORGANIZATION":
			return model.ActorOrganization, false
		case "PERSON":
			return model.ActorPerson, false
		}
	}

	return model.ActorUnknown, false
}

func containsAny(text string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			return true
		}
	}
	return false
}
