package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the read-only violence vocabulary shared by every pipeline
// component. Loaded once per process; never mutated afterwards.
type Lexicon struct {
	verbs      map[string]bool // Trigger verbs, by lemma
	nouns      map[string]bool // Trigger nouns, by lemma
	actorTerms map[string]bool // Actor-indicative common nouns
	weapons    map[string]bool
	tactics    map[string]bool

	// Multi-word method phrases, preferred over single-token matches
	weaponPhrases []string
	tacticPhrases []string

	nonActors  map[string]bool   // Stoplisted tokens that are never actors
	eventTypes map[string]string // Trigger lemma -> event-type label
	related    map[string]bool   // Canonical "a~b" keys of related trigger lemmas

	temporalWords  map[string]bool
	genericPhrases map[string]bool // Pronouns/placeholders needing coreference
}

// lexiconFile is the YAML override format.
type lexiconFile struct {
	Verbs         []string          `yaml:"verbs"`
	Nouns         []string          `yaml:"nouns"`
	ActorTerms    []string          `yaml:"actor_terms"`
	Weapons       []string          `yaml:"weapons"`
	Tactics       []string          `yaml:"tactics"`
	WeaponPhrases []string          `yaml:"weapon_phrases"`
	TacticPhrases []string          `yaml:"tactic_phrases"`
	NonActors     []string          `yaml:"non_actors"`
	EventTypes    map[string]string `yaml:"event_types"`
	Related       [][2]string       `yaml:"related_triggers"`
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	l := &Lexicon{
		verbs: toSet(
			"kill", "slay", "murder", "execute", "assassinate", "massacre",
			"attack", "assault", "raid", "ambush", "storm",
			"shoot", "fire", "gun",
			"bomb", "explode", "detonate", "blast",
			"kidnap", "abduct", "seize", "capture",
			"fight", "clash", "battle",
			"wound", "injure", "hurt", "harm",
			"destroy", "burn", "raze",
		),
		nouns: toSet(
			"attack", "assault", "raid", "ambush",
			"bombing", "explosion", "shooting", "massacre",
			"killing", "murder", "assassination",
			"kidnapping", "abduction",
			"clash", "battle", "violence", "bloodshed", "carnage",
		),
		actorTerms: toSet(
			"militant", "militia", "rebel", "insurgent",
			"terrorist", "extremist", "jihadist",
			"gunman", "gunmen", "fighter", "attacker", "assailant", "perpetrator",
			"soldier", "troop", "force", "forces", "military", "army",
			"police", "officer", "gang", "bandit", "robber",
			"group", "community", "herder", "farmer", "protester", "demonstrator",
		),
		weapons: toSet(
			"gun", "rifle", "pistol", "firearm", "ak-47", "kalashnikov",
			"bomb", "explosive", "ied", "grenade", "dynamite",
			"rocket", "missile", "mortar", "artillery", "rpg",
			"knife", "machete", "blade", "bullet",
		),
		tactics: toSet(
			"ambush", "raid", "assault", "suicide", "roadside", "arson",
		),
		weaponPhrases: []string{
			"explosive device", "suicide bomb", "car bomb", "roadside bomb",
			"suicide vest", "rocket-propelled grenade",
		},
		tacticPhrases: []string{
			"suicide bombing", "suicide attack", "drive-by shooting",
			"house-to-house raid",
		},
		nonActors: toSet(
			"the", "a", "an", "this", "that", "these", "those",
			"it", "there", "here", "who", "which", "what",
			"violent", "deadly", "during", "after", "before", "while",
			"in", "at", "on", "near", "from", "to",
			"yesterday", "today", "tonight", "morning", "afternoon", "evening", "night",
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
			"week", "month", "year", "time", "day",
			"bakara", "market", "area", "region", "district", "town", "village", "city",
		),
		eventTypes: map[string]string{
			"kill": "killing", "murder": "killing", "slay": "killing",
			"execute": "killing", "assassinate": "killing", "massacre": "killing",
			"killing": "killing", "assassination": "killing",
			"bomb": "bombing", "explode": "bombing", "detonate": "bombing",
			"blast": "bombing", "bombing": "bombing", "explosion": "bombing",
			"shoot": "shooting", "gun": "shooting", "shooting": "shooting",
			"kidnap": "kidnapping", "abduct": "kidnapping", "seize": "kidnapping",
			"capture": "kidnapping", "kidnapping": "kidnapping", "abduction": "kidnapping",
			"attack": "armed_attack", "assault": "armed_attack", "raid": "armed_attack",
			"storm": "armed_attack", "ambush": "armed_attack",
			"clash": "armed_clash", "fight": "armed_clash", "battle": "armed_clash",
		},
		temporalWords: toSet(
			"yesterday", "today", "tonight", "overnight",
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
			"morning", "afternoon", "evening", "night", "dawn",
		),
		genericPhrases: toSet(
			"they", "them", "he", "she", "it", "we", "who",
			"the group", "the men", "the attackers", "the assailants",
			"the gunmen", "the militants",
		),
	}
	l.related = buildRelated([][2]string{
		{"bomb", "explosion"}, {"bomb", "explode"}, {"bomb", "detonate"},
		{"bomb", "blast"}, {"explode", "explosion"}, {"detonate", "explosion"},
		{"kill", "death"}, {"kill", "massacre"}, {"kill", "murder"},
		{"kill", "attack"}, {"kill", "shooting"}, {"kill", "shoot"},
		{"attack", "assault"}, {"attack", "raid"}, {"attack", "storm"},
		{"attack", "ambush"}, {"shoot", "shooting"}, {"shoot", "fire"},
		{"clash", "fight"}, {"clash", "battle"},
		{"kidnap", "abduct"}, {"kidnap", "seize"},
	})
	return l
}

// Load reads a YAML lexicon file, replacing the built-in defaults for any
// section the file provides.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	l := Default()
	if len(f.Verbs) > 0 {
		l.verbs = toSet(f.Verbs...)
	}
	if len(f.Nouns) > 0 {
		l.nouns = toSet(f.Nouns...)
	}
	if len(f.ActorTerms) > 0 {
		l.actorTerms = toSet(f.ActorTerms...)
	}
	if len(f.Weapons) > 0 {
		l.weapons = toSet(f.Weapons...)
	}
	if len(f.Tactics) > 0 {
		l.tactics = toSet(f.Tactics...)
	}
	if len(f.WeaponPhrases) > 0 {
		l.weaponPhrases = f.WeaponPhrases
	}
	if len(f.TacticPhrases) > 0 {
		l.tacticPhrases = f.TacticPhrases
	}
	if len(f.NonActors) > 0 {
		l.nonActors = toSet(f.NonActors...)
	}
	if len(f.EventTypes) > 0 {
		l.eventTypes = f.EventTypes
	}
	if len(f.Related) > 0 {
		l.related = buildRelated(f.Related)
	}
	return l, nil
}

// IsTriggerVerb reports whether lemma is a violence verb.
func (l *Lexicon) IsTriggerVerb(lemma string) bool {
	return l.verbs[strings.ToLower(lemma)]
}

// IsTriggerNoun reports whether lemma is a violence event noun.
func (l *Lexicon) IsTriggerNoun(lemma string) bool {
	return l.nouns[strings.ToLower(lemma)]
}

// IsViolenceTerm reports whether lemma belongs to any violence set.
func (l *Lexicon) IsViolenceTerm(lemma string) bool {
	lemma = strings.ToLower(lemma)
	return l.verbs[lemma] || l.nouns[lemma] || l.actorTerms[lemma] || l.weapons[lemma]
}

// IsActorTerm reports whether lemma indicates an actor.
func (l *Lexicon) IsActorTerm(lemma string) bool {
	return l.actorTerms[strings.ToLower(lemma)]
}

// IsWeapon reports whether lemma names a weapon.
func (l *Lexicon) IsWeapon(lemma string) bool {
	return l.weapons[strings.ToLower(lemma)]
}

// IsTactic reports whether lemma names a tactic.
func (l *Lexicon) IsTactic(lemma string) bool {
	return l.tactics[strings.ToLower(lemma)]
}

// WeaponPhrases returns the multi-word weapon phrases.
func (l *Lexicon) WeaponPhrases() []string { return l.weaponPhrases }

// TacticPhrases returns the multi-word tactic phrases.
func (l *Lexicon) TacticPhrases() []string { return l.tacticPhrases }

// IsNonActor reports whether the token is stoplisted as never-an-actor.
func (l *Lexicon) IsNonActor(word string) bool {
	return l.nonActors[strings.ToLower(word)]
}

// IsTemporalWord reports whether lemma is a relative-time token.
func (l *Lexicon) IsTemporalWord(lemma string) bool {
	return l.temporalWords[strings.ToLower(lemma)]
}

// IsGenericPhrase reports whether text is a pronoun or placeholder phrase
// that needs coreference resolution before it can name an actor.
func (l *Lexicon) IsGenericPhrase(text string) bool {
	return l.genericPhrases[strings.ToLower(strings.TrimSpace(text))]
}

// EventType maps a trigger lemma to its event-type label; unmapped lemmas
// get the generic "violence" label so the what role is always populated.
func (l *Lexicon) EventType(lemma string) string {
	if t, ok := l.eventTypes[strings.ToLower(lemma)]; ok {
		return t
	}
	return "violence"
}

// Related reports whether two trigger lemmas are listed as describing the
// same kind of incident (bomb~explosion, kill~death, ...).
func (l *Lexicon) Related(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return true
	}
	return l.related[relKey(a, b)]
}

func relKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "~" + b
}

func buildRelated(pairs [][2]string) map[string]bool {
	m := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		m[relKey(strings.ToLower(p[0]), strings.ToLower(p[1]))] = true
	}
	return m
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = true
	}
	return m
}
