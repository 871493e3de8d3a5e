package model

// TriggerKind distinguishes verb triggers from noun triggers
type TriggerKind string

const (
	TriggerVerb TriggerKind = "verb"
	TriggerNoun TriggerKind = "noun"
)

// Trigger anchors a candidate event to a violence-lexicon token
type Trigger struct {
	Word          string      `json:"word"`
	Lemma         string      `json:"lemma"`
	POS           string      `json:"pos"`
	Kind          TriggerKind `json:"kind"`
	SentenceIndex int         `json:"sentence_index"`
	TokenIndex    int         `json:"token_index"`
}

// ActorType is the coarse classification of an actor or victim mention
type ActorType string

const (
	ActorOrganization ActorType = "organization"
	ActorPerson       ActorType = "person"
	ActorState        ActorType = "state"
	ActorCriminal     ActorType = "criminal"
	ActorCommunal     ActorType = "communal"
	ActorPolitical    ActorType = "political" // Non-state armed / political actors
	ActorUnknown      ActorType = "unknown"
)

// Provenance records which strategy produced a role value
type Provenance string

const (
	FromCoreference    Provenance = "coreference"
	FromClaim          Provenance = "responsibility_claim"
	FromTitle          Provenance = "title_pattern"
	FromSubject        Provenance = "subject"
	FromObject         Provenance = "object"
	FromEntity         Provenance = "nearest_entity"
	FromCompound       Provenance = "compound_expansion"
	FromWindow         Provenance = "token_window"
	FromPattern        Provenance = "preposition_pattern"
	FromGazetteer      Provenance = "gazetteer"
	FromReciprocal     Provenance = "reciprocal_split"
	FromDeclaredsource Provenance = "article_metadata"
)

// ActorMention is a who/whom role value
type ActorMention struct {
	Text       string     `json:"text"`
	Type       ActorType  `json:"type"`
	KnownGroup bool       `json:"known_group,omitempty"` // Matched the armed-group gazetteer
	Provenance Provenance `json:"provenance,omitempty"`
}

// Casualties carries bounded death/injury counts. A nil pointer means the
// count is absent, never zero.
type Casualties struct {
	Deaths   *int `json:"deaths,omitempty"`
	Injuries *int `json:"injuries,omitempty"`
}

// Present reports whether at least one count was extracted.
func (c Casualties) Present() bool {
	return c.Deaths != nil || c.Injuries != nil
}

// VictimMention is the whom role: a victim phrase plus casualty counts
type VictimMention struct {
	Text       string     `json:"text"`
	Type       ActorType  `json:"type"`
	Casualties Casualties `json:"casualties"`
	Provenance Provenance `json:"provenance,omitempty"`
}

// LocationMention is the where role
type LocationMention struct {
	Text       string     `json:"text"`
	Type       string     `json:"type,omitempty"` // COUNTRY, CITY, STATE, REGION, INFERRED
	Country    string     `json:"country,omitempty"`
	Region     string     `json:"region,omitempty"`
	Provenance Provenance `json:"provenance,omitempty"`
}

// TemporalMention is the when role. Normalized is an ISO date (YYYY-MM-DD)
// or empty when normalization failed; the raw text is always kept.
type TemporalMention struct {
	Text       string `json:"text"`
	Normalized string `json:"normalized,omitempty"`
	Relative   bool   `json:"relative,omitempty"`
}

// MethodMention is the how role
type MethodMention struct {
	Weapons  []string `json:"weapons,omitempty"`
	Tactics  []string `json:"tactics,omitempty"`
	Text     string   `json:"text,omitempty"`
	Inferred bool     `json:"inferred,omitempty"` // Derived from the trigger, not the text
}

// Taxonomy is the three-level category triple, always complete after
// classification.
type Taxonomy struct {
	L1 string `json:"l1"`
	L2 string `json:"l2"`
	L3 string `json:"l3"`
}

// Event is one extracted violent event. Events are value types: the merge
// and cluster passes build new Events rather than mutating in place.
type Event struct {
	Trigger Trigger `json:"trigger"`

	Who   *ActorMention    `json:"who,omitempty"`
	What  string           `json:"what"` // Event-type label, non-empty once a trigger exists
	Whom  *VictimMention   `json:"whom,omitempty"`
	Where *LocationMention `json:"where,omitempty"`
	When  *TemporalMention `json:"when,omitempty"`
	How   *MethodMention   `json:"how,omitempty"`

	Confidence   float64 `json:"confidence"`
	Completeness float64 `json:"completeness"`

	Reciprocal bool   `json:"reciprocal,omitempty"`
	PairID     string `json:"pair_id,omitempty"`

	Taxonomy *Taxonomy `json:"taxonomy,omitempty"`
}

// SentenceIndex is the sentence the trigger anchors to.
func (e *Event) SentenceIndex() int { return e.Trigger.SentenceIndex }

// FilledRoles counts non-null values among the six semantic roles.
func (e *Event) FilledRoles() int {
	n := 0
	if e.Who != nil {
		n++
	}
	if e.What != "" {
		n++
	}
	if e.Whom != nil {
		n++
	}
	if e.Where != nil {
		n++
	}
	if e.When != nil {
		n++
	}
	if e.How != nil {
		n++
	}
	return n
}

// Rescore recomputes confidence and completeness from role presence.
// Completeness is filled-roles/6; confidence is the weighted sum from the
// role contributions, clipped to [0,1].
func (e *Event) Rescore() {
	e.Completeness = float64(e.FilledRoles()) / 6.0

	score := 0.0
	if e.Who != nil {
		score += 0.25
		if e.Who.Type != ActorUnknown && e.Who.Type != "" {
			score += 0.05
		}
	}
	if e.Whom != nil {
		score += 0.25
		if e.Whom.Casualties.Present() {
			score += 0.10
		}
	}
	if e.Where != nil {
		score += 0.15
	}
	if e.When != nil {
		score += 0.10
	}
	if e.How != nil {
		score += 0.10
	}
	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	e.Confidence = score
}

// Clone returns a deep copy so refinement passes can build new events
// without aliasing role pointers.
func (e Event) Clone() Event {
	out := e
	if e.Who != nil {
		who := *e.Who
		out.Who = &who
	}
	if e.Whom != nil {
		whom := *e.Whom
		if e.Whom.Casualties.Deaths != nil {
			d := *e.Whom.Casualties.Deaths
			whom.Casualties.Deaths = &d
		}
		if e.Whom.Casualties.Injuries != nil {
			i := *e.Whom.Casualties.Injuries
			whom.Casualties.Injuries = &i
		}
		out.Whom = &whom
	}
	if e.Where != nil {
		where := *e.Where
		out.Where = &where
	}
	if e.When != nil {
		when := *e.When
		out.When = &when
	}
	if e.How != nil {
		how := *e.How
		how.Weapons = append([]string(nil), e.How.Weapons...)
		how.Tactics = append([]string(nil), e.How.Tactics...)
		out.How = &how
	}
	if e.Taxonomy != nil {
		tax := *e.Taxonomy
		out.Taxonomy = &tax
	}
	return out
}
