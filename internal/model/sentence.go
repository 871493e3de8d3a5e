package model

// Token is a single annotated token from the annotation collaborator
type Token struct {
	Word   string `json:"word"`             // Surface form
	Lemma  string `json:"lemma"`            // Lemmatized form (lowercase)
	POS    string `json:"pos"`              // Penn Treebank tag (NN, VBD, ...)
	Entity string `json:"entity,omitempty"` // NER tag (ORGANIZATION, LOCATION, DATE, O)
	Index  int    `json:"index"`            // 0-based position within the sentence
}

// Entity is a recognized entity span within one sentence
type Entity struct {
	Text    string `json:"text"`
	Type    string `json:"type"`              // ORGANIZATION, PERSON, LOCATION, DATE, ...
	Subtype string `json:"subtype,omitempty"` // Gazetteer refinement (TERRORIST, CITY, ...)
	Start   int    `json:"start"`             // First token index (inclusive)
	End     int    `json:"end"`               // Last token index (inclusive)
	Country string `json:"country,omitempty"` // From gazetteer, locations only
	Region  string `json:"region,omitempty"`
}

// Dependency is one dependency-relation triple.
// Governor and Dependent are 0-based token indices; the root's governor is -1.
type Dependency struct {
	Relation  string `json:"relation"` // nsubj, dobj, compound, amod, ...
	Governor  int    `json:"governor"`
	Dependent int    `json:"dependent"`
}

// AnnotatedSentence is one sentence as produced by the annotation
// collaborator. Immutable once built; shared read-only across passes.
type AnnotatedSentence struct {
	Index        int          `json:"index"` // 0-based position in the article
	Text         string       `json:"text"`
	Tokens       []Token      `json:"tokens"`
	Entities     []Entity     `json:"entities"`
	Dependencies []Dependency `json:"dependencies"`
	IsViolence   bool         `json:"is_violence"` // Precomputed violence-sentence flag
}

// CorefMention is one mention inside a coreference chain, addressed by
// sentence and token indices rather than pointers.
type CorefMention struct {
	Text           string `json:"text"`
	SentenceIndex  int    `json:"sentence_index"`
	StartToken     int    `json:"start_token"`
	EndToken       int    `json:"end_token"`
	Representative bool   `json:"representative"`
}

// CorefChain is a cluster of mentions referring to the same entity.
// Exactly one mention is flagged representative.
type CorefChain struct {
	ID       int            `json:"id"`
	Mentions []CorefMention `json:"mentions"`
}

// Representative returns the chain's representative mention, or the first
// mention when none is flagged.
func (c CorefChain) Representative() (CorefMention, bool) {
	for _, m := range c.Mentions {
		if m.Representative {
			return m, true
		}
	}
	if len(c.Mentions) > 0 {
		return c.Mentions[0], true
	}
	return CorefMention{}, false
}

// Article is the raw input unit before annotation
type Article struct {
	ID       string `json:"id"`
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Source   string `json:"source,omitempty"`
	Date     string `json:"date,omitempty"`     // Declared publication date, raw
	Location string `json:"location,omitempty"` // Declared dateline location, raw
	Text     string `json:"text"`
}

// ArticleContext is the read-only input to the whole extraction pipeline:
// the annotated sentences plus coreference chains plus article metadata.
type ArticleContext struct {
	ArticleID        string              `json:"article_id"`
	Title            string              `json:"title,omitempty"`
	DeclaredDate     string              `json:"declared_date,omitempty"`
	DeclaredLocation string              `json:"declared_location,omitempty"`
	Sentences        []AnnotatedSentence `json:"sentences"`
	CorefChains      []CorefChain        `json:"coref_chains,omitempty"`
}

// Sentence returns the sentence at idx, or false when out of range.
func (a *ArticleContext) Sentence(idx int) (*AnnotatedSentence, bool) {
	if idx < 0 || idx >= len(a.Sentences) {
		return nil, false
	}
	return &a.Sentences[idx], true
}

// ChainFor returns the coreference chain containing the given token position,
// or false when the position belongs to no chain.
func (a *ArticleContext) ChainFor(sentenceIdx, tokenIdx int) (CorefChain, bool) {
	for _, chain := range a.CorefChains {
		for _, m := range chain.Mentions {
			if m.SentenceIndex == sentenceIdx && tokenIdx >= m.StartToken && tokenIdx <= m.EndToken {
				return chain, true
			}
		}
	}
	return CorefChain{}, false
}
