package extract

import (
	"strings"

	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// TriggerDetector scans annotated sentences for violence-lexicon matches.
// Stateless; safe to share across workers.
type TriggerDetector struct {
	lex *lexicon.Lexicon
}

// NewTriggerDetector creates a trigger detector.
func NewTriggerDetector(lex *lexicon.Lexicon) *TriggerDetector {
	return &TriggerDetector{lex: lex}
}

// Detect returns the triggers in one sentence, in token order. A lemma that
// is both a violence verb and a common noun ("attack", "raid") only counts
// when its POS tag matches the lexicon entry's grammatical class, so "the
// attack" never fires the verb lexicon and vice versa.
func (d *TriggerDetector) Detect(sent *model.AnnotatedSentence) []model.Trigger {
	var triggers []model.Trigger

	for _, tok := range sent.Tokens {
		lemma := strings.ToLower(tok.Lemma)

		var kind model.TriggerKind
		switch {
		case strings.HasPrefix(tok.POS, "VB") && d.lex.IsTriggerVerb(lemma):
			kind = model.TriggerVerb
		case strings.HasPrefix(tok.POS, "NN") && d.lex.IsTriggerNoun(lemma):
			kind = model.TriggerNoun
		default:
			continue
		}

		triggers = append(triggers, model.Trigger{
			Word:          tok.Word,
			Lemma:         lemma,
			POS:           tok.POS,
			Kind:          kind,
			SentenceIndex: sent.Index,
			TokenIndex:    tok.Index,
		})
	}

	return triggers
}

// ScoreSentence estimates how likely the sentence describes a violent event,
// in [0,1]. Used to set the violence-sentence flag during enrichment.
func (d *TriggerDetector) ScoreSentence(sent *model.AnnotatedSentence) float64 {
	triggers := d.Detect(sent)
	if len(triggers) == 0 {
		return 0.0
	}

	tokenCount := len(sent.Tokens)
	if tokenCount == 0 {
		return 0.0
	}

	base := float64(len(triggers)) / 5.0
	if base > 0.5 {
		base = 0.5
	}

	violenceWords := 0
	for _, tok := range sent.Tokens {
		if d.lex.IsViolenceTerm(tok.Lemma) {
			violenceWords++
		}
	}
	context := float64(violenceWords) / float64(tokenCount)
	if context > 0.3 {
		context = 0.3
	}

	entityScore := float64(len(sent.Entities)) / 10.0
	if entityScore > 0.2 {
		entityScore = 0.2
	}

	total := base + context + entityScore
	if total > 1.0 {
		total = 1.0
	}
	return total
}
