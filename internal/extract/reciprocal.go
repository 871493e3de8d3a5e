package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// ReciprocalSplitter expands symmetric-conflict phrasing ("clashes between
// X and Y") into a directional event pair. At most one split is performed
// per sentence; casualty totals attach to the first event of the pair only.
type ReciprocalSplitter struct {
	validator *ActorValidator
}

// NewReciprocalSplitter creates a splitter.
func NewReciprocalSplitter(lex *lexicon.Lexicon, gaz *lexicon.Gazetteer) *ReciprocalSplitter {
	return &ReciprocalSplitter{validator: NewActorValidator(lex, gaz)}
}

var reciprocalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:clash|fighting|violence|battle|conflict)e?s?\s+between\s+(.+?)\s+and\s+(.+?)(?:\s+(?:in|at|near|on|over|have|has|had|left|killed|erupted|continued)\b|[,.]|$)`),
	regexp.MustCompile(`(?i)^(.+?)\s+and\s+(.+?)\s+(?:clashed|fought|battled)`),
}

// Split expands reciprocal events within the event list. Non-matching
// events pass through unchanged; the input list is not modified.
func (r *ReciprocalSplitter) Split(events []model.Event, ctx *model.ArticleContext) []model.Event {
	out := make([]model.Event, 0, len(events))
	splitSentences := make(map[int]bool)

	for _, event := range events {
		sent, ok := ctx.Sentence(event.SentenceIndex())
		if !ok || splitSentences[sent.Index] {
			out = append(out, event)
			continue
		}

		x, y, ok := r.matchParties(sent.Text)
		if !ok {
			out = append(out, event)
			continue
		}

		pairID := fmt.Sprintf("%s-s%d-%s", ctx.ArticleID, sent.Index, event.Trigger.Lemma)
		first, second := r.buildPair(event, x, y, sent.Entities, pairID)
		out = append(out, first, second)
		splitSentences[sent.Index] = true
	}

	return out
}

// matchParties extracts and validates both conflict parties; both must
// independently pass actor validation or no split happens.
func (r *ReciprocalSplitter) matchParties(text string) (x, y string, ok bool) {
	for _, re := range reciprocalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		x = strings.TrimSpace(m[1])
		y = strings.TrimSpace(m[2])
		if r.validator.Valid(x) && r.validator.Valid(y) {
			return x, y, true
		}
	}
	return "", "", false
}

// buildPair creates the two directional events. Both share trigger and
// sentence with actor/victim swapped; any casualty total stays on the first.
func (r *ReciprocalSplitter) buildPair(event model.Event, x, y string, entities []model.Entity, pairID string) (model.Event, model.Event) {
	xType, xKnown := r.validator.Classify(x, entities)
	yType, yKnown := r.validator.Classify(y, entities)

	counts := model.Casualties{}
	if event.Whom != nil {
		counts = event.Whom.Casualties
	}

	first := event.Clone()
	first.Who = &model.ActorMention{Text: x, Type: xType, KnownGroup: xKnown, Provenance: model.FromReciprocal}
	first.Whom = &model.VictimMention{Text: y, Type: yType, Casualties: counts, Provenance: model.FromReciprocal}
	first.Reciprocal = true
	first.PairID = pairID
	first.Rescore()

	second := event.Clone()
	second.Who = &model.ActorMention{Text: y, Type: yType, KnownGroup: yKnown, Provenance: model.FromReciprocal}
	second.Whom = &model.VictimMention{Text: x, Type: xType, Provenance: model.FromReciprocal}
	second.Reciprocal = true
	second.PairID = pairID
	second.Rescore()

	return first, second
}
