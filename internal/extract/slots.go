package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bkmekonnen/vigil/internal/dates"
	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// SlotFiller populates the six semantic roles for one trigger. Each role
// runs an ordered strategy chain: the first candidate passing validation
// wins, later strategies run only on failure. Stateless apart from the
// shared read-only lexicons; safe across workers.
type SlotFiller struct {
	lex        *lexicon.Lexicon
	gaz        *lexicon.Gazetteer
	normalizer *dates.Normalizer
	casualties *CasualtyParser
	validator  *ActorValidator
	window     int // token window scanned before the trigger for actors
}

// NewSlotFiller creates a slot filler.
func NewSlotFiller(lex *lexicon.Lexicon, gaz *lexicon.Gazetteer, normalizer *dates.Normalizer, casualties *CasualtyParser, window int) *SlotFiller {
	if window <= 0 {
		window = 5
	}
	return &SlotFiller{
		lex:        lex,
		gaz:        gaz,
		normalizer: normalizer,
		casualties: casualties,
		validator:  NewActorValidator(lex, gaz),
		window:     window,
	}
}

// Fill builds a raw Event for the trigger. The what role is always
// populated; the others may stay nil when every strategy fails.
func (f *SlotFiller) Fill(trigger model.Trigger, ctx *model.ArticleContext) model.Event {
	event := model.Event{
		Trigger: trigger,
		What:    f.lex.EventType(trigger.Lemma),
	}

	sent, ok := ctx.Sentence(trigger.SentenceIndex)
	if !ok {
		event.Rescore()
		return event
	}

	event.Who = f.fillWho(trigger, sent, ctx)
	event.Whom = f.fillWhom(trigger, sent, ctx)
	event.Where = f.fillWhere(sent, ctx)
	event.When = f.fillWhen(sent, ctx)
	event.How = f.fillHow(trigger, sent)

	event.Rescore()
	return event
}

// ---------------------------------------------------------------------------
// WHO
// ---------------------------------------------------------------------------

// whoStrategy tries one heuristic; nil means fall through to the next.
type whoStrategy func(f *SlotFiller, trigger model.Trigger, sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.ActorMention

var whoChain = []whoStrategy{
	(*SlotFiller).whoFromCoreference,
	(*SlotFiller).whoFromResponsibilityClaim,
	(*SlotFiller).whoFromTitle,
	(*SlotFiller).whoFromSubject,
	(*SlotFiller).whoFromNearestEntity,
	(*SlotFiller).whoFromWindow,
}

func (f *SlotFiller) fillWho(trigger model.Trigger, sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.ActorMention {
	for _, strategy := range whoChain {
		if who := strategy(f, trigger, sent, ctx); who != nil {
			return who
		}
	}
	return nil
}

// whoFromCoreference resolves a pronoun or generic-phrase subject ("they",
// "the group") through the coreference chains to its representative mention.
func (f *SlotFiller) whoFromCoreference(trigger model.Trigger, sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.ActorMention {
	subjIdx, ok := f.subjectOf(trigger, sent)
	if !ok {
		return nil
	}

	phrase := f.phraseText(subjIdx, sent)
	tok := sent.Tokens[subjIdx]
	if !strings.HasPrefix(tok.POS, "PRP") && !f.lex.IsGenericPhrase(phrase) {
		return nil
	}

	chain, ok := ctx.ChainFor(sent.Index, subjIdx)
	if !ok {
		return nil
	}
	rep, ok := chain.Representative()
	if !ok || f.lex.IsGenericPhrase(rep.Text) {
		return nil
	}

	return f.acceptActor(rep.Text, sent.Entities, model.FromCoreference)
}

var claimRe = regexp.MustCompile(`([A-Z][\w'-]*(?:[\s-][A-Z][\w'-]*)*)\s+(?:has\s+|have\s+|had\s+)?claimed\s+responsibility`)

// whoFromResponsibilityClaim binds a "<Entity> claimed responsibility"
// pattern found anywhere in the article, but only when the trigger sentence
// itself offers no valid explicit subject.
func (f *SlotFiller) whoFromResponsibilityClaim(trigger model.Trigger, sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.ActorMention {
	if subjIdx, ok := f.subjectOf(trigger, sent); ok {
		if f.validator.Valid(f.phraseText(subjIdx, sent)) {
			return nil // explicit local actor wins
		}
	}

	for i := range ctx.Sentences {
		text := ctx.Sentences[i].Text
		if !strings.Contains(strings.ToLower(text), "claimed responsibility") {
			continue
		}
		// A known armed group in the claim sentence beats the raw capture
		if grp, ok := f.gaz.FindGroupIn(text); ok {
			return &model.ActorMention{
				Text:       grp.Name,
				Type:       model.ActorPolitical,
				KnownGroup: true,
				Provenance: model.FromClaim,
			}
		}
		if m := claimRe.FindStringSubmatch(text); m != nil {
			if who := f.acceptActor(m[1], ctx.Sentences[i].Entities, model.FromClaim); who != nil {
				return who
			}
		}
	}
	return nil
}

// Title templates: "<count> <actor-noun> kill ...", "<Group> claims ...".
// A small fixed set; coverage is limited by construction.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:at least\s+)?(?:\d+\s+)?([\w\s'-]*?(?:militants?|gunmen|rebels?|insurgents?|soldiers?|forces|fighters?|bandits?|herdsmen|attackers?))\s+(?:kill|attack|abduct|kidnap|ambush|raid|storm|bomb|shoot)`),
	regexp.MustCompile(`(?i)^([\w\s'-]+?)\s+claims?\s+(?:deadly\s+)?(?:attack|bombing|raid|responsibility)`),
}

func (f *SlotFiller) whoFromTitle(trigger model.Trigger, sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.ActorMention {
	title := strings.TrimSpace(ctx.Title)
	if title == "" {
		return nil
	}

	if grp, ok := f.gaz.FindGroupIn(title); ok {
		return &model.ActorMention{
			Text:       grp.Name,
			Type:       model.ActorPolitical,
			KnownGroup: true,
			Provenance: model.FromTitle,
		}
	}

	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(title); m != nil {
			if who := f.acceptActor(strings.TrimSpace(m[1]), nil, model.FromTitle); who != nil {
				return who
			}
		}
	}
	return nil
}

// whoFromSubject takes the grammatical subject of the trigger, expanded to
// its full noun phrase.
func (f *SlotFiller) whoFromSubject(trigger model.Trigger, sent *model.AnnotatedSentence, _ *model.ArticleContext) *model.ActorMention {
	subjIdx, ok := f.subjectOf(trigger, sent)
	if !ok {
		return nil
	}
	return f.acceptActor(f.phraseText(subjIdx, sent), sent.Entities, model.FromSubject)
}

// whoFromNearestEntity takes the closest organization or person entity
// preceding the trigger token.
func (f *SlotFiller) whoFromNearestEntity(trigger model.Trigger, sent *model.AnnotatedSentence, _ *model.ArticleContext) *model.ActorMention {
	best := -1
	var bestText string
	for _, e := range sent.Entities {
		if e.Type != "ORGANIZATION" && e.Type != "PERSON" {
			continue
		}
		if e.End >= trigger.TokenIndex {
			continue
		}
		if e.Start > best {
			best = e.Start
			bestText = e.Text
		}
	}
	if best < 0 {
		return nil
	}
	return f.acceptActor(bestText, sent.Entities, model.FromEntity)
}

// whoFromWindow scans a bounded token window before the trigger for
// actor-indicative nouns or known armed groups.
func (f *SlotFiller) whoFromWindow(trigger model.Trigger, sent *model.AnnotatedSentence, _ *model.ArticleContext) *model.ActorMention {
	start := trigger.TokenIndex - f.window
	if start < 0 {
		start = 0
	}

	var words []string
	for i := start; i < trigger.TokenIndex && i < len(sent.Tokens); i++ {
		words = append(words, sent.Tokens[i].Word)
	}
	windowText := strings.Join(words, " ")

	if grp, ok := f.gaz.FindGroupIn(windowText); ok {
		return &model.ActorMention{
			Text:       grp.Name,
			Type:       model.ActorPolitical,
			KnownGroup: true,
			Provenance: model.FromWindow,
		}
	}

	for i := trigger.TokenIndex - 1; i >= start; i-- {
		if i >= len(sent.Tokens) {
			continue
		}
		if f.lex.IsActorTerm(sent.Tokens[i].Lemma) {
			if who := f.acceptActor(f.phraseText(i, sent), sent.Entities, model.FromWindow); who != nil {
				return who
			}
		}
	}
	return nil
}

// acceptActor validates and classifies a candidate; nil on rejection.
func (f *SlotFiller) acceptActor(text string, entities []model.Entity, prov model.Provenance) *model.ActorMention {
	text = strings.TrimSpace(text)
	if !f.validator.Valid(text) {
		return nil
	}
	actorType, known := f.validator.Classify(text, entities)
	return &model.ActorMention{
		Text:       text,
		Type:       actorType,
		KnownGroup: known,
		Provenance: prov,
	}
}

// ---------------------------------------------------------------------------
// WHOM
// ---------------------------------------------------------------------------

func (f *SlotFiller) fillWhom(trigger model.Trigger, sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.VictimMention {
	// Casualties scan the trigger sentence plus one sentence either side
	counts, victimNoun := f.casualties.ParseDetail(f.surroundingText(sent.Index, ctx))

	if objIdx, ok := f.objectOf(trigger, sent); ok {
		text := f.phraseText(objIdx, sent)
		if f.validator.ValidVictim(text) {
			victimType, _ := f.validator.Classify(text, sent.Entities)
			return &model.VictimMention{
				Text:       text,
				Type:       victimType,
				Casualties: counts,
				Provenance: model.FromObject,
			}
		}
	}

	// No parseable object; a casualty phrase still names victims
	if counts.Present() && victimNoun != "" {
		victimType, _ := f.validator.Classify(victimNoun, sent.Entities)
		return &model.VictimMention{
			Text:       victimNoun,
			Type:       victimType,
			Casualties: counts,
			Provenance: model.FromPattern,
		}
	}

	return nil
}

// surroundingText joins the trigger sentence with its immediate neighbors.
func (f *SlotFiller) surroundingText(idx int, ctx *model.ArticleContext) string {
	var parts []string
	for i := idx - 1; i <= idx+1; i++ {
		if s, ok := ctx.Sentence(i); ok {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// WHERE
// ---------------------------------------------------------------------------

var locationEntityTypes = map[string]bool{
	"LOCATION": true, "CITY": true, "COUNTRY": true,
	"STATE_OR_PROVINCE": true, "GPE": true,
}

func (f *SlotFiller) fillWhere(sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.LocationMention {
	for _, e := range sent.Entities {
		if !locationEntityTypes[e.Type] {
			continue
		}
		return f.enrichLocation(e.Text, model.FromEntity)
	}

	// "in/at/near <ProperNoun>" prepositional fallback
	for i, tok := range sent.Tokens {
		lemma := strings.ToLower(tok.Lemma)
		if lemma != "in" && lemma != "at" && lemma != "near" {
			continue
		}
		if i+1 >= len(sent.Tokens) {
			break
		}
		next := sent.Tokens[i+1]
		if !strings.HasPrefix(next.POS, "NNP") {
			continue
		}
		// Extend across a multi-token proper name ("Lower Shabelle")
		name := next.Word
		for j := i + 2; j < len(sent.Tokens) && strings.HasPrefix(sent.Tokens[j].POS, "NNP"); j++ {
			name += " " + sent.Tokens[j].Word
		}
		return f.enrichLocation(name, model.FromPattern)
	}

	// Last resort: the article's declared dateline location
	if ctx.DeclaredLocation != "" {
		return f.enrichLocation(ctx.DeclaredLocation, model.FromDeclaredsource)
	}

	return nil
}

// enrichLocation attaches gazetteer metadata when the name resolves.
func (f *SlotFiller) enrichLocation(name string, prov model.Provenance) *model.LocationMention {
	loc := &model.LocationMention{Text: name, Provenance: prov}
	if p, ok := f.gaz.LookupPlace(name); ok {
		loc.Type = p.Type
		loc.Country = p.Country
		loc.Region = p.Region
		if p.Type == "COUNTRY" {
			loc.Country = p.Name
		}
	} else if p, ok := f.gaz.FindPlaceIn(name); ok {
		loc.Type = p.Type
		loc.Country = p.Country
		loc.Region = p.Region
	} else if prov == model.FromPattern {
		loc.Type = "INFERRED"
	}
	return loc
}

// ---------------------------------------------------------------------------
// WHEN
// ---------------------------------------------------------------------------

func (f *SlotFiller) fillWhen(sent *model.AnnotatedSentence, ctx *model.ArticleContext) *model.TemporalMention {
	for _, e := range sent.Entities {
		if e.Type != "DATE" && e.Type != "TIME" {
			continue
		}
		return f.normalizeWhen(e.Text, false, ctx)
	}

	for _, tok := range sent.Tokens {
		if f.lex.IsTemporalWord(tok.Lemma) {
			return f.normalizeWhen(tok.Word, true, ctx)
		}
	}

	return nil
}

// normalizeWhen resolves text against the article's declared date. On
// normalization failure the raw text is kept and Normalized stays empty.
func (f *SlotFiller) normalizeWhen(text string, relative bool, ctx *model.ArticleContext) *model.TemporalMention {
	when := &model.TemporalMention{Text: text, Relative: relative}
	if iso, err := f.normalizer.Normalize(text, ctx.DeclaredDate); err == nil {
		when.Normalized = iso
	}
	return when
}

// ---------------------------------------------------------------------------
// HOW
// ---------------------------------------------------------------------------

func (f *SlotFiller) fillHow(trigger model.Trigger, sent *model.AnnotatedSentence) *model.MethodMention {
	lower := strings.ToLower(sent.Text)

	var weapons, tactics []string
	weaponCovered := make(map[string]bool)
	tacticCovered := make(map[string]bool)

	// Multi-word phrases win over their component tokens. Coverage is
	// tracked per category: "suicide bomb" the weapon must not hide
	// "suicide" the tactic.
	for _, phrase := range f.lex.WeaponPhrases() {
		if strings.Contains(lower, phrase) {
			weapons = append(weapons, phrase)
			for _, w := range strings.Fields(phrase) {
				weaponCovered[w] = true
			}
		}
	}
	for _, phrase := range f.lex.TacticPhrases() {
		if strings.Contains(lower, phrase) {
			tactics = append(tactics, phrase)
			for _, w := range strings.Fields(phrase) {
				tacticCovered[w] = true
			}
		}
	}

	for _, tok := range sent.Tokens {
		lemma := strings.ToLower(tok.Lemma)
		word := strings.ToLower(tok.Word)
		if f.lex.IsWeapon(lemma) && !weaponCovered[lemma] && !weaponCovered[word] {
			weapons = appendUnique(weapons, lemma)
		}
		if f.lex.IsTactic(lemma) && !tacticCovered[lemma] && !tacticCovered[word] {
			tactics = appendUnique(tactics, lemma)
		}
	}

	if len(weapons) > 0 || len(tactics) > 0 {
		all := append(append([]string{}, weapons...), tactics...)
		return &model.MethodMention{
			Weapons: weapons,
			Tactics: tactics,
			Text:    strings.Join(all, ", "),
		}
	}

	// Infer from the trigger itself when the sentence names no method
	switch {
	case strings.Contains(trigger.Lemma, "bomb"), strings.Contains(trigger.Lemma, "explo"), trigger.Lemma == "detonate":
		return &model.MethodMention{Weapons: []string{"explosives"}, Text: "explosives", Inferred: true}
	case strings.Contains(trigger.Lemma, "shoot"), trigger.Lemma == "gun":
		return &model.MethodMention{Weapons: []string{"firearms"}, Text: "firearms", Inferred: true}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Dependency helpers
// ---------------------------------------------------------------------------

// subjectOf finds the nsubj/nsubjpass/agent dependent of the trigger token.
func (f *SlotFiller) subjectOf(trigger model.Trigger, sent *model.AnnotatedSentence) (int, bool) {
	for _, dep := range sent.Dependencies {
		if dep.Governor != trigger.TokenIndex {
			continue
		}
		switch dep.Relation {
		case "nsubj", "nsubjpass", "agent":
			return dep.Dependent, true
		}
	}
	return 0, false
}

// objectOf finds the dobj/obj/nmod/obl dependent of the trigger token.
func (f *SlotFiller) objectOf(trigger model.Trigger, sent *model.AnnotatedSentence) (int, bool) {
	for _, dep := range sent.Dependencies {
		if dep.Governor != trigger.TokenIndex {
			continue
		}
		switch dep.Relation {
		case "dobj", "obj", "nmod", "obl":
			return dep.Dependent, true
		}
	}
	return 0, false
}

// phraseText expands a head token into its full noun phrase via
// det/amod/compound/nummod/nmod dependents and joins the surface forms.
func (f *SlotFiller) phraseText(headIdx int, sent *model.AnnotatedSentence) string {
	if headIdx < 0 || headIdx >= len(sent.Tokens) {
		return ""
	}

	indices := map[int]bool{headIdx: true}
	for _, dep := range sent.Dependencies {
		if dep.Governor != headIdx {
			continue
		}
		switch dep.Relation {
		case "det", "amod", "compound", "nummod", "nmod":
			if dep.Dependent >= 0 && dep.Dependent < len(sent.Tokens) {
				indices[dep.Dependent] = true
			}
		}
	}

	sorted := make([]int, 0, len(indices))
	for i := range indices {
		sorted = append(sorted, i)
	}
	sort.Ints(sorted)

	words := make([]string, 0, len(sorted))
	for _, i := range sorted {
		words = append(words, sent.Tokens[i].Word)
	}
	return strings.Join(words, " ")
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
