package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bkmekonnen/vigil/internal/model"
)

// CasualtyParser extracts death and injury counts from sentence text.
// Counts outside [min,max] are discarded silently; age expressions like
// "22-year-old" never populate either field.
type CasualtyParser struct {
	min int
	max int
}

// NewCasualtyParser creates a parser with the given sanity bounds.
func NewCasualtyParser(min, max int) *CasualtyParser {
	return &CasualtyParser{min: min, max: max}
}

var ageRe = regexp.MustCompile(`\d+[-\s]year[-\s]old`)

// qualifier covers "at least 15", "more than 40", "some 12"
const qualifier = `(?:at least |more than |some |about |around |over |up to )?`

var deathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:killing|killed)\s+` + qualifier + `(\d+)`),
	regexp.MustCompile(`left\s+` + qualifier + `(\d+)[a-z\s,]*?\bdead`),
	regexp.MustCompile(`(\d+)\s+(?:people|persons|civilians|soldiers|villagers|others)?\s*(?:were\s+|was\s+)?(?:killed|dead|died)`),
	regexp.MustCompile(`(?:death toll of|deaths:?)\s*` + qualifier + `(\d+)`),
}

var injuryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:injuring|injured|wounding|wounded)\s+` + qualifier + `(\d+)`),
	regexp.MustCompile(`(\d+)\s+(?:people|persons|civilians|soldiers|others)?\s*(?:were\s+|was\s+)?(?:injured|wounded|hurt)`),
}

// victimNounRe recovers the victim noun next to a death count ("15
// civilians") so a victim mention can be synthesized when the dependency
// parse offers no object.
var victimNounRe = regexp.MustCompile(qualifier + `\d+\s+(people|persons|civilians|soldiers|villagers|residents|worshippers|students|children|women|men)`)

// Parse extracts bounded casualty counts from text.
func (p *CasualtyParser) Parse(text string) model.Casualties {
	c, _ := p.ParseDetail(text)
	return c
}

// ParseDetail additionally returns the victim noun adjacent to the death
// count, or "" when none was captured.
func (p *CasualtyParser) ParseDetail(text string) (model.Casualties, string) {
	lower := strings.ToLower(text)
	// Ages look like counts; mask them before matching
	lower = ageRe.ReplaceAllString(lower, " ")

	var out model.Casualties

	for _, re := range deathPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if n, ok := p.bounded(m[1]); ok {
			out.Deaths = &n
			break
		}
	}

	for _, re := range injuryPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if n, ok := p.bounded(m[1]); ok {
			out.Injuries = &n
			break
		}
	}

	victimNoun := ""
	if out.Deaths != nil {
		if m := victimNounRe.FindStringSubmatch(lower); m != nil {
			victimNoun = m[1]
		}
	}

	return out, victimNoun
}

// bounded parses and range-checks a numeric candidate.
func (p *CasualtyParser) bounded(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if n < p.min || n > p.max {
		return 0, false
	}
	return n, true
}
