// Package dates normalizes date expressions from news articles to ISO form.
//
// Relative expressions ("Friday", "yesterday", "last week") resolve against
// a reference date, normally the article's declared publication date. News
// articles report past events, so weekday references resolve backwards; a
// bare weekday naming the reference date's own weekday means the reference
// date itself, not the week before.
package dates

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoLayout = "2006-01-02"

// ErrCannotNormalize is returned when no rule or parser resolves the text.
var ErrCannotNormalize = errors.New("dates: cannot normalize expression")

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Normalizer converts date text to ISO dates. The zero value is not usable;
// construct with New.
type Normalizer struct {
	now func() time.Time // injectable for tests
}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// Normalize resolves dateText to an ISO date (YYYY-MM-DD). referenceDate is
// the article's declared date, in any common format; when empty or
// unparseable the current date is used as reference.
func (n *Normalizer) Normalize(dateText, referenceDate string) (string, error) {
	text := strings.TrimSpace(dateText)
	if text == "" {
		return "", ErrCannotNormalize
	}

	ref := n.now()
	if referenceDate != "" {
		if t, err := dateparse.ParseAny(referenceDate); err == nil {
			ref = t
		}
	}

	if iso, ok := resolveRelative(strings.ToLower(text), ref); ok {
		return iso, nil
	}

	if t, err := dateparse.ParseAny(text); err == nil {
		return t.Format(isoLayout), nil
	}

	return "", ErrCannotNormalize
}

// resolveRelative handles weekday names and common relative expressions.
func resolveRelative(lower string, ref time.Time) (string, bool) {
	for name, day := range weekdays {
		if !strings.Contains(lower, name) {
			continue
		}
		// "Friday morning" still counts as a bare weekday reference;
		// "Friday, March 15" should fall through to the absolute parser.
		if len(strings.Fields(lower)) > 2 || strings.ContainsAny(lower, "0123456789") {
			continue
		}
		daysBack := int(ref.Weekday()-day+7) % 7
		return ref.AddDate(0, 0, -daysBack).Format(isoLayout), true
	}

	switch {
	case strings.Contains(lower, "yesterday"):
		return ref.AddDate(0, 0, -1).Format(isoLayout), true
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"),
		strings.Contains(lower, "overnight"), strings.Contains(lower, "this morning"):
		return ref.Format(isoLayout), true
	case strings.Contains(lower, "last week"):
		return ref.AddDate(0, 0, -7).Format(isoLayout), true
	case strings.Contains(lower, "last month"):
		return ref.AddDate(0, 0, -30).Format(isoLayout), true
	}

	return "", false
}
