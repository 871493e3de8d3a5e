package refine

import "github.com/bkmekonnen/vigil/internal/model"

// ConfidenceFilter drops events below the minimum reliability threshold.
type ConfidenceFilter struct {
	min float64
}

// NewConfidenceFilter creates a confidence filter.
func NewConfidenceFilter(min float64) *ConfidenceFilter {
	return &ConfidenceFilter{min: min}
}

// Filter returns the events meeting the minimum confidence.
func (c *ConfidenceFilter) Filter(events []model.Event) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Confidence >= c.min {
			out = append(out, e)
		}
	}
	return out
}
