package dates

import (
	"errors"
	"testing"
	"time"
)

func fixedNormalizer(t time.Time) *Normalizer {
	n := New()
	n.now = func() time.Time { return t }
	return n
}

func TestNormalizeWeekdayResolvesBackwards(t *testing.T) {
	n := New()

	// Reference is Monday 2023-06-19; Friday is the preceding one
	tests := []struct {
		text string
		want string
	}{
		{"Friday", "2023-06-16"},
		{"friday morning", "2023-06-16"},
		{"Saturday", "2023-06-17"},
		{"Sunday", "2023-06-18"},
		{"Monday", "2023-06-19"}, // same weekday means the reference day itself
	}
	for _, tt := range tests {
		got, err := n.Normalize(tt.text, "2023-06-19")
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeRelativeExpressions(t *testing.T) {
	n := New()

	tests := []struct {
		text string
		want string
	}{
		{"yesterday", "2023-06-18"},
		{"today", "2023-06-19"},
		{"overnight", "2023-06-19"},
		{"last week", "2023-06-12"},
	}
	for _, tt := range tests {
		got, err := n.Normalize(tt.text, "2023-06-19")
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeAbsoluteDates(t *testing.T) {
	n := New()

	tests := []struct {
		text string
		want string
	}{
		{"June 15, 2023", "2023-06-15"},
		{"15 March 2023", "2023-03-15"},
		{"2023-01-02", "2023-01-02"},
	}
	for _, tt := range tests {
		got, err := n.Normalize(tt.text, "2023-06-19")
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeFailsOnVagueText(t *testing.T) {
	n := New()

	for _, text := range []string{"", "the harvest season", "recently"} {
		if _, err := n.Normalize(text, "2023-06-19"); !errors.Is(err, ErrCannotNormalize) {
			t.Errorf("Normalize(%q): expected ErrCannotNormalize, got %v", text, err)
		}
	}
}

func TestNormalizeEmptyReferenceUsesNow(t *testing.T) {
	n := fixedNormalizer(time.Date(2023, 6, 19, 12, 0, 0, 0, time.UTC))

	got, err := n.Normalize("yesterday", "")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "2023-06-18" {
		t.Errorf("got %s, want 2023-06-18", got)
	}
}

func TestNormalizeUnparseableReferenceFallsBackToNow(t *testing.T) {
	n := fixedNormalizer(time.Date(2023, 6, 19, 12, 0, 0, 0, time.UTC))

	got, err := n.Normalize("Friday", "sometime in June")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "2023-06-16" {
		t.Errorf("got %s, want 2023-06-16", got)
	}
}
