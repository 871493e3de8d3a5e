package model

import "strings"

// EventRecord is the fixed-column flattened projection of an Event used for
// downstream serialization (CSV/JSON). Column set follows the annotation
// template of the original corpus.
type EventRecord struct {
	ArticleID     string `json:"article_id"`
	EventID       string `json:"event_id"`
	TriggerWord   string `json:"trigger_word"`
	TriggerLemma  string `json:"trigger_lemma"`
	SentenceIndex int    `json:"sentence_index"`

	WhoText string `json:"who_text"`
	WhoType string `json:"who_type"`

	WhatType string `json:"what_type"`

	WhomText string `json:"whom_text"`
	WhomType string `json:"whom_type"`
	Deaths   *int   `json:"deaths,omitempty"`
	Injuries *int   `json:"injuries,omitempty"`

	WhereText    string `json:"where_text"`
	WhereType    string `json:"where_type"`
	WhereCountry string `json:"where_country"`

	WhenText       string `json:"when_text"`
	WhenNormalized string `json:"when_normalized"`

	HowWeapons string `json:"how_weapons"`
	HowTactics string `json:"how_tactics"`

	TaxonomyL1 string `json:"taxonomy_l1"`
	TaxonomyL2 string `json:"taxonomy_l2"`
	TaxonomyL3 string `json:"taxonomy_l3"`

	Confidence   float64 `json:"confidence"`
	Completeness float64 `json:"completeness"`

	Reciprocal bool   `json:"reciprocal"`
	PairID     string `json:"pair_id,omitempty"`

	FlaggedForReview bool   `json:"flagged_for_review"`
	Notes            string `json:"notes,omitempty"`
}

// RecordColumns is the CSV header, in column order.
var RecordColumns = []string{
	"Event_ID", "Article_ID", "Trigger_Word", "Trigger_Lemma", "Sentence_Index",
	"Actor_Text", "Actor_Type",
	"Event_Type",
	"Victim_Text", "Victim_Type", "Deaths", "Injuries",
	"Location_Text", "Location_Type", "Location_Country",
	"Date_Text", "Date_Normalized",
	"Weapons", "Tactics",
	"Taxonomy_L1", "Taxonomy_L2", "Taxonomy_L3",
	"Confidence", "Completeness",
	"Reciprocal", "Pair_ID",
	"Flagged_for_Review", "Notes",
}

// FlattenEvent projects an Event into an EventRecord.
func FlattenEvent(articleID, eventID string, e Event) EventRecord {
	rec := EventRecord{
		ArticleID:     articleID,
		EventID:       eventID,
		TriggerWord:   e.Trigger.Word,
		TriggerLemma:  e.Trigger.Lemma,
		SentenceIndex: e.Trigger.SentenceIndex,
		WhatType:      e.What,
		Confidence:    e.Confidence,
		Completeness:  e.Completeness,
		Reciprocal:    e.Reciprocal,
		PairID:        e.PairID,
	}

	if e.Who != nil {
		rec.WhoText = e.Who.Text
		rec.WhoType = string(e.Who.Type)
	} else {
		rec.WhoText = "Unknown"
		rec.WhoType = string(ActorUnknown)
	}
	if e.Whom != nil {
		rec.WhomText = e.Whom.Text
		rec.WhomType = string(e.Whom.Type)
		rec.Deaths = e.Whom.Casualties.Deaths
		rec.Injuries = e.Whom.Casualties.Injuries
	} else {
		rec.WhomText = "Not specified"
		rec.WhomType = string(ActorUnknown)
	}
	if e.Where != nil {
		rec.WhereText = e.Where.Text
		rec.WhereType = e.Where.Type
		rec.WhereCountry = e.Where.Country
	}
	if e.When != nil {
		rec.WhenText = e.When.Text
		rec.WhenNormalized = e.When.Normalized
	}
	if e.How != nil {
		rec.HowWeapons = strings.Join(e.How.Weapons, ", ")
		rec.HowTactics = strings.Join(e.How.Tactics, ", ")
	}
	if e.Taxonomy != nil {
		rec.TaxonomyL1 = e.Taxonomy.L1
		rec.TaxonomyL2 = e.Taxonomy.L2
		rec.TaxonomyL3 = e.Taxonomy.L3
	}

	rec.FlaggedForReview = e.Confidence < 0.5
	rec.Notes = recordNotes(e)
	return rec
}

// recordNotes summarizes extraction gaps for manual review.
func recordNotes(e Event) string {
	var notes []string
	if e.Confidence < 0.5 {
		notes = append(notes, "Low confidence extraction")
	}
	var missing []string
	if e.Who == nil {
		missing = append(missing, "actor")
	}
	if e.Whom == nil {
		missing = append(missing, "victim")
	}
	if e.Where == nil {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		notes = append(notes, "Missing: "+strings.Join(missing, ", "))
	}
	return strings.Join(notes, "; ")
}
