// Package taxonomy assigns each event a three-level category label.
// Classification is a deterministic decision tree: the same event always
// maps to the same complete (L1, L2, L3) triple, with defined defaults at
// every level so no input ever fails to classify.
package taxonomy

import (
	"strings"

	"github.com/bkmekonnen/vigil/internal/model"
)

// Level-1 categories
const (
	PoliticalViolence = "Political Violence"
	StateViolence     = "State Violence Against Civilians"
	CommunalViolence  = "Communal Violence"
	CriminalViolence  = "Criminal Violence"
)

// Classifier holds the keyword tables driving the decision tree.
type Classifier struct{}

// NewClassifier creates a taxonomy classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// features are the lowercase signals one classification reads.
type features struct {
	trigger      string
	actorType    model.ActorType
	actorText    string
	victimText   string
	weapons      string
	tactics      []string
	sentenceText string
}

// Classify assigns the complete taxonomy triple for an event. sentenceText
// is the trigger sentence, used for contextual keyword checks.
func (c *Classifier) Classify(event *model.Event, sentenceText string) model.Taxonomy {
	f := features{
		trigger:      strings.ToLower(event.Trigger.Lemma),
		actorType:    model.ActorUnknown,
		sentenceText: strings.ToLower(sentenceText),
	}
	if event.Who != nil {
		f.actorType = event.Who.Type
		f.actorText = strings.ToLower(event.Who.Text)
	}
	if event.Whom != nil {
		f.victimText = strings.ToLower(event.Whom.Text)
	}
	if event.How != nil {
		f.weapons = strings.ToLower(strings.Join(event.How.Weapons, " "))
		for _, t := range event.How.Tactics {
			f.tactics = append(f.tactics, strings.ToLower(t))
		}
	}

	l1 := c.level1(f)
	l2 := c.level2(l1, f)
	l3 := c.level3(l2, f)
	return model.Taxonomy{L1: l1, L2: l2, L3: l3}
}

var (
	stateActorWords     = []string{"state", "police", "military", "soldier", "officer", "security force", "army"}
	criminalActorWords  = []string{"gang", "robber", "bandit", "criminal", "gunman", "gunmen"}
	terrorismGroupWords = []string{"shabaab", "boko", "haram", "al-qaeda", "isis", "aqim", "jnim"}
	communalActorWords  = []string{"community", "communities", "ethnic", "tribal", "clan", "hema", "lendu", "hutu", "tutsi"}
	electionActorWords  = []string{"protest", "election", "opposition", "demonstrator"}
	civilianVictimWords = []string{"civilian", "people", "resident", "villager", "child", "woman", "protester", "demonstrator", "worshipper", "student"}
)

// level1 derives the high-level category from the actor/victim pair.
func (c *Classifier) level1(f features) string {
	if f.actorType == model.ActorState || containsAny(f.actorText, stateActorWords) {
		if civilianVictim(f.victimText) {
			return StateViolence
		}
	}

	if f.actorType == model.ActorCriminal || containsAny(f.actorText, criminalActorWords) {
		return CriminalViolence
	}

	if f.actorType == model.ActorPolitical || containsAny(f.actorText, terrorismGroupWords) {
		return PoliticalViolence
	}

	if f.actorType == model.ActorCommunal || containsAny(f.actorText, communalActorWords) {
		return CommunalViolence
	}

	if containsAny(f.actorText, electionActorWords) {
		return PoliticalViolence
	}

	// Unknown armed actors default to political violence
	return PoliticalViolence
}

// level2 refines within the L1 category using lexical signals, falling back
// to a fixed per-L1 default.
func (c *Classifier) level2(l1 string, f features) string {
	switch l1 {
	case PoliticalViolence:
		if containsAny(f.actorText, terrorismGroupWords) || hasTactic(f.tactics, "suicide") {
			return "Terrorism"
		}
		election := []string{"election", "protest", "opposition", "demonstrator", "voting", "poll"}
		if containsAny(f.actorText, election) || containsAny(f.sentenceText, election) {
			return "Election Violence"
		}
		return "Insurgency"

	case StateViolence:
		protest := []string{"protest", "demonstrator", "rally", "opposition supporter"}
		if containsAny(f.victimText, protest) || containsAny(f.sentenceText, protest) {
			return "State Repression of Protests"
		}
		return "Extrajudicial Killings"

	case CommunalViolence:
		if containsAny(f.actorText, communalActorWords) {
			// Religious and resource signals override the ethnic default
			if containsAny(f.actorText, []string{"muslim", "christian", "sectarian", "religious"}) {
				return "Religious Violence"
			}
			if containsAny(f.actorText, []string{"land", "water", "grazing", "cattle"}) {
				return "Resource Conflict"
			}
		}
		return "Ethnic/Tribal Conflict"

	case CriminalViolence:
		robbery := []string{"rob", "robbery", "bank", "stole", "loot", "robbed"}
		if containsAny(f.trigger, robbery) || containsAny(f.actorText, robbery) || containsAny(f.sentenceText, robbery) {
			return "Armed Robbery/Banditry"
		}
		kidnap := []string{"kidnap", "abduct", "hostage"}
		if containsAny(f.trigger, kidnap) || containsAny(f.sentenceText, kidnap) {
			return "Kidnapping for Ransom"
		}
		return "Gang Violence"
	}

	return "Unknown"
}

// level3 maps tactic and weapon combinations to the specific label, with a
// defined default per L2 so the triple is always complete.
func (c *Classifier) level3(l2 string, f features) string {
	switch l2 {
	case "Terrorism":
		if hasTactic(f.tactics, "suicide") {
			if strings.Contains(f.weapons, "car") || strings.Contains(f.weapons, "vehicle") {
				return "Car Bombing"
			}
			return "Suicide Bombing"
		}
		if strings.Contains(f.trigger, "kidnap") || strings.Contains(f.trigger, "abduct") {
			return "Kidnapping"
		}
		if strings.Contains(f.trigger, "assassin") {
			return "Assassination"
		}
		return "Armed Assault"

	case "Election Violence":
		if strings.Contains(f.actorText, "protest") || strings.Contains(f.actorText, "demonstr") || strings.Contains(f.sentenceText, "protest") {
			return "Protest Violence"
		}
		if strings.Contains(f.actorText, "poll") || strings.Contains(f.sentenceText, "poll") || strings.Contains(f.sentenceText, "voting") {
			return "Poll Violence"
		}
		return "Campaign Violence"

	case "Insurgency":
		if strings.Contains(f.trigger, "ambush") {
			return "Ambush"
		}
		if strings.Contains(f.trigger, "raid") {
			return "Raid"
		}
		return "Armed Clash"

	case "Extrajudicial Killings":
		if strings.Contains(f.actorText, "police") {
			return "Police Shooting"
		}
		if strings.Contains(f.actorText, "military") || strings.Contains(f.actorText, "soldier") {
			return "Military Execution"
		}
		return "Targeted Killing"

	case "State Repression of Protests":
		if strings.Contains(f.trigger, "disperse") {
			return "Dispersal Violence"
		}
		if strings.Contains(f.actorText, "crackdown") || strings.Contains(f.sentenceText, "crackdown") {
			return "Crackdown"
		}
		return "Police Violence"

	case "Ethnic/Tribal Conflict":
		if strings.Contains(f.trigger, "massacre") {
			return "Massacre"
		}
		if strings.Contains(f.trigger, "raid") || strings.Contains(f.trigger, "attack") {
			return "Raid"
		}
		return "Armed Clash"

	case "Religious Violence":
		if strings.Contains(f.trigger, "riot") {
			return "Religious Riot"
		}
		return "Sectarian Attack"

	case "Resource Conflict":
		if strings.Contains(f.actorText, "water") {
			return "Water Conflict Violence"
		}
		return "Land Dispute Violence"

	case "Armed Robbery/Banditry":
		if strings.Contains(f.actorText, "bank") || strings.Contains(f.trigger, "bank") || strings.Contains(f.sentenceText, "bank") {
			return "Bank Robbery"
		}
		if strings.Contains(f.actorText, "highway") || strings.Contains(f.sentenceText, "highway") {
			return "Highway Robbery"
		}
		return "Armed Robbery/Banditry"

	case "Kidnapping for Ransom":
		if strings.Contains(f.trigger, "hostage") || strings.Contains(f.actorText, "hostage") || strings.Contains(f.sentenceText, "hostage") {
			return "Hostage Taking"
		}
		return "Abduction"

	case "Gang Violence":
		if strings.Contains(f.trigger, "shoot") {
			return "Gang Shooting"
		}
		return "Turf War"
	}

	// Unmatched combinations resolve to the L2 label, never fail
	return l2
}

func civilianVictim(victimText string) bool {
	return containsAny(victimText, civilianVictimWords)
}

func hasTactic(tactics []string, want string) bool {
	for _, t := range tactics {
		if strings.Contains(t, want) {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
