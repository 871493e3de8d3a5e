package extract

import (
	"testing"

	"github.com/bkmekonnen/vigil/internal/lexicon"
	"github.com/bkmekonnen/vigil/internal/model"
)

// sentence builds an AnnotatedSentence from (word, lemma, pos) triples
func sentence(idx int, triples ...[3]string) model.AnnotatedSentence {
	sent := model.AnnotatedSentence{Index: idx}
	var words []string
	for i, t := range triples {
		sent.Tokens = append(sent.Tokens, model.Token{
			Word: t[0], Lemma: t[1], POS: t[2], Index: i,
		})
		words = append(words, t[0])
	}
	sent.Text = joinWords(words)
	return sent
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func TestDetectVerbAndNounTriggers(t *testing.T) {
	d := NewTriggerDetector(lexicon.Default())

	sent := sentence(0,
		[3]string{"Militants", "militant", "NNS"},
		[3]string{"killed", "kill", "VBD"},
		[3]string{"villagers", "villager", "NNS"},
		[3]string{"in", "in", "IN"},
		[3]string{"an", "a", "DT"},
		[3]string{"ambush", "ambush", "NN"},
	)

	triggers := d.Detect(&sent)
	if len(triggers) != 2 {
		t.Fatalf("expected 2 triggers, got %d: %+v", len(triggers), triggers)
	}
	if triggers[0].Lemma != "kill" || triggers[0].Kind != model.TriggerVerb {
		t.Errorf("first trigger: %+v", triggers[0])
	}
	if triggers[1].Lemma != "ambush" || triggers[1].Kind != model.TriggerNoun {
		t.Errorf("second trigger: %+v", triggers[1])
	}
}

func TestDetectGatesHomographsByPOS(t *testing.T) {
	d := NewTriggerDetector(lexicon.Default())

	// "fire" as a noun is not a shooting trigger
	sent := sentence(0,
		[3]string{"The", "the", "DT"},
		[3]string{"fire", "fire", "NN"},
		[3]string{"spread", "spread", "VBD"},
	)
	if got := d.Detect(&sent); len(got) != 0 {
		t.Errorf("noun fire should not trigger, got %+v", got)
	}

	// "fire" as a verb is
	sent2 := sentence(0,
		[3]string{"Soldiers", "soldier", "NNS"},
		[3]string{"fired", "fire", "VBD"},
		[3]string{"at", "at", "IN"},
		[3]string{"protesters", "protester", "NNS"},
	)
	got := d.Detect(&sent2)
	if len(got) != 1 || got[0].Kind != model.TriggerVerb {
		t.Errorf("verb fire should trigger, got %+v", got)
	}
}

func TestDetectEmptyOnPeacefulSentence(t *testing.T) {
	d := NewTriggerDetector(lexicon.Default())
	sent := sentence(0,
		[3]string{"The", "the", "DT"},
		[3]string{"president", "president", "NN"},
		[3]string{"visited", "visit", "VBD"},
		[3]string{"Nairobi", "nairobi", "NNP"},
	)
	if got := d.Detect(&sent); len(got) != 0 {
		t.Errorf("expected no triggers, got %+v", got)
	}
	if score := d.ScoreSentence(&sent); score != 0.0 {
		t.Errorf("expected zero score, got %f", score)
	}
}

func TestScoreSentenceBounded(t *testing.T) {
	d := NewTriggerDetector(lexicon.Default())
	sent := sentence(0,
		[3]string{"Gunmen", "gunman", "NNS"},
		[3]string{"attacked", "attack", "VBD"},
		[3]string{"and", "and", "CC"},
		[3]string{"killed", "kill", "VBD"},
		[3]string{"villagers", "villager", "NNS"},
	)
	score := d.ScoreSentence(&sent)
	if score <= 0.0 || score > 1.0 {
		t.Errorf("score out of range: %f", score)
	}
}
