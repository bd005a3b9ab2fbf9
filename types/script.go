package types

import "strings"

// Speaker is the name the model puts on an utterance.
type Speaker string

// Role is the abstract speaker slot: A explains, B asks.
type Role string

const (
	SpeakerSteve Speaker = "Steve"
	SpeakerNancy Speaker = "Nancy"

	RoleA       Role = "A"
	RoleB       Role = "B"
	RoleUnknown Role = ""
)

// Role maps the named host onto the A/B slot. Unknown names return RoleUnknown.
func (s Speaker) Role() Role {
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case "steve", "a":
		return RoleA
	case "nancy", "b":
		return RoleB
	default:
		return RoleUnknown
	}
}

// Emotion tags an utterance for downstream voice synthesis.
type Emotion string

const (
	EmotionNeutral    Emotion = "neutral"
	EmotionCurious    Emotion = "curious"
	EmotionSurprised  Emotion = "surprised"
	EmotionEmpathetic Emotion = "empathetic"
)

// Emotions is the closed emotion vocabulary.
var Emotions = []Emotion{EmotionNeutral, EmotionCurious, EmotionSurprised, EmotionEmpathetic}

// Valid reports whether e is in the closed vocabulary.
func (e Emotion) Valid() bool {
	for _, v := range Emotions {
		if e == v {
			return true
		}
	}
	return false
}

// Utterance is one speaker turn.
type Utterance struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Emotion Emotion `json:"emotion"`
}

// ScriptMetadata summarizes the generated episode.
type ScriptMetadata struct {
	DurationEst float64  `json:"duration_est"`
	TotalWords  int      `json:"total_words"`
	Topics      []string `json:"topics"`
}

// Sections groups one news item's dialogue into its four fixed phases.
type Sections struct {
	Introduction   []Utterance `json:"introduction"`
	VocabularyHook []Utterance `json:"vocabulary_hook"`
	DeepDive       []Utterance `json:"deep_dive"`
	Discussion     []Utterance `json:"discussion"`
}

// NewsSegment is the script portion for one of the three news slots.
type NewsSegment struct {
	Category      string   `json:"category"`
	OriginalTitle string   `json:"original_title"`
	Sections      Sections `json:"sections"`
}

// PodcastScript is the structured two-speaker episode returned by the generator.
type PodcastScript struct {
	Metadata ScriptMetadata `json:"metadata"`
	Intro    []Utterance    `json:"intro"`
	News     []NewsSegment  `json:"news"`
	Outro    []Utterance    `json:"outro"`
}

// Utterances returns every turn in playback order.
func (p *PodcastScript) Utterances() []Utterance {
	out := make([]Utterance, 0, len(p.Intro)+len(p.Outro)+len(p.News)*9)
	out = append(out, p.Intro...)
	for _, n := range p.News {
		out = append(out, n.Sections.Introduction...)
		out = append(out, n.Sections.VocabularyHook...)
		out = append(out, n.Sections.DeepDive...)
		out = append(out, n.Sections.Discussion...)
	}
	return append(out, p.Outro...)
}

// WordCount counts whitespace-separated words across every utterance.
func (p *PodcastScript) WordCount() int {
	total := 0
	for _, u := range p.Utterances() {
		total += len(strings.Fields(u.Text))
	}
	return total
}
