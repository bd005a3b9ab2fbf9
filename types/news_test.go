package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusUnread, StatusSelected, true},
		{StatusSelected, StatusArchived, true},
		{StatusUnread, StatusArchived, true},
		{StatusSelected, StatusUnread, false},
		{StatusArchived, StatusUnread, false},
		{StatusArchived, StatusSelected, false},
		{StatusSelected, StatusSelected, false},
		{Status("bogus"), StatusSelected, false},
		{StatusUnread, Status("bogus"), false},
	}
	for _, c := range cases {
		t.Run(string(c.from)+"->"+string(c.to), func(t *testing.T) {
			if got := c.from.CanTransitionTo(c.to); got != c.want {
				t.Fatalf("CanTransitionTo = %v; want %v", got, c.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		err  bool
	}{
		{"main", CategoryMain, false},
		{"IT", CategoryIT, false},
		{"国際", CategoryInternational, false},
		{"エンタメ", CategoryEntertainment, false},
		{" sports ", CategorySports, false},
		{"weather", "", true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseCategory(c.in)
			if c.err {
				if err == nil {
					t.Fatalf("expected error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) error: %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("ParseCategory(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestParseFilters(t *testing.T) {
	st, err := ParseStatusFilter("all")
	if err != nil || st != nil {
		t.Fatalf("status filter all = %v, %v; want nil, nil", st, err)
	}
	st, err = ParseStatusFilter("selected")
	if err != nil || st == nil || *st != StatusSelected {
		t.Fatalf("status filter selected = %v, %v", st, err)
	}
	if _, err := ParseStatusFilter("deleted"); err == nil {
		t.Fatalf("expected error for unknown status filter")
	}
	cat, err := ParseCategoryFilter("ALL")
	if err != nil || cat != nil {
		t.Fatalf("category filter ALL = %v, %v; want nil, nil", cat, err)
	}
}

func TestSpeakerRole(t *testing.T) {
	if SpeakerSteve.Role() != RoleA || Speaker("a").Role() != RoleA {
		t.Fatalf("Steve/A should map to role A")
	}
	if SpeakerNancy.Role() != RoleB || Speaker("B").Role() != RoleB {
		t.Fatalf("Nancy/B should map to role B")
	}
	if Speaker("Bob").Role() != RoleUnknown {
		t.Fatalf("unknown speaker should map to RoleUnknown")
	}
}

func TestPodcastScriptJSONRoundTrip(t *testing.T) {
	u := func(s Speaker, text string, e Emotion) Utterance { return Utterance{Speaker: s, Text: text, Emotion: e} }
	in := PodcastScript{
		Metadata: ScriptMetadata{DurationEst: 4.5, TotalWords: 560, Topics: []string{"a", "b", "c"}},
		Intro:    []Utterance{u(SpeakerSteve, "Welcome back.", EmotionNeutral), u(SpeakerNancy, "Hi!", EmotionCurious)},
		News: []NewsSegment{{
			Category:      "経済",
			OriginalTitle: "円安が進む",
			Sections: Sections{
				Introduction:   []Utterance{u(SpeakerSteve, "The yen is weak.", EmotionNeutral)},
				VocabularyHook: []Utterance{u(SpeakerNancy, "What does weak mean?", EmotionCurious)},
				DeepDive:       []Utterance{u(SpeakerSteve, "Prices go up.", EmotionNeutral)},
				Discussion:     []Utterance{u(SpeakerNancy, "That is hard.", EmotionEmpathetic)},
			},
		}},
		Outro: []Utterance{u(SpeakerSteve, "Bye.", EmotionNeutral)},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out PodcastScript
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
	if got := in.WordCount(); got != 18 {
		t.Fatalf("WordCount = %d; want 18", got)
	}
}
