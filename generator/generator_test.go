package generator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"newscast/apperrors"
	"newscast/types"
)

type fakeLLM struct {
	reply  string
	err    error
	calls  int
	prompt Prompt
}

func (f *fakeLLM) Complete(_ context.Context, p Prompt) (string, error) {
	f.calls++
	f.prompt = p
	return f.reply, f.err
}

func testItems() []types.ScriptItem {
	return []types.ScriptItem{
		{Title: "円安が進む", Category: "経済", Summary: "The yen fell again.", Link: "https://example.com/1"},
		{Title: "新しい駅が開業", Category: "国内", Summary: "", Link: "https://example.com/2"},
		{Title: "Team \"Blue\" wins", Category: "スポーツ", Summary: "A close game.", Link: "https://example.com/3"},
	}
}

func line(s types.Speaker, e types.Emotion) types.Utterance {
	return types.Utterance{Speaker: s, Text: "This is a short and simple line.", Emotion: e}
}

func validScript() *types.PodcastScript {
	steve, nancy := types.SpeakerSteve, types.SpeakerNancy
	seg := func(title string) types.NewsSegment {
		return types.NewsSegment{
			Category:      "経済",
			OriginalTitle: title,
			Sections: types.Sections{
				Introduction:   []types.Utterance{line(steve, types.EmotionNeutral), line(nancy, types.EmotionCurious)},
				VocabularyHook: []types.Utterance{line(nancy, types.EmotionCurious), line(steve, types.EmotionNeutral)},
				DeepDive:       []types.Utterance{line(steve, types.EmotionNeutral), line(nancy, types.EmotionSurprised), line(steve, types.EmotionNeutral)},
				Discussion:     []types.Utterance{line(nancy, types.EmotionCurious), line(steve, types.EmotionEmpathetic)},
			},
		}
	}
	return &types.PodcastScript{
		Metadata: types.ScriptMetadata{DurationEst: 4.5, TotalWords: 560, Topics: []string{"yen", "station", "sports"}},
		Intro:    []types.Utterance{line(steve, types.EmotionNeutral), line(nancy, types.EmotionNeutral)},
		News:     []types.NewsSegment{seg("a"), seg("b"), seg("c")},
		Outro:    []types.Utterance{line(steve, types.EmotionNeutral), line(nancy, types.EmotionNeutral)},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func newTestGenerator(t *testing.T, llm LLMClient, validate bool) *Generator {
	t.Helper()
	g, err := NewGenerator(llm, validate, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestGenerateFencedResponse(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n" + mustJSON(t, validScript()) + "\n```"}
	g := newTestGenerator(t, llm, true)

	script, err := g.Generate(context.Background(), testItems())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if llm.calls != 1 {
		t.Fatalf("expected one llm call, got %d", llm.calls)
	}
	if len(script.News) != 3 || len(script.Intro) != 2 || len(script.Outro) != 2 {
		t.Fatalf("unexpected shape: %+v", script)
	}
	if script.Metadata.Topics[0] != "yen" {
		t.Fatalf("metadata not parsed: %+v", script.Metadata)
	}
}

func TestGenerateNonJSONResponse(t *testing.T) {
	llm := &fakeLLM{reply: "Sorry, I can't help with that."}
	g := newTestGenerator(t, llm, true)

	_, err := g.Generate(context.Background(), testItems())
	var gen *apperrors.GenerationError
	if !errors.As(err, &gen) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if gen.Kind != apperrors.KindParse {
		t.Fatalf("expected parse kind, got %q", gen.Kind)
	}
	if gen.Message == "" {
		t.Fatalf("expected underlying message")
	}
	if llm.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", llm.calls)
	}
}

func TestGenerateRejectsBadInputWithoutCalling(t *testing.T) {
	cases := []struct {
		name  string
		items []types.ScriptItem
	}{
		{"none", nil},
		{"two", testItems()[:2]},
		{"four", append(testItems(), types.ScriptItem{Title: "x", Category: "IT"})},
		{"blank title", []types.ScriptItem{{Title: "a"}, {Title: "  "}, {Title: "c"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			llm := &fakeLLM{reply: mustJSON(t, validScript())}
			g := newTestGenerator(t, llm, true)
			_, err := g.Generate(context.Background(), tc.items)
			if !apperrors.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if llm.calls != 0 {
				t.Fatalf("llm must not be called, got %d calls", llm.calls)
			}
		})
	}
}

func TestGenerateLLMFailure(t *testing.T) {
	llm := &fakeLLM{err: errors.New("quota exceeded")}
	g := newTestGenerator(t, llm, true)

	_, err := g.Generate(context.Background(), testItems())
	var gen *apperrors.GenerationError
	if !errors.As(err, &gen) || gen.Kind != apperrors.KindLLMCall {
		t.Fatalf("expected llm_call error, got %v", err)
	}
	if !strings.Contains(gen.Message, "quota exceeded") {
		t.Fatalf("message should carry cause, got %q", gen.Message)
	}
}

func TestGenerateInvalidStructure(t *testing.T) {
	bad := validScript()
	bad.News[1].Sections.DeepDive = bad.News[1].Sections.DeepDive[:1]
	reply := mustJSON(t, bad)

	g := newTestGenerator(t, &fakeLLM{reply: reply}, true)
	_, err := g.Generate(context.Background(), testItems())
	var gen *apperrors.GenerationError
	if !errors.As(err, &gen) || gen.Kind != apperrors.KindInvalidStructure {
		t.Fatalf("expected invalid_structure error, got %v", err)
	}

	lenient := newTestGenerator(t, &fakeLLM{reply: reply}, false)
	if _, err := lenient.Generate(context.Background(), testItems()); err != nil {
		t.Fatalf("validation off should accept parsed script: %v", err)
	}
}

func TestNewGeneratorRequiresLLM(t *testing.T) {
	if _, err := NewGenerator(nil, true, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for nil llm")
	}
}
