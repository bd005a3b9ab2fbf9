package generator

import (
	"strings"
	"testing"
)

func TestBuildPromptDeterministic(t *testing.T) {
	a := BuildPrompt(testItems())
	b := BuildPrompt(testItems())
	if a != b {
		t.Fatalf("prompt differs between runs")
	}
}

func TestBuildPromptContent(t *testing.T) {
	p := BuildPrompt(testItems())
	wants := []string{
		"1. **円安が進む**",
		"3. **Team \"Blue\" wins**",
		"Summary: none",
		"Steve (male)",
		"Nancy (female)",
		"B1",
		"500 to 650 words",
		"at most 30 words, 1 or 2 sentences",
		"Vocabulary Hook (2 turns)",
		"Deep Dive (3-4 turns)",
		"neutral", "curious", "surprised", "empathetic",
		`"original_title": "円安が進む"`,
		`"original_title": "Team \"Blue\" wins"`,
		`"category": "スポーツ"`,
		"Output JSON only.",
	}
	for _, w := range wants {
		if !strings.Contains(p.User, w) {
			t.Errorf("prompt missing %q", w)
		}
	}
	if strings.Count(p.User, `"original_title"`) != 3 {
		t.Errorf("expected one template entry per item")
	}
	if p.System == "" {
		t.Errorf("expected a system prompt")
	}
}
