package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"newscast/config"
	"newscast/types"
)

const systemPrompt = "You are a podcast script writer for English learners at CEFR B1 level. " +
	"You reply with a single JSON object and nothing else."

// BuildPrompt renders the generation prompt for exactly the given items.
// The output depends only on items, so equal input yields byte-identical prompts.
func BuildPrompt(items []types.ScriptItem) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a dialogue podcast script in English for B1 learners, about 4 to 5 minutes long (%d to %d words), using the following %d Japanese news stories.\n\n",
		config.TargetWordsMin, config.TargetWordsMax, len(items))

	b.WriteString("## News topics\n")
	for i, item := range items {
		summary := item.Summary
		if strings.TrimSpace(summary) == "" {
			summary = "none"
		}
		fmt.Fprintf(&b, "%d. **%s**\n   - Category: %s\n   - Article URL: %s\n   - Summary: %s\n",
			i+1, item.Title, item.Category, item.Link, summary)
	}

	b.WriteString(`
## Speakers
- **Steve (male)**: the explainer. Calm and knowledgeable. Speaks slowly and clearly.
- **Nancy (female)**: the listener. Bright and curious. Asks the questions the audience would ask.

## Dialogue flow for each news story (required)
Every news story must contain these four sections:

### 1. Introduction (2 turns)
- Introduce the headline, rephrased in plain B1 English.

### 2. Vocabulary Hook (2 turns)
- Pick one key word from the story.
- Nancy asks "What does [word] mean?"
- Steve explains it briefly.

### 3. Deep Dive (3-4 turns)
- Explain the background and the details.
- Say why this news matters.

### 4. Discussion (2 turns)
- Discuss how the news affects Japan or daily life.
- Both speakers share an opinion.

## Constraints
- Use B1 level English (high school vocabulary).
`)
	fmt.Fprintf(&b, "- Each utterance: at most %d words, 1 or 2 sentences.\n", config.MaxUtteranceWords)
	fmt.Fprintf(&b, "- Total length: %d to %d words.\n", config.TargetWordsMin, config.TargetWordsMax)
	b.WriteString(`- Keep the conversation natural.

## Emotion tags
Tag every utterance with exactly one emotion:
- neutral: normal explanation
- curious: interest or a question
- surprised: surprise
- empathetic: sympathy

## Output format (JSON)
`)
	b.WriteString(jsonTemplate(items))
	b.WriteString("\nOutput JSON only. Do not add any other text.\n")

	return Prompt{System: systemPrompt, User: b.String()}
}

func jsonTemplate(items []types.ScriptItem) string {
	var b strings.Builder
	b.WriteString(`{
  "metadata": {
    "duration_est": <minutes>,
    "total_words": <word count>,
    "topics": ["topic 1", "topic 2", "topic 3"]
  },
  "intro": [
    {"speaker": "Steve", "text": "...", "emotion": "neutral"},
    {"speaker": "Nancy", "text": "...", "emotion": "neutral"}
  ],
  "news": [
`)
	for i, item := range items {
		fmt.Fprintf(&b, `    {
      "category": %s,
      "original_title": %s,
      "sections": {
        "introduction": [
          {"speaker": "Steve", "text": "...", "emotion": "neutral"},
          {"speaker": "Nancy", "text": "...", "emotion": "curious"}
        ],
        "vocabulary_hook": [
          {"speaker": "Nancy", "text": "What does [word] mean?", "emotion": "curious"},
          {"speaker": "Steve", "text": "...", "emotion": "neutral"}
        ],
        "deep_dive": [
          {"speaker": "Steve", "text": "...", "emotion": "neutral"},
          {"speaker": "Nancy", "text": "...", "emotion": "surprised"},
          {"speaker": "Steve", "text": "...", "emotion": "neutral"}
        ],
        "discussion": [
          {"speaker": "Nancy", "text": "...", "emotion": "curious"},
          {"speaker": "Steve", "text": "...", "emotion": "empathetic"}
        ]
      }
    }`, quote(item.Category), quote(item.Title))
		if i < len(items)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(`  ],
  "outro": [
    {"speaker": "Steve", "text": "...", "emotion": "neutral"},
    {"speaker": "Nancy", "text": "...", "emotion": "neutral"}
  ]
}
`)
	return b.String()
}

// quote renders s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
