package generator

import (
	"encoding/json"
	"errors"
	"strings"

	"newscast/types"
)

// Sanitize strips markdown code fences the model sometimes wraps around its JSON.
// Applying it twice gives the same result as applying it once.
func Sanitize(raw string) string {
	s := strings.ReplaceAll(raw, "```json\n", "")
	s = strings.ReplaceAll(s, "```\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Parse decodes sanitized model output. Only the top-level shape is checked here.
func Parse(clean string) (*types.PodcastScript, error) {
	if !strings.HasPrefix(clean, "{") {
		return nil, errors.New("response is not a JSON object")
	}
	var script types.PodcastScript
	if err := json.Unmarshal([]byte(clean), &script); err != nil {
		return nil, err
	}
	return &script, nil
}
