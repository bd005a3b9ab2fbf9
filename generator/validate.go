package generator

import (
	"fmt"
	"strings"

	"newscast/config"
	"newscast/types"
)

// ScriptValidationError lists every structural problem found in a script.
type ScriptValidationError struct {
	Problems []string
}

func (e *ScriptValidationError) Error() string {
	return fmt.Sprintf("%d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

type turnRange struct{ min, max int }

var (
	bookendTurns      = turnRange{2, 2}
	introductionTurns = turnRange{2, 2}
	vocabularyTurns   = turnRange{2, 2}
	deepDiveTurns     = turnRange{3, 4}
	discussionTurns   = turnRange{2, 2}
)

// ValidateScript checks the script's shape: slot count, turn counts per section,
// and each utterance's speaker, emotion and length. It returns nil or a
// *ScriptValidationError carrying all violations.
func ValidateScript(s *types.PodcastScript) error {
	if s == nil {
		return &ScriptValidationError{Problems: []string{"script is empty"}}
	}
	v := &scriptValidator{}

	if len(s.News) != config.ScriptItemCount {
		v.addf("news: want %d entries, got %d", config.ScriptItemCount, len(s.News))
	}
	v.turns("intro", s.Intro, bookendTurns)
	for i, n := range s.News {
		prefix := fmt.Sprintf("news[%d]", i)
		if strings.TrimSpace(n.OriginalTitle) == "" {
			v.addf("%s.original_title: empty", prefix)
		}
		v.turns(prefix+".introduction", n.Sections.Introduction, introductionTurns)
		v.turns(prefix+".vocabulary_hook", n.Sections.VocabularyHook, vocabularyTurns)
		v.turns(prefix+".deep_dive", n.Sections.DeepDive, deepDiveTurns)
		v.turns(prefix+".discussion", n.Sections.Discussion, discussionTurns)
	}
	v.turns("outro", s.Outro, bookendTurns)

	if len(v.problems) == 0 {
		return nil
	}
	return &ScriptValidationError{Problems: v.problems}
}

type scriptValidator struct {
	problems []string
}

func (v *scriptValidator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *scriptValidator) turns(section string, us []types.Utterance, want turnRange) {
	if n := len(us); n < want.min || n > want.max {
		if want.min == want.max {
			v.addf("%s: want %d turns, got %d", section, want.min, n)
		} else {
			v.addf("%s: want %d-%d turns, got %d", section, want.min, want.max, n)
		}
	}
	for i, u := range us {
		where := fmt.Sprintf("%s[%d]", section, i)
		if u.Speaker.Role() == types.RoleUnknown {
			v.addf("%s: unknown speaker %q", where, u.Speaker)
		}
		if !u.Emotion.Valid() {
			v.addf("%s: unknown emotion %q", where, u.Emotion)
		}
		words := len(strings.Fields(u.Text))
		switch {
		case words == 0:
			v.addf("%s: empty text", where)
		case words > config.MaxUtteranceWords:
			v.addf("%s: %d words exceeds %d", where, words, config.MaxUtteranceWords)
		}
	}
}
