package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"newscast/apperrors"
	"newscast/config"
	"newscast/types"
)

// Generator turns three curated news items into a two-speaker podcast script.
type Generator struct {
	llm      LLMClient
	validate bool
	log      zerolog.Logger
}

func NewGenerator(llm LLMClient, validate bool, log zerolog.Logger) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Generator{llm: llm, validate: validate, log: log}, nil
}

// Generate makes a single model call. Bad input is rejected before the call;
// model, parse and structure failures come back as *apperrors.GenerationError.
func (g *Generator) Generate(ctx context.Context, items []types.ScriptItem) (*types.PodcastScript, error) {
	if len(items) != config.ScriptItemCount {
		return nil, apperrors.NewValidationError("exactly %d news items are required, got %d", config.ScriptItemCount, len(items))
	}
	for i, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			return nil, apperrors.NewValidationError("news item %d has no title", i+1)
		}
	}

	start := time.Now()
	raw, err := g.llm.Complete(ctx, BuildPrompt(items))
	if err != nil {
		g.log.Error().Err(err).Msg("llm call failed")
		return nil, apperrors.NewGenerationError(apperrors.KindLLMCall, err)
	}
	g.log.Debug().Dur("took", time.Since(start)).Int("bytes", len(raw)).Msg("llm responded")

	script, err := Parse(Sanitize(raw))
	if err != nil {
		g.log.Warn().Err(err).Msg("llm response is not valid JSON")
		return nil, apperrors.NewGenerationError(apperrors.KindParse, err)
	}

	if g.validate {
		if err := ValidateScript(script); err != nil {
			g.log.Warn().Err(err).Msg("generated script failed validation")
			return nil, apperrors.NewGenerationError(apperrors.KindInvalidStructure, err)
		}
	}

	g.log.Info().Int("words", script.WordCount()).Int("segments", len(script.News)).Msg("script generated")
	return script, nil
}
