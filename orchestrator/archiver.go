package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"newscast/apperrors"
	"newscast/events"
	"newscast/store"
	"newscast/types"
)

// Archiver archives documents once a downstream consumer reports it used their script.
type Archiver struct {
	Store store.DocumentStore
	Now   func() time.Time
	Log   zerolog.Logger
}

// Handle archives the event's documents in one batch. Documents that are gone or
// already archived are skipped, so redelivered events are harmless.
func (a *Archiver) Handle(ctx context.Context, ev *events.ScriptConsumed) error {
	var pending []string
	for _, id := range ev.DocumentIDs {
		doc, err := a.Store.Get(ctx, id)
		if apperrors.IsNotFoundError(err) {
			a.Log.Warn().Str("id", id).Msg("Consumed document no longer exists")
			continue
		}
		if err != nil {
			return err
		}
		if doc.Status == types.StatusArchived {
			continue
		}
		pending = append(pending, id)
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}
	if err := a.Store.UpdateStatus(ctx, pending, types.StatusArchived, now); err != nil {
		return err
	}
	a.Log.Info().Str("date", ev.Date).Int("archived", len(pending)).Msg("📦 Consumed news archived")
	return nil
}

// MessageHandler adapts Handle for the Kafka consumer.
func (a *Archiver) MessageHandler() events.MessageHandler {
	return &events.TypedMessageHandler[events.ScriptConsumed]{
		Validate:   func(ev *events.ScriptConsumed) bool { return len(ev.DocumentIDs) > 0 },
		Process:    a.Handle,
		AlwaysMark: true,
	}
}
