// Package curation implements the operator dashboard: filtered listings, batch
// status transitions and confirmed deletes, plus per-session selection state.
package curation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"newscast/apperrors"
	"newscast/store"
	"newscast/types"
)

// Dashboard is the stateless curation service shared by every session.
type Dashboard struct {
	store store.DocumentStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewDashboard returns a Dashboard over s
func NewDashboard(s store.DocumentStore, log zerolog.Logger) *Dashboard {
	return &Dashboard{store: s, log: log, now: time.Now}
}

// ListDocuments returns documents newest first. "all" bypasses either filter.
func (d *Dashboard) ListDocuments(ctx context.Context, statusFilter, categoryFilter string) ([]types.NewsDocument, error) {
	status, err := types.ParseStatusFilter(statusFilter)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid status filter: %v", err)
	}
	category, err := types.ParseCategoryFilter(categoryFilter)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid category filter: %v", err)
	}

	docs, err := d.store.List(ctx, store.Query{Status: status, Category: category})
	if err != nil {
		d.log.Error().Err(err).Str("status", statusFilter).Str("category", categoryFilter).Msg("❌ List failed")
		return nil, err
	}
	return docs, nil
}

// ApplyStatusTransition moves every id to target in one atomic batch and returns the
// timestamp it stamped. An empty target means selected.
func (d *Dashboard) ApplyStatusTransition(ctx context.Context, ids []string, target types.Status) (time.Time, error) {
	if target == "" {
		target = types.StatusSelected
	}
	if !target.Valid() {
		return time.Time{}, apperrors.NewValidationError("unknown status %q", target)
	}
	if target == types.StatusUnread {
		return time.Time{}, apperrors.NewValidationError("documents cannot be moved back to unread")
	}
	if len(ids) == 0 {
		return time.Time{}, apperrors.NewValidationError("no documents selected")
	}

	at := d.now()
	if err := d.store.UpdateStatus(ctx, ids, target, at); err != nil {
		d.log.Error().Err(err).Int("count", len(ids)).Str("status", string(target)).Msg("❌ Status update failed")
		return time.Time{}, err
	}

	d.log.Info().Int("count", len(ids)).Str("status", string(target)).Msg("✅ Status updated")
	return at, nil
}

// DeleteReport lists which ids were removed and which failed.
type DeleteReport struct {
	Deleted []string         `json:"deleted"`
	Failed  map[string]error `json:"-"`
}

// FailedIDs returns the failed ids in sorted order
func (r DeleteReport) FailedIDs() []string {
	out := make([]string, 0, len(r.Failed))
	for id := range r.Failed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DeleteDocuments removes ids after explicit confirmation. Deletes run concurrently
// and are awaited together; any failure fails the whole call, and documents already
// removed stay removed.
func (d *Dashboard) DeleteDocuments(ctx context.Context, ids []string, confirmed bool) (DeleteReport, error) {
	report := DeleteReport{Failed: map[string]error{}}
	if !confirmed {
		return report, apperrors.NewValidationError("delete requires explicit confirmation")
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return report, apperrors.NewValidationError("no documents selected")
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	for _, id := range ids {
		g.Go(func() error {
			err := d.store.Delete(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed[id] = err
				return err
			}
			report.Deleted = append(report.Deleted, id)
			return nil
		})
	}
	err := g.Wait()
	sort.Strings(report.Deleted)

	if err != nil {
		d.log.Error().Err(err).
			Int("deleted", len(report.Deleted)).
			Int("failed", len(report.Failed)).
			Msg("❌ Batch delete partially failed")
		return report, err
	}

	d.log.Info().Int("count", len(report.Deleted)).Msg("🗑️  Documents deleted")
	return report, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
