// Package store persists news documents. Every implementation keeps link unique,
// lists newest first and applies status batches all-or-nothing.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"newscast/apperrors"
	"newscast/config"
	"newscast/types"
)

// Query narrows a listing. Nil pointers bypass the predicate; Limit <= 0 means no limit.
type Query struct {
	Status   *types.Status
	Category *types.Category
	Limit    int
}

// DocumentStore is the flat news collection shared by the collector, the dashboard
// and the daily job.
type DocumentStore interface {
	List(ctx context.Context, q Query) ([]types.NewsDocument, error)
	Get(ctx context.Context, id string) (*types.NewsDocument, error)
	ExistsByLink(ctx context.Context, link string) (bool, error)
	// Insert stores doc unless its link already exists. It reports whether a row was written.
	Insert(ctx context.Context, doc types.NewsDocument) (bool, error)
	// UpdateStatus moves every id to target atomically, stamping at.
	UpdateStatus(ctx context.Context, ids []string, target types.Status, at time.Time) error
	// Delete removes one document. Missing ids return a NotFoundError.
	Delete(ctx context.Context, id string) error
}

// New opens the store selected by cfg.Driver.
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (DocumentStore, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn().Msg("⚠️  Using in-memory document store; data is lost on restart")
		return NewMemory(), nil
	case "postgres", "":
		return NewPostgres(cfg, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// prepareInsert fills the store-assigned fields of a new document.
func prepareInsert(doc types.NewsDocument, now time.Time) (types.NewsDocument, error) {
	if doc.Link == "" {
		return doc, apperrors.NewValidationError("news link is required")
	}
	if doc.Title == "" {
		return doc, apperrors.NewValidationError("news title is required")
	}
	if !doc.Category.Valid() {
		return doc, apperrors.NewValidationError("unknown category %q", doc.Category)
	}
	if doc.ID == "" {
		doc.ID = types.DocumentID(doc.Link)
	}
	if doc.Status == "" {
		doc.Status = types.StatusUnread
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.StatusUpdatedAt = nil
	return doc, nil
}

// uniqueIDs drops duplicates while keeping the caller's order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validateTransition(ids []string, target types.Status) error {
	if len(ids) == 0 {
		return apperrors.NewValidationError("no document ids given")
	}
	if !target.Valid() {
		return apperrors.NewValidationError("unknown status %q", target)
	}
	return nil
}
