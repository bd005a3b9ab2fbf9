package curation

import (
	"context"
	"sort"
	"sync"
	"time"

	"newscast/apperrors"
	"newscast/types"
)

// Default filters for a new session.
const (
	DefaultStatusFilter   = "unread"
	DefaultCategoryFilter = types.FilterAll
)

// Session is one operator's dashboard state. The selection set belongs to the
// session alone and is never shared.
type Session struct {
	ID string

	dash *Dashboard

	// listMu allows at most one listing query in flight
	listMu sync.Mutex

	mu             sync.Mutex
	statusFilter   string
	categoryFilter string
	visible        []types.NewsDocument
	selection      map[string]struct{}
	lastUsed       time.Time
}

// View is a copy of a session's state for rendering.
type View struct {
	ID             string               `json:"session_id"`
	StatusFilter   string               `json:"status_filter"`
	CategoryFilter string               `json:"category_filter"`
	Visible        []types.NewsDocument `json:"visible"`
	Selected       []string             `json:"selected"`
}

func newSession(id string, dash *Dashboard, now time.Time) *Session {
	return &Session{
		ID:             id,
		dash:           dash,
		statusFilter:   DefaultStatusFilter,
		categoryFilter: DefaultCategoryFilter,
		selection:      make(map[string]struct{}),
		lastUsed:       now,
	}
}

// Refresh reloads the visible list with the current filters.
func (s *Session) Refresh(ctx context.Context) error {
	return s.load(ctx, func() (string, string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.statusFilter, s.categoryFilter
	})
}

// SetFilters switches filters and reloads. On failure the old filters and list stay.
func (s *Session) SetFilters(ctx context.Context, status, category string) error {
	if status == "" {
		status = types.FilterAll
	}
	if category == "" {
		category = types.FilterAll
	}
	return s.load(ctx, func() (string, string) { return status, category })
}

// load resolves the filters only once it holds listMu, so a refresh queued behind
// SetFilters lists with the new filters.
func (s *Session) load(ctx context.Context, filters func() (string, string)) error {
	s.listMu.Lock()
	defer s.listMu.Unlock()

	status, category := filters()
	docs, err := s.dash.ListDocuments(ctx, status, category)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusFilter = status
	s.categoryFilter = category
	s.visible = docs
	return nil
}

// Toggle adds or removes id from the selection and reports whether it is now selected.
func (s *Session) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
		return false
	}
	s.selection[id] = struct{}{}
	return true
}

// SelectAllVisible replaces the selection with every visible document.
func (s *Session) SelectAllVisible() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = make(map[string]struct{}, len(s.visible))
	for _, d := range s.visible {
		s.selection[d.ID] = struct{}{}
	}
	return len(s.selection)
}

// Clear empties the selection.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[string]struct{})
}

// Selected returns the selected ids, sorted.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Session) selectedLocked() []string {
	out := make([]string, 0, len(s.selection))
	for id := range s.selection {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ApplySelected transitions the selection to target. On success documents that no
// longer match the status filter leave the visible list and the selection is cleared.
func (s *Session) ApplySelected(ctx context.Context, target types.Status) (int, error) {
	ids := s.Selected()
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("no documents selected")
	}

	at, err := s.dash.ApplyStatusTransition(ctx, ids, target)
	if err != nil {
		return 0, err
	}
	if target == "" {
		target = types.StatusSelected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		changed[id] = struct{}{}
	}
	kept := s.visible[:0:0]
	for _, d := range s.visible {
		if _, ok := changed[d.ID]; ok {
			stamp := at
			d.Status = target
			d.StatusUpdatedAt = &stamp
			if !matchesStatus(s.statusFilter, d.Status) {
				continue
			}
		}
		kept = append(kept, d)
	}
	s.visible = kept
	s.selection = make(map[string]struct{})
	return len(ids), nil
}

// DeleteSelected deletes the selection after confirmation. Local state only changes
// when every delete succeeded.
func (s *Session) DeleteSelected(ctx context.Context, confirmed bool) (DeleteReport, error) {
	ids := s.Selected()
	if len(ids) == 0 {
		return DeleteReport{Failed: map[string]error{}}, apperrors.NewValidationError("no documents selected")
	}

	report, err := s.dash.DeleteDocuments(ctx, ids, confirmed)
	if err != nil {
		return report, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gone := make(map[string]struct{}, len(report.Deleted))
	for _, id := range report.Deleted {
		gone[id] = struct{}{}
	}
	kept := s.visible[:0:0]
	for _, d := range s.visible {
		if _, ok := gone[d.ID]; !ok {
			kept = append(kept, d)
		}
	}
	s.visible = kept
	s.selection = make(map[string]struct{})
	return report, nil
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]types.NewsDocument, len(s.visible))
	copy(visible, s.visible)
	return View{
		ID:             s.ID,
		StatusFilter:   s.statusFilter,
		CategoryFilter: s.categoryFilter,
		Visible:        visible,
		Selected:       s.selectedLocked(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed)
}

func matchesStatus(filter string, st types.Status) bool {
	f, err := types.ParseStatusFilter(filter)
	if err != nil {
		return false
	}
	return f == nil || *f == st
}
