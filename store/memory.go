package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"newscast/apperrors"
	"newscast/types"
)

// Memory is a process-local DocumentStore used for tests and single-node demos.
type Memory struct {
	mu     sync.RWMutex
	docs   map[string]types.NewsDocument
	byLink map[string]string
	now    func() time.Time
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[string]types.NewsDocument),
		byLink: make(map[string]string),
		now:    time.Now,
	}
}

func (m *Memory) List(ctx context.Context, q Query) ([]types.NewsDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewStoreError("list news", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.NewsDocument, 0, len(m.docs))
	for _, d := range m.docs {
		if q.Status != nil && d.Status != *q.Status {
			continue
		}
		if q.Category != nil && d.Category != *q.Category {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, id string) (*types.NewsDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.docs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("news %s not found", id)
	}
	return &d, nil
}

func (m *Memory) ExistsByLink(ctx context.Context, link string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byLink[link]
	return ok, nil
}

func (m *Memory) Insert(ctx context.Context, doc types.NewsDocument) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, apperrors.NewStoreError("insert news", err)
	}
	doc, err := prepareInsert(doc, m.now())
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byLink[doc.Link]; ok {
		return false, nil
	}
	if _, ok := m.docs[doc.ID]; ok {
		return false, nil
	}
	m.docs[doc.ID] = doc
	m.byLink[doc.Link] = doc.ID
	return true, nil
}

func (m *Memory) UpdateStatus(ctx context.Context, ids []string, target types.Status, at time.Time) error {
	if err := validateTransition(ids, target); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewStoreError("update status", err)
	}
	ids = uniqueIDs(ids)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check the whole batch before writing anything.
	for _, id := range ids {
		d, ok := m.docs[id]
		if !ok {
			return apperrors.NewNotFoundError("news %s not found", id)
		}
		if !d.Status.CanTransitionTo(target) {
			return apperrors.NewValidationError("news %s cannot move from %s to %s", id, d.Status, target)
		}
	}
	for _, id := range ids {
		d := m.docs[id]
		stamp := at
		d.Status = target
		d.StatusUpdatedAt = &stamp
		m.docs[id] = d
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStoreError("delete news", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.docs[id]
	if !ok {
		return apperrors.NewNotFoundError("news %s not found", id)
	}
	delete(m.docs, id)
	delete(m.byLink, d.Link)
	return nil
}

// Len returns the number of stored documents
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
