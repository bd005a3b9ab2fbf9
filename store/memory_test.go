package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"newscast/apperrors"
	"newscast/types"
)

// seed inserts docs with strictly increasing created_at so ordering is deterministic.
func seed(t *testing.T, m *Memory, statuses ...types.Status) []types.NewsDocument {
	t.Helper()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	var out []types.NewsDocument
	for i, st := range statuses {
		d := types.NewsDocument{
			Category:  types.CategoryDomestic,
			Title:     fmt.Sprintf("headline %d", i),
			Link:      fmt.Sprintf("https://news.example.jp/%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Status:    st,
		}
		ok, err := m.Insert(context.Background(), d)
		if err != nil || !ok {
			t.Fatalf("seed insert %d: ok=%v err=%v", i, ok, err)
		}
		d.ID = types.DocumentID(d.Link)
		out = append(out, d)
	}
	return out
}

func TestMemoryListUnreadNewestFirst(t *testing.T) {
	m := NewMemory()
	u, s, a := types.StatusUnread, types.StatusSelected, types.StatusArchived
	seed(t, m, u, s, u, a, u, s, u, u)

	unread := types.StatusUnread
	docs, err := m.List(context.Background(), Query{Status: &unread})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(docs) != 5 {
		t.Fatalf("got %d unread docs; want 5", len(docs))
	}
	for i, d := range docs {
		if d.Status != types.StatusUnread {
			t.Fatalf("doc %s has status %s in unread listing", d.ID, d.Status)
		}
		if i > 0 && d.CreatedAt.After(docs[i-1].CreatedAt) {
			t.Fatalf("listing not newest first at %d", i)
		}
	}

	all, err := m.List(context.Background(), Query{})
	if err != nil || len(all) != 8 {
		t.Fatalf("List all = %d docs, err %v; want 8", len(all), err)
	}
}

func TestMemoryInsertSkipsExistingLink(t *testing.T) {
	m := NewMemory()
	doc := types.NewsDocument{Category: types.CategoryIT, Title: "t", Link: "https://x.test/a"}

	ok, err := m.Insert(context.Background(), doc)
	if err != nil || !ok {
		t.Fatalf("first insert ok=%v err=%v", ok, err)
	}
	doc.Title = "changed"
	ok, err = m.Insert(context.Background(), doc)
	if err != nil || ok {
		t.Fatalf("second insert ok=%v err=%v; want skipped", ok, err)
	}

	got, err := m.Get(context.Background(), types.DocumentID(doc.Link))
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Title != "t" || got.Status != types.StatusUnread || got.CreatedAt.IsZero() {
		t.Fatalf("stored doc = %+v", got)
	}
	if _, err := m.Insert(context.Background(), types.NewsDocument{Category: types.CategoryIT, Title: "t"}); !apperrors.IsValidationError(err) {
		t.Fatalf("missing link should be a validation error, got %v", err)
	}
}

func TestMemoryUpdateStatusTouchesOnlyBatch(t *testing.T) {
	m := NewMemory()
	u := types.StatusUnread
	docs := seed(t, m, u, u, u, u, u, types.StatusSelected)

	batch := []string{docs[0].ID, docs[2].ID, docs[4].ID}
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if err := m.UpdateStatus(context.Background(), batch, types.StatusSelected, at); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	selected := types.StatusSelected
	got, _ := m.List(context.Background(), Query{Status: &selected})
	want := map[string]bool{docs[0].ID: true, docs[2].ID: true, docs[4].ID: true, docs[5].ID: true}
	if len(got) != len(want) {
		t.Fatalf("selected count = %d; want %d", len(got), len(want))
	}
	for _, d := range got {
		if !want[d.ID] {
			t.Fatalf("unexpected selected doc %s", d.ID)
		}
	}
	for _, id := range batch {
		d, _ := m.Get(context.Background(), id)
		if d.StatusUpdatedAt == nil || !d.StatusUpdatedAt.Equal(at) {
			t.Fatalf("doc %s missing transition timestamp", id)
		}
	}
}

func TestMemoryUpdateStatusIsAllOrNothing(t *testing.T) {
	cases := []struct {
		name    string
		extra   func(docs []types.NewsDocument) string
		checkFn func(error) bool
	}{
		{"missing id", func([]types.NewsDocument) string { return "nope" }, apperrors.IsNotFoundError},
		{"illegal transition", func(docs []types.NewsDocument) string { return docs[2].ID }, apperrors.IsValidationError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewMemory()
			docs := seed(t, m, types.StatusUnread, types.StatusUnread, types.StatusArchived)

			err := m.UpdateStatus(context.Background(), []string{docs[0].ID, docs[1].ID, c.extra(docs)}, types.StatusSelected, time.Now())
			if !c.checkFn(err) {
				t.Fatalf("unexpected error %v", err)
			}
			for _, d := range docs[:2] {
				got, _ := m.Get(context.Background(), d.ID)
				if got.Status != types.StatusUnread || got.StatusUpdatedAt != nil {
					t.Fatalf("doc %s was modified by a failed batch: %+v", d.ID, got)
				}
			}
		})
	}
}

func TestMemoryDeleteMissing(t *testing.T) {
	m := NewMemory()
	docs := seed(t, m, types.StatusSelected)
	if err := m.Delete(context.Background(), docs[0].ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := m.Delete(context.Background(), docs[0].ID); !apperrors.IsNotFoundError(err) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
	if exists, _ := m.ExistsByLink(context.Background(), docs[0].Link); exists {
		t.Fatalf("link index should be cleared after delete")
	}
}
