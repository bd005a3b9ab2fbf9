package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"newscast/curation"
	"newscast/types"
)

type fakeAPI struct {
	view    curation.View
	err     error
	deletes int
	filters [2]string
	toggled []string
}

func (f *fakeAPI) result() (curation.View, error) {
	if f.err != nil {
		return curation.View{}, f.err
	}
	return f.view, nil
}

func (f *fakeAPI) CreateSession(context.Context) (curation.View, error) { return f.result() }
func (f *fakeAPI) Session(context.Context, string, bool) (curation.View, error) {
	return f.result()
}
func (f *fakeAPI) SetFilters(_ context.Context, _, status, category string) (curation.View, error) {
	f.filters = [2]string{status, category}
	if f.err == nil {
		f.view.StatusFilter, f.view.CategoryFilter = status, category
	}
	return f.result()
}
func (f *fakeAPI) Toggle(_ context.Context, _, docID string) (curation.View, error) {
	f.toggled = append(f.toggled, docID)
	if f.err == nil {
		f.view.Selected = append(f.view.Selected, docID)
	}
	return f.result()
}
func (f *fakeAPI) SelectAll(context.Context, string) (curation.View, error) { return f.result() }
func (f *fakeAPI) Clear(context.Context, string) (curation.View, error) {
	if f.err == nil {
		f.view.Selected = nil
	}
	return f.result()
}
func (f *fakeAPI) Apply(context.Context, string) (curation.View, int, error) {
	v, err := f.result()
	return v, len(f.view.Selected), err
}
func (f *fakeAPI) Delete(context.Context, string) (curation.View, []string, error) {
	f.deletes++
	v, err := f.result()
	return v, nil, err
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs any resulting command synchronously.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(key(k))
	m = next.(Model)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			if _, ok := msg.(viewMsg); ok {
				next, _ = m.Update(msg)
				m = next.(Model)
			}
		}
	}
	return m
}

func startedModel(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := NewModel(api)
	next, _ := m.Update(m.Init()())
	return next.(Model)
}

func sampleView() curation.View {
	return curation.View{
		ID:             "s1",
		StatusFilter:   "unread",
		CategoryFilter: "all",
		Visible: []types.NewsDocument{
			{ID: "a", Title: "first", Category: types.CategoryMain, Status: types.StatusUnread},
			{ID: "b", Title: "second", Category: types.CategoryIT, Status: types.StatusUnread},
		},
	}
}

func TestCursorAndToggle(t *testing.T) {
	api := &fakeAPI{view: sampleView()}
	m := startedModel(t, api)
	if !m.ready {
		t.Fatalf("model should be ready after session creation")
	}

	m = press(t, m, "j")
	m = press(t, m, "j")
	if m.cursor != 1 {
		t.Fatalf("cursor should stop at last row, got %d", m.cursor)
	}
	m = press(t, m, " ")
	if len(api.toggled) != 1 || api.toggled[0] != "b" {
		t.Fatalf("expected toggle of b, got %v", api.toggled)
	}
	if !m.selectedSet()["b"] {
		t.Fatalf("view should reflect selection")
	}
	m = press(t, m, "k")
	m = press(t, m, "k")
	if m.cursor != 0 {
		t.Fatalf("cursor should stop at 0, got %d", m.cursor)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	api := &fakeAPI{view: sampleView()}
	api.view.Selected = []string{"a"}
	m := startedModel(t, api)

	m = press(t, m, "D")
	if !m.confirming || api.deletes != 0 {
		t.Fatalf("D must only ask for confirmation")
	}
	if !strings.Contains(m.View(), "[y/n]") {
		t.Fatalf("confirmation prompt not rendered")
	}
	m = press(t, m, "n")
	if m.confirming || api.deletes != 0 {
		t.Fatalf("n must cancel without deleting")
	}

	m = press(t, m, "D")
	m = press(t, m, "y")
	if api.deletes != 1 {
		t.Fatalf("y must delete once, got %d", api.deletes)
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	api := &fakeAPI{view: sampleView()}
	m := startedModel(t, api)
	m = press(t, m, "D")
	if m.confirming || m.err == nil {
		t.Fatalf("expected error instead of confirmation")
	}
}

func TestErrorKeepsLocalList(t *testing.T) {
	api := &fakeAPI{view: sampleView()}
	m := startedModel(t, api)

	api.err = errors.New("server returned 500: failed to load news")
	m = press(t, m, "r")
	if m.err == nil {
		t.Fatalf("expected error to be recorded")
	}
	if len(m.view.Visible) != 2 {
		t.Fatalf("list must not change on error, got %d rows", len(m.view.Visible))
	}
	if !strings.Contains(m.View(), "failed to load news") {
		t.Fatalf("error should be rendered")
	}
}

func TestFilterCycling(t *testing.T) {
	api := &fakeAPI{view: sampleView()}
	m := startedModel(t, api)

	m = press(t, m, "f")
	if api.filters != [2]string{"selected", "all"} {
		t.Fatalf("unexpected filters %v", api.filters)
	}
	m = press(t, m, "g")
	if api.filters != [2]string{"selected", "main"} {
		t.Fatalf("unexpected filters %v", api.filters)
	}
	if m.view.CategoryFilter != "main" {
		t.Fatalf("view should carry new filter, got %q", m.view.CategoryFilter)
	}
}

func TestNextIn(t *testing.T) {
	if got := nextIn(StatusFilters, "all"); got != "unread" {
		t.Fatalf("expected wrap to unread, got %s", got)
	}
	if got := nextIn(StatusFilters, "bogus"); got != "unread" {
		t.Fatalf("unknown value should restart, got %s", got)
	}
}
