package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 20 * time.Second

type viewCall func(ctx context.Context) (viewMsg, error)

// run wraps a blocking API call into a tea command.
func run(call viewCall) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		msg, err := call(ctx)
		if err != nil {
			return viewMsg{Err: err}
		}
		return msg
	}
}

func createSession(api SessionAPI) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, err := api.CreateSession(ctx)
		return viewMsg{View: v, Note: "Session started"}, err
	})
}

func refreshSession(api SessionAPI, id string) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, err := api.Session(ctx, id, true)
		return viewMsg{View: v, Note: fmt.Sprintf("Loaded %d documents", len(v.Visible))}, err
	})
}

func setFilters(api SessionAPI, id, status, category string) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, err := api.SetFilters(ctx, id, status, category)
		return viewMsg{View: v, Note: fmt.Sprintf("Filter: status=%s category=%s", status, category)}, err
	})
}

func toggleDocument(api SessionAPI, id, docID string) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, err := api.Toggle(ctx, id, docID)
		return viewMsg{View: v}, err
	})
}

func selectAll(api SessionAPI, id string) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, err := api.SelectAll(ctx, id)
		return viewMsg{View: v, Note: fmt.Sprintf("Selected %d", len(v.Selected))}, err
	})
}

func clearSelection(api SessionAPI, id string) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, err := api.Clear(ctx, id)
		return viewMsg{View: v, Note: "Selection cleared"}, err
	})
}

func applySelected(api SessionAPI, id string) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, n, err := api.Apply(ctx, id)
		return viewMsg{View: v, Note: fmt.Sprintf("Marked %d as selected", n)}, err
	})
}

func deleteSelected(api SessionAPI, id string) tea.Cmd {
	return run(func(ctx context.Context) (viewMsg, error) {
		v, deleted, err := api.Delete(ctx, id)
		return viewMsg{View: v, Note: fmt.Sprintf("Deleted %d", len(deleted))}, err
	})
}
