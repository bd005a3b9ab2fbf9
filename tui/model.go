package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"newscast/curation"
	"newscast/types"
)

// StatusFilters is the cycle order for the status filter key.
var StatusFilters = []string{"unread", "selected", "archived", types.FilterAll}

// CategoryFilters is the cycle order for the category filter key.
var CategoryFilters = func() []string {
	out := []string{types.FilterAll}
	for _, c := range types.Categories {
		out = append(out, string(c))
	}
	return out
}()

const maxLogs = 8

// Model is the console state. View is only replaced by a successful API response.
type Model struct {
	api SessionAPI

	view       curation.View
	ready      bool
	cursor     int
	confirming bool
	busy       bool
	err        error
	logs       []string
	now        func() time.Time
}

func NewModel(api SessionAPI) Model {
	return Model{api: api, now: time.Now}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return createSession(m.api)
}

func (m Model) selectedSet() map[string]bool {
	out := make(map[string]bool, len(m.view.Selected))
	for _, id := range m.view.Selected {
		out[id] = true
	}
	return out
}

func (m Model) addLog(msg string) Model {
	entry := fmt.Sprintf("[%s] %s", m.now().Format("15:04:05"), msg)
	logs := append(append([]string(nil), m.logs...), entry)
	if len(logs) > maxLogs {
		logs = logs[len(logs)-maxLogs:]
	}
	m.logs = logs
	return m
}

func (m Model) clampCursor() Model {
	if m.cursor >= len(m.view.Visible) {
		m.cursor = len(m.view.Visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func nextIn(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
