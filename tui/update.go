package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case viewMsg:
		return m.handleView(msg)
	}
	return m, nil
}

func (m Model) handleView(msg viewMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		return m.addLog("❌ " + msg.Err.Error()), nil
	}
	m.err = nil
	m.view = msg.View
	m.ready = true
	m = m.clampCursor()
	if msg.Note != "" {
		m = m.addLog(msg.Note)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	if m.confirming {
		switch key {
		case "y", "Y":
			m.confirming = false
			m.busy = true
			return m, deleteSelected(m.api, m.view.ID)
		case "n", "N", "esc":
			m.confirming = false
			return m.addLog("Delete cancelled"), nil
		}
		return m, nil
	}

	if !m.ready || m.busy {
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.view.Visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "space":
		if len(m.view.Visible) == 0 {
			return m, nil
		}
		return m.call(toggleDocument(m.api, m.view.ID, m.view.Visible[m.cursor].ID))
	case "a":
		return m.call(selectAll(m.api, m.view.ID))
	case "c":
		return m.call(clearSelection(m.api, m.view.ID))
	case "s":
		if len(m.view.Selected) == 0 {
			return m.fail(errors.New("nothing selected"))
		}
		return m.call(applySelected(m.api, m.view.ID))
	case "D":
		if len(m.view.Selected) == 0 {
			return m.fail(errors.New("nothing selected"))
		}
		m.confirming = true
	case "f":
		return m.call(setFilters(m.api, m.view.ID, nextIn(StatusFilters, m.view.StatusFilter), m.view.CategoryFilter))
	case "g":
		return m.call(setFilters(m.api, m.view.ID, m.view.StatusFilter, nextIn(CategoryFilters, m.view.CategoryFilter)))
	case "r":
		return m.call(refreshSession(m.api, m.view.ID))
	}
	return m, nil
}

func (m Model) call(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy = true
	return m, cmd
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	return m.addLog("⚠️  " + err.Error()), nil
}
