package tui

import (
	"fmt"
	"strings"

	"newscast/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	if !m.ready {
		if m.err != nil {
			b.WriteString(ErrorStyle.Render("❌ " + m.err.Error()))
		} else {
			b.WriteString(StatusStyle.Render(TextNoSession))
		}
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
		return b.String()
	}

	b.WriteString(InfoStyle.Render(fmt.Sprintf("status: %s | category: %s | %d shown | %d selected",
		m.view.StatusFilter, m.view.CategoryFilter, len(m.view.Visible), len(m.view.Selected))))
	b.WriteString("\n\n")

	b.WriteString(BoxStyle.Render(m.renderList()))
	b.WriteString("\n")

	if m.confirming {
		b.WriteString(WarnStyle.Render(fmt.Sprintf(TextConfirmDelete, len(m.view.Selected))))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render("❌ " + m.err.Error()))
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString(StatusStyle.Render("⏳ Working..."))
		b.WriteString("\n")
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")
		for _, l := range m.logs {
			b.WriteString(InfoStyle.Render("   " + l))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(TextFooter))
	return b.String()
}

func (m Model) renderList() string {
	if len(m.view.Visible) == 0 {
		return InfoStyle.Render(TextEmpty)
	}
	selected := m.selectedSet()
	var b strings.Builder
	for i, d := range m.view.Visible {
		mark := "[ ]"
		if selected[d.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %-8s %-9s %s", mark, d.Category.Label(), d.Status, d.Title)
		if i == m.cursor {
			line = CursorStyle.Render(line)
		} else if d.Status == types.StatusSelected {
			line = StatusStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(m.view.Visible)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
