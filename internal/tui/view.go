package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/ui"
)

const minLaneWidth = 16

func (m Model) View() string {
	if m.mode == modePicker {
		return ui.PanelString(m.picker.View())
	}

	th := ui.Current()
	parts := []string{m.header(), m.lanes()}

	if m.mode != modeBoard {
		title := map[mode]string{
			modeAdd:        "Add task",
			modeEdit:       "Edit task",
			modeNewProject: "New project",
			modeRename:     "Rename project",
		}[m.mode]
		if m.inErr != "" {
			title += ": " + th.Error.Render(m.inErr)
		}
		bar := lipgloss.NewStyle().Border(th.Border).BorderForeground(th.BorderColor).Padding(0, 1)
		parts = append(parts, bar.Render(title+"\n"+m.ti.View()))
	}
	if m.flash != "" {
		parts = append(parts, th.Muted.Render(m.flash))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) header() string {
	th := ui.Current()
	p := m.store.ActiveProject()
	counts := m.store.StatusCounts()
	total, done := 0, 0
	for _, c := range counts {
		total += c.Count
		if c.Status == model.StatusDone {
			done = c.Count
		}
	}

	day := m.store.ActiveDay().Format("Mon 2006-01-02")
	if m.store.IsToday() {
		day += " (today)"
	}
	line := fmt.Sprintf("%s  %s  %s", th.Title.Render(p.Name), th.Accent.Render(day), ui.ProgressBar(done, total, 12))
	lines := []string{line}
	if p.Description != "" {
		lines = append(lines, th.Muted.Render(ui.Truncate(p.Description, m.width-4)))
	}
	barWidth := max(10, min(40, m.width-4))
	lines = append(lines, ui.DistributionBar(counts, barWidth)+"  "+ui.Legend(counts))
	return strings.Join(lines, "\n")
}

func (m Model) lanes() string {
	th := ui.Current()
	cols := m.board()
	width := max(minLaneWidth, (m.width-2)/len(cols)-2)

	rendered := make([]string, 0, len(cols))
	for ci, col := range cols {
		color := th.StatusColor(col.Status)
		head := lipgloss.NewStyle().Bold(true).Foreground(color).
			Render(fmt.Sprintf("%s (%d)", col.Status, len(col.Tasks)))

		lines := []string{head}
		if len(col.Tasks) == 0 {
			lines = append(lines, th.Muted.Render("-"))
		}
		for ri, t := range col.Tasks {
			lines = append(lines, m.card(t, width-4, ci == m.col && ri == m.row))
		}

		border := th.BorderColor
		if ci == m.col {
			border = color
		}
		lane := lipgloss.NewStyle().
			Border(th.Border).
			BorderForeground(border).
			Padding(0, 1).
			Width(width).
			Render(strings.Join(lines, "\n"))
		rendered = append(rendered, lane)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) card(t model.Task, width int, selected bool) string {
	th := ui.Current()
	title := ui.Truncate(t.Title, width-2)
	if t.When != nil {
		title = ui.Truncate(t.When.Format("15:04")+" "+t.Title, width-2)
	}
	if t.Done() {
		title = th.Done.Render(title)
	}
	if selected {
		return th.Selected.Render("> " + title)
	}
	return "  " + title
}
