package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
)

// ProgressBar renders a bar with percentage.
func ProgressBar(done, total, width int) string {
	t := Current()
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// DistributionBar splits width cells across statuses by count, each segment
// in its lane colour. It stands in for the status pie chart.
func DistributionBar(counts []model.StatusCount, width int) string {
	t := Current()
	if width < len(counts) {
		width = len(counts)
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return t.Muted.Render(strings.Repeat(t.BarEmpty, width))
	}
	var b strings.Builder
	used := 0
	for i, c := range counts {
		cells := c.Count * width / total
		if i == len(counts)-1 {
			cells = width - used
		} else if c.Count > 0 && cells == 0 {
			cells = 1
		}
		if used+cells > width {
			cells = width - used
		}
		used += cells
		if cells > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(t.StatusColor(c.Status)).Render(strings.Repeat(t.BarFull, cells)))
		}
	}
	return b.String()
}

// Legend lists "Status n" pairs in lane colours.
func Legend(counts []model.StatusCount) string {
	t := Current()
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s %d", t.StatusStyle(c.Status).Render(string(c.Status)), c.Count))
	}
	return strings.Join(parts, "  ")
}

// PanelString frames content with the theme border.
func PanelString(content string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(content)
}

// Panel writes lines framed in a box.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(strings.Join(lines, "\n")))
}

// OK and Fail are the one-line result printers of the CLI.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Success.Render(Current().SymDone+" "+msg))
}

// Note reports a command that ran but had nothing to do.
func Note(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Pending.Render(Current().SymPending+" "+msg))
}

func Fail(w io.Writer, msg string) {
	sym := "✖"
	if Current().Name == "mono" {
		sym = "!"
	}
	fmt.Fprintln(w, Current().Error.Render(sym+" "+msg))
}

// Truncate shortens s to max visible cells with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 3 || lipgloss.Width(s) <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > max {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
