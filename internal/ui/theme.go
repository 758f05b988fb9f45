package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MohammedAnshabtp/TaskFlow-A-Smart-Task-Productivity-Manager/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	BarFull, BarEmpty        string

	status map[model.Status]lipgloss.TerminalColor
}

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

var current = classic()

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// StatusColor is the lane colour of s.
func (t Theme) StatusColor(s model.Status) lipgloss.TerminalColor {
	if c, ok := t.status[s]; ok {
		return c
	}
	return lipgloss.NoColor{}
}

// StatusStyle renders a status label in its lane colour.
func (t Theme) StatusStyle(s model.Status) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.StatusColor(s))
}

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),

		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
		BarFull: "█", BarEmpty: "░",

		status: map[model.Status]lipgloss.TerminalColor{
			model.StatusTodo:       lipgloss.Color("#6366f1"),
			model.StatusInProgress: lipgloss.Color("#f59e0b"),
			model.StatusReview:     lipgloss.Color("#06b6d4"),
			model.StatusTesting:    lipgloss.Color("#eab308"),
			model.StatusDone:       lipgloss.Color("#10b981"),
		},
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BorderColor = lipgloss.Color("13")
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	t.status = map[model.Status]lipgloss.TerminalColor{
		model.StatusTodo:       lipgloss.Color("93"),
		model.StatusInProgress: lipgloss.Color("208"),
		model.StatusReview:     lipgloss.Color("51"),
		model.StatusTesting:    lipgloss.Color("226"),
		model.StatusDone:       lipgloss.Color("46"),
	}
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain.Bold(true), Muted: plain, Accent: plain,
		Success: plain, Error: plain, Pending: plain,
		Selected: plain.Reverse(true), Done: plain,

		Border:      asciiBorder,
		BorderColor: lipgloss.NoColor{},

		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
		BarFull: "#", BarEmpty: ".",

		status: map[model.Status]lipgloss.TerminalColor{},
	}
}
