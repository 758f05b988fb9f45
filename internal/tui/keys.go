package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding

	Add, Edit, Delete, Undo key.Binding
	Back, Forward, Toggle   key.Binding

	PrevDay, NextDay, Today key.Binding

	Projects, NewProject, Rename key.Binding

	Help, Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev lane")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next lane")),

		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Back:    key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "move back")),
		Forward: key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "move on")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),

		PrevDay: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev day")),
		NextDay: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),

		Projects:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		NewProject: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename project")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Back, k.Forward, k.PrevDay, k.NextDay, k.Projects, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Edit, k.Delete, k.Undo},
		{k.Back, k.Forward, k.Toggle},
		{k.PrevDay, k.NextDay, k.Today},
		{k.Projects, k.NewProject, k.Rename},
		{k.Help, k.Quit},
	}
}
