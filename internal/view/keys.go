package view

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Switch  key.Binding
	Add, Edit, Finish key.Binding
	Toggle, Delete    key.Binding
	Quit, ForceQuit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Switch:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "input/list")),
		Add:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Finish:    key.NewBinding(key.WithKeys("enter", "esc", "tab", "shift+tab", "up", "down"), key.WithHelp("enter/esc", "done editing")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Toggle, k.Edit, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Add, k.Edit, k.Finish},
		{k.Toggle, k.Delete, k.Quit},
	}
}

// editingHelp is shown while a row is being edited.
type editingHelp struct{ keyMap }

func (k editingHelp) ShortHelp() []key.Binding { return []key.Binding{k.Finish} }
