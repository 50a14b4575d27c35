package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.help.Width = msg.Width
		v.input.Width = max(msg.Width-10, 10)
		return v, nil
	case tea.MouseMsg:
		return v, v.handleMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, v.keys.ForceQuit) {
			v.blurEditor()
			return v, tea.Quit
		}
		switch {
		case v.editing:
			return v, v.updateEditor(msg)
		case v.focus == inputFocus:
			return v, v.updateInput(msg)
		default:
			return v, v.updateRows(msg)
		}
	}
	return v, nil
}

func (v *View) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Add):
		text := v.input.Value()
		if strings.TrimSpace(text) == "" || v.onAdd == nil {
			return nil
		}
		if v.report(v.onAdd(text)) {
			v.input.Reset()
		}
		return nil
	case key.Matches(msg, v.keys.Switch), msg.String() == "down":
		v.focusRow(0)
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *View) updateRows(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return tea.Quit
	case key.Matches(msg, v.keys.Switch):
		v.focusInput()
	case key.Matches(msg, v.keys.Up):
		if v.focus == 0 {
			v.focusInput()
		} else {
			v.focusRow(v.focus - 1)
		}
	case key.Matches(msg, v.keys.Down):
		v.focusRow(v.focus + 1)
	case key.Matches(msg, v.keys.Toggle):
		v.toggle(v.focus)
	case key.Matches(msg, v.keys.Delete):
		v.delete(v.focus)
	case key.Matches(msg, v.keys.Edit):
		return v.openEditor(v.focus)
	}
	return nil
}

func (v *View) updateEditor(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, v.keys.Finish) {
		v.blurEditor()
		switch msg.String() {
		case "tab", "shift+tab":
			v.focusInput()
		case "up":
			if v.focus > 0 {
				v.focusRow(v.focus - 1)
			}
		case "down":
			v.focusRow(v.focus + 1)
		}
		return nil
	}
	before := v.editor.Value()
	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	if after := v.editor.Value(); after != before {
		v.pending = pendingEdit{id: v.editID, text: after}
	}
	return cmd
}

func (v *View) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	x, y := msg.X-originX, msg.Y-originY
	if y == inputLine {
		v.blurEditor()
		v.focusInput()
		return nil
	}
	i := y - rowsTop
	if i < 0 || i >= len(v.rows) {
		v.blurEditor()
		return nil
	}
	l := v.layout(i)
	switch {
	case l.box.contains(x):
		id := v.rows[i].id
		v.blurEditor()
		v.toggleID(id)
	case l.del.contains(x):
		id := v.rows[i].id
		v.blurEditor()
		v.deleteID(id)
	default:
		if v.editing && v.editID == v.rows[i].id {
			return nil
		}
		v.blurEditor()
		v.focusRow(i)
	}
	return nil
}

func (v *View) focusInput() {
	v.focus = inputFocus
	v.input.Focus()
}

func (v *View) focusRow(i int) {
	if len(v.rows) == 0 {
		v.focusInput()
		return
	}
	v.focus = min(max(i, 0), len(v.rows)-1)
	v.input.Blur()
}

func (v *View) openEditor(i int) tea.Cmd {
	if i < 0 || i >= len(v.rows) {
		return nil
	}
	v.editing = true
	v.editID = v.rows[i].id
	v.pending = pendingEdit{}
	v.editor.SetValue(v.rows[i].text)
	v.editor.CursorEnd()
	return v.editor.Focus()
}

// blurEditor is focus loss on the edited row: a buffered edit is
// dispatched once and the buffer cleared either way.
func (v *View) blurEditor() {
	if !v.editing {
		return
	}
	p := v.pending
	v.closeEditor()
	if p.active() && v.onEdit != nil {
		v.report(v.onEdit(p.id, p.text))
	}
}

func (v *View) closeEditor() {
	v.editing = false
	v.editID = 0
	v.pending = pendingEdit{}
	v.editor.Blur()
}

func (v *View) toggle(i int) {
	if i >= 0 && i < len(v.rows) {
		v.toggleID(v.rows[i].id)
	}
}

func (v *View) toggleID(id int) {
	if v.onToggle != nil {
		v.report(v.onToggle(id))
	}
}

func (v *View) delete(i int) {
	if i >= 0 && i < len(v.rows) {
		v.deleteID(v.rows[i].id)
	}
}

func (v *View) deleteID(id int) {
	if v.onDelete != nil {
		v.report(v.onDelete(id))
	}
}

// report records a handler result in the status line and says whether it
// succeeded.
func (v *View) report(err error) bool {
	if err != nil {
		v.status = err.Error()
		return false
	}
	v.status = ""
	return true
}
