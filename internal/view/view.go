// Package view renders the to-do list in the terminal and turns key presses
// and mouse clicks into handler calls. It keeps no list of its own beyond
// the rows built by the last Render.
package view

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

const (
	Heading     = "Welcome to MVC ToDo List"
	Placeholder = "Nothing to do! Add a todo?"
	InputID     = "todo"
	DeleteLabel = "[Delete]"
)

// Handlers receive gestures. A returned error is shown in the status line.
type (
	AddHandler    = func(text string) error
	EditHandler   = func(id int, text string) error
	DeleteHandler = func(id int) error
	ToggleHandler = func(id int) error
)

// row is the rendered form of one item, tagged with the item's id so a
// gesture on it can be resolved back to the item.
type row struct {
	id    int
	label string
	text  string
	done  bool
}

// pendingEdit is the in-progress inline edit: either idle (zero value) or
// holding buffered text for item id.
type pendingEdit struct {
	id   int
	text string
}

func (p pendingEdit) active() bool { return p.text != "" }

// inputFocus is the focus value for the add input.
const inputFocus = -1

// View implements tea.Model. Gesture wiring lives in Update and does not
// depend on which rows exist, so it survives every Render.
type View struct {
	input  textinput.Model
	editor textinput.Model
	help   help.Model
	keys   keyMap

	rows    []row
	done    int
	focus   int  // inputFocus or a row index
	editing bool // editor open on the row with editID
	editID  int
	pending pendingEdit
	status  string

	onAdd    AddHandler
	onEdit   EditHandler
	onDelete DeleteHandler
	onToggle ToggleHandler
}

func New() *View {
	v := &View{
		help:  help.New(),
		keys:  defaultKeys(),
		focus: inputFocus,
	}
	v.input = textinput.New()
	v.input.Prompt = "> "
	v.input.Placeholder = "Today I need to do..."
	v.input.CharLimit = 200
	v.input.Width = 40
	v.input.Focus()

	v.editor = textinput.New()
	v.editor.Prompt = ""
	v.editor.CharLimit = 0 // never cut text loaded from the list
	return v
}

func (v *View) BindAddItem(h AddHandler)       { v.onAdd = h }
func (v *View) BindEditItem(h EditHandler)     { v.onEdit = h }
func (v *View) BindDeleteItem(h DeleteHandler) { v.onDelete = h }
func (v *View) BindToggleItem(h ToggleHandler) { v.onToggle = h }

// Render drops every row and rebuilds from items. Focus stays on the same
// item when it is still there.
func (v *View) Render(items []model.Item) {
	focusedID := 0
	if v.focus != inputFocus && v.focus < len(v.rows) {
		focusedID = v.rows[v.focus].id
	}

	v.rows = make([]row, 0, len(items))
	v.done = 0
	for i, it := range items {
		v.rows = append(v.rows, row{id: it.ID, label: it.Label(), text: it.Text, done: it.Done})
		if it.Done {
			v.done++
		}
		if focusedID != 0 && it.ID == focusedID {
			v.focus = i
			focusedID = 0
		}
	}

	if v.focus >= len(v.rows) {
		v.focus = len(v.rows) - 1
	}
	if v.focus == inputFocus {
		v.input.Focus()
	}
	if v.editing && v.indexOf(v.editID) < 0 {
		v.closeEditor()
	}
}

func (v *View) indexOf(id int) int {
	for i, r := range v.rows {
		if r.id == id {
			return i
		}
	}
	return -1
}

// Status is the last error reported by a handler, if any.
func (v *View) Status() string { return v.status }

// InputValue is the current content of the add input.
func (v *View) InputValue() string { return v.input.Value() }

func (v *View) Init() tea.Cmd { return textinput.Blink }
