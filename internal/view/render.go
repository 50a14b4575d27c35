package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/ui"
)

// Screen geometry used for mouse hit testing. The panel border takes one
// line and one column, padding one more column.
const (
	originX   = 2
	originY   = 1
	inputLine = 3 // heading, progress, blank, input
	rowsTop   = 5 // input, blank, then rows
)

type span struct{ from, to int }

func (s span) contains(x int) bool { return x >= s.from && x < s.to }

type rowLayout struct {
	line string
	box  span
	del  span
}

// layout renders row i and records where its checkbox and delete control sit.
func (v *View) layout(i int) rowLayout {
	t := ui.Current()
	r := v.rows[i]

	prefix := "  "
	if i == v.focus && !v.editing {
		prefix = t.Selected.Render("> ")
	} else if i == v.focus {
		prefix = t.Accent.Render("~ ")
	}

	box := t.Muted.Render(t.BoxUnchecked)
	if r.done {
		box = t.Success.Render(t.BoxChecked)
	}

	label := r.label
	switch {
	case v.editing && r.id == v.editID:
		label = fmt.Sprintf("%d. %s", r.id, v.editor.View())
	case r.done:
		label = t.Done.Render(label)
	}

	del := t.Control.Render(DeleteLabel)

	pw, bw, lw := lipgloss.Width(prefix), lipgloss.Width(box), lipgloss.Width(label)
	boxAt := pw
	delAt := boxAt + bw + 1 + lw + 2
	return rowLayout{
		line: prefix + box + " " + label + "  " + del,
		box:  span{boxAt, boxAt + bw},
		del:  span{delAt, delAt + lipgloss.Width(del)},
	}
}

func (v *View) View() string {
	t := ui.Current()
	lines := []string{
		t.Title.Render(Heading),
		fmt.Sprintf("%s   %s %d  %s %d",
			ui.ProgressBar(v.done, len(v.rows), 20),
			t.Success.Render(t.SymDone), v.done,
			t.Pending.Render(t.SymPending), len(v.rows)-v.done,
		),
		"",
		v.input.View(),
		"",
	}
	if len(v.rows) == 0 {
		lines = append(lines, t.Muted.Render(Placeholder))
	}
	for i := range v.rows {
		lines = append(lines, v.layout(i).line)
	}

	lines = append(lines, "")
	if v.status != "" {
		lines = append(lines, t.Error.Render(v.status))
	}
	if v.editing {
		lines = append(lines, v.help.View(editingHelp{v.keys}))
	} else {
		lines = append(lines, v.help.View(v.keys))
	}
	return ui.PanelString(strings.Join(lines, "\n"))
}
