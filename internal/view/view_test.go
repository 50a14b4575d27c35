package view

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

type recorder struct {
	adds    []string
	edits   []model.Item
	deletes []int
	toggles []int
	err     error
}

func newRecordedView(items ...model.Item) (*View, *recorder) {
	v := New()
	r := &recorder{}
	v.BindAddItem(func(text string) error { r.adds = append(r.adds, text); return r.err })
	v.BindEditItem(func(id int, text string) error {
		r.edits = append(r.edits, model.Item{ID: id, Text: text})
		return r.err
	})
	v.BindDeleteItem(func(id int) error { r.deletes = append(r.deletes, id); return r.err })
	v.BindToggleItem(func(id int) error { r.toggles = append(r.toggles, id); return r.err })
	v.Render(items)
	return v, r
}

func typeText(v *View, s string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(v *View, t tea.KeyType) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: t})
	return cmd
}

func click(v *View, x, y int) {
	v.Update(tea.MouseMsg{X: originX + x, Y: originY + y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

var twoItems = []model.Item{
	{ID: 1, Text: "Buy milk"},
	{ID: 2, Text: "Walk dog", Done: true},
}

func TestRenderEmptyShowsPlaceholder(t *testing.T) {
	v, _ := newRecordedView()
	out := v.View()
	for _, want := range []string{Heading, Placeholder, "Today I need to do..."} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, DeleteLabel) {
		t.Error("empty list should not render delete controls")
	}
}

func TestRenderRows(t *testing.T) {
	v, _ := newRecordedView(twoItems...)
	out := v.View()
	for _, want := range []string{"1. Buy milk", "2. Walk dog", DeleteLabel} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, Placeholder) {
		t.Error("placeholder shown for a non-empty list")
	}

	v.Render(twoItems[:1])
	if len(v.rows) != 1 || v.done != 0 {
		t.Errorf("rebuild: got %d rows, %d done", len(v.rows), v.done)
	}
}

func TestAddGesture(t *testing.T) {
	v, r := newRecordedView()

	press(v, tea.KeyEnter)
	typeText(v, "  ")
	press(v, tea.KeyEnter)
	if len(r.adds) != 0 {
		t.Fatalf("enter on blank input dispatched %v", r.adds)
	}
	if v.Status() != "" {
		t.Errorf("blank input set status %q", v.Status())
	}

	v.input.Reset()
	typeText(v, "Buy milk")
	press(v, tea.KeyEnter)
	if len(r.adds) != 1 || r.adds[0] != "Buy milk" {
		t.Fatalf("adds: got %v", r.adds)
	}
	if v.InputValue() != "" {
		t.Errorf("input not cleared: %q", v.InputValue())
	}
}

func TestAddErrorKeepsInput(t *testing.T) {
	v, r := newRecordedView()
	r.err = errors.New("persist todos: disk full")

	typeText(v, "Buy milk")
	press(v, tea.KeyEnter)
	if len(r.adds) != 1 {
		t.Fatalf("adds: got %v", r.adds)
	}
	if v.InputValue() != "Buy milk" {
		t.Errorf("input cleared after a rejected add: %q", v.InputValue())
	}
	if v.Status() != r.err.Error() {
		t.Errorf("status: got %q", v.Status())
	}
	if !strings.Contains(v.View(), r.err.Error()) {
		t.Error("status line not rendered")
	}

	r.err = nil
	press(v, tea.KeyEnter)
	if v.Status() != "" {
		t.Errorf("status not cleared: %q", v.Status())
	}
}

func TestKeyboardToggleAndDelete(t *testing.T) {
	v, r := newRecordedView(twoItems...)

	press(v, tea.KeyTab)
	typeText(v, "x")
	press(v, tea.KeyDown)
	typeText(v, "x")
	typeText(v, "d")

	if want := []int{1, 2}; len(r.toggles) != 2 || r.toggles[0] != want[0] || r.toggles[1] != want[1] {
		t.Errorf("toggles: got %v, want %v", r.toggles, want)
	}
	if len(r.deletes) != 1 || r.deletes[0] != 2 {
		t.Errorf("deletes: got %v, want [2]", r.deletes)
	}
}

func TestEditDispatchesOnFocusLoss(t *testing.T) {
	v, r := newRecordedView(twoItems...)

	press(v, tea.KeyTab)
	typeText(v, "e")
	if !v.editing {
		t.Fatal("editor not open")
	}
	typeText(v, "!")
	press(v, tea.KeyEnter)

	if len(r.edits) != 1 || r.edits[0] != (model.Item{ID: 1, Text: "Buy milk!"}) {
		t.Fatalf("edits: got %+v", r.edits)
	}
	if v.editing || v.pending.active() {
		t.Error("pending edit not cleared after dispatch")
	}

	// A second focus loss without typing dispatches nothing.
	typeText(v, "e")
	press(v, tea.KeyEsc)
	if len(r.edits) != 1 {
		t.Errorf("edit dispatched without buffered text: %+v", r.edits)
	}
}

func TestEditClearedToEmptyIsNotDispatched(t *testing.T) {
	v, r := newRecordedView(model.Item{ID: 1, Text: "a"})
	press(v, tea.KeyTab)
	typeText(v, "e")
	press(v, tea.KeyBackspace)
	press(v, tea.KeyTab)
	if len(r.edits) != 0 {
		t.Errorf("empty edit dispatched: %+v", r.edits)
	}
	if v.focus != inputFocus {
		t.Errorf("tab should move focus to the input, got %d", v.focus)
	}
}

func TestEditKeepsLongText(t *testing.T) {
	long := strings.Repeat("a", 250)
	v, r := newRecordedView(model.Item{ID: 1, Text: long})
	press(v, tea.KeyTab)
	typeText(v, "e")
	press(v, tea.KeyBackspace)
	press(v, tea.KeyEnter)

	if len(r.edits) != 1 {
		t.Fatalf("edits: got %d, want 1", len(r.edits))
	}
	if got, want := len(r.edits[0].Text), len(long)-1; got != want {
		t.Errorf("dispatched %d chars, want %d", got, want)
	}
}

func TestMouseClicks(t *testing.T) {
	v, r := newRecordedView(twoItems...)

	l := v.layout(1)
	click(v, l.box.from, rowsTop+1)
	if len(r.toggles) != 1 || r.toggles[0] != 2 {
		t.Errorf("toggles: got %v, want [2]", r.toggles)
	}

	l = v.layout(0)
	click(v, l.del.from+1, rowsTop)
	if len(r.deletes) != 1 || r.deletes[0] != 1 {
		t.Errorf("deletes: got %v, want [1]", r.deletes)
	}

	click(v, l.box.to+2, rowsTop+1)
	if v.focus != 1 {
		t.Errorf("click on label: focus %d, want 1", v.focus)
	}
	click(v, 3, inputLine)
	if v.focus != inputFocus {
		t.Errorf("click on input: focus %d, want input", v.focus)
	}
}

func TestClickElsewhereCommitsEdit(t *testing.T) {
	v, r := newRecordedView(twoItems...)
	press(v, tea.KeyTab)
	typeText(v, "e")
	typeText(v, "?")

	l := v.layout(1)
	click(v, l.box.from, rowsTop+1)

	if len(r.edits) != 1 || r.edits[0].ID != 1 || r.edits[0].Text != "Buy milk?" {
		t.Errorf("edits: got %+v", r.edits)
	}
	if len(r.toggles) != 1 || r.toggles[0] != 2 {
		t.Errorf("toggles: got %v", r.toggles)
	}
}

func TestFocusFollowsItemAcrossRender(t *testing.T) {
	v, _ := newRecordedView(twoItems...)
	press(v, tea.KeyTab)
	press(v, tea.KeyDown)
	if v.focus != 1 {
		t.Fatalf("focus: got %d, want 1", v.focus)
	}
	v.Render(twoItems[1:])
	if v.focus != 0 || v.rows[v.focus].id != 2 {
		t.Errorf("focus did not follow item 2: %d", v.focus)
	}
	v.Render(nil)
	if v.focus != inputFocus {
		t.Errorf("empty list should focus the input, got %d", v.focus)
	}
}

func TestRenderDropsEditorForDeletedItem(t *testing.T) {
	v, r := newRecordedView(twoItems...)
	press(v, tea.KeyTab)
	typeText(v, "e")
	typeText(v, "zzz")
	v.Render(twoItems[1:])
	if v.editing {
		t.Error("editor still open for a deleted item")
	}
	press(v, tea.KeyEnter)
	if len(r.edits) != 0 {
		t.Errorf("edit dispatched for a deleted item: %+v", r.edits)
	}
}

func TestQuit(t *testing.T) {
	v, _ := newRecordedView(twoItems...)
	typeText(v, "q")
	if v.InputValue() != "q" {
		t.Errorf("q in the input should be typed, got %q", v.InputValue())
	}
	press(v, tea.KeyTab)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q on the list should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
}

func TestHandlerErrorShownInStatus(t *testing.T) {
	v, r := newRecordedView(twoItems...)
	r.err = errors.New("persist todos: disk full")
	press(v, tea.KeyTab)
	typeText(v, "x")
	if v.Status() != "persist todos: disk full" {
		t.Errorf("status: got %q", v.Status())
	}
}
