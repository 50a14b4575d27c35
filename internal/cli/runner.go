package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/view"

	_ "github.com/Makepad-fr/tada/internal/store/jsonstore"
	_ "github.com/Makepad-fr/tada/internal/store/memstore"
	_ "github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// Options tune output behavior from root flags.
type Options struct {
	Group  bool // list grouped by pending/done
	Config config.Config

	Stdout, Stderr io.Writer
	Logger         *log.Logger

	// Slot, when set, is used instead of opening Config.Store.
	Slot store.Slot
	// RunUI runs the interactive list; nil means a real terminal program.
	RunUI func(app *App) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.RunUI == nil {
		o.RunUI = runProgram
	}
}

var subcommands = []string{"help", "ui", "ls", "add", "edit", "done", "rm", "config"}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ui":
		return doUI(opt)

	case "ls":
		return doList(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Stderr, "usage: todo add <text...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "edit":
		if len(a) < 2 {
			ui.Fail(opt.Stderr, "usage: todo edit <id> <text...>")
			return 2
		}
		id, ok := parseID(opt, "edit", a[0])
		if !ok {
			return 2
		}
		return doEdit(opt, id, strings.Join(a[1:], " "))

	case "done":
		if len(a) != 1 {
			ui.Fail(opt.Stderr, "usage: todo done <id>")
			return 2
		}
		id, ok := parseID(opt, "done", a[0])
		if !ok {
			return 2
		}
		return doToggle(opt, id)

	case "rm":
		if len(a) != 1 {
			ui.Fail(opt.Stderr, "usage: todo rm <id>")
			return 2
		}
		id, ok := parseID(opt, "rm", a[0])
		if !ok {
			return 2
		}
		return doRemove(opt, id)

	case "config":
		if err := opt.Config.Write(opt.Stdout); err != nil {
			ui.Fail(opt.Stderr, err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	if s := suggest(cmd); s != "" {
		fmt.Fprintln(opt.Stderr, ui.Current().Muted.Render("Did you mean `todo "+s+"`?"))
	}
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a tiny MVC to-do list

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  ui                 Interactive list (default on a terminal)
  ls                 Print the list (--group splits pending/done)
  add <text...>      Add a new item (text can be multiple words)
  edit <id> <text>   Replace the text of item <id>
  done <id>          Toggle done for item <id>
  rm <id>            Remove item <id>
  config             Print the effective configuration as TOML

Flags:
  --config <file>    Config file (default ~/.config/tada/config.toml, env TADA_CONFIG)
  --store <name>     file | sqlite | memory
  --data-dir <dir>   Where the list is stored
  --theme <name>     classic | neon | mono
  --log-level <lvl>  debug | info | warn | error
  --group            Group ls output by pending/done
  --ephemeral        Keep the list in memory only

Examples:
  todo add "Buy milk"
  todo ls
  todo done 2
  todo edit 2 "Walk the dog"
  todo rm 3
`)
}

// suggest returns the closest subcommand within edit distance 2.
func suggest(cmd string) string {
	best, bestDist := "", 3
	for _, s := range subcommands {
		if d := levenshtein.ComputeDistance(cmd, s); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

func parseID(opt Options, sub, arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		ui.Fail(opt.Stderr, sub+": not an item id: "+arg)
		return 0, false
	}
	return n, true
}

// ---------------------------------------------------
// Core subcommands (all go through the model)
// ---------------------------------------------------

func openModel(opt Options) (*model.Model, func(), error) {
	slot := opt.Slot
	closeSlot := func() {}
	if slot == nil {
		s, err := store.Open(opt.Config.Store, opt.Config.DataDir)
		if err != nil {
			return nil, nil, err
		}
		slot = s
		closeSlot = func() {
			if err := s.Close(); err != nil {
				opt.Logger.Warn("close store", "err", err)
			}
		}
	}
	ids, err := model.ParseIDPolicy(opt.Config.IDs)
	if err != nil {
		closeSlot()
		return nil, nil, err
	}
	m, err := model.New(slot, model.Options{Key: opt.Config.Key, IDs: ids, Logger: opt.Logger})
	if err != nil {
		closeSlot()
		return nil, nil, err
	}
	return m, closeSlot, nil
}

// withModel opens the model, runs fn and maps its error to an exit code.
func withModel(opt Options, fn func(m *model.Model) int) int {
	m, closeSlot, err := openModel(opt)
	if err != nil {
		ui.Fail(opt.Stderr, "load: "+err.Error())
		return 1
	}
	defer closeSlot()
	return fn(m)
}

func doList(opt Options) int {
	return withModel(opt, func(m *model.Model) int {
		items := m.Items()
		t := ui.Current()

		d, p := m.Stats()
		header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			t.Title.Render("Todos"),
			t.Success.Render(t.SymDone), d,
			t.Pending.Render(t.SymPending), p,
			t.Accent.Render("Total"), len(items),
		)

		var lines []string
		lines = append(lines, header)
		lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
		lines = append(lines, "")

		if opt.Group {
			lines = append(lines, groupLines(items)...)
		} else {
			lines = append(lines, flatLines(items)...)
		}
		lines = append(lines, "")
		lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
		ui.Panel(opt.Stdout, lines)
		return 0
	})
}

func doAdd(opt Options, text string) int {
	return withModel(opt, func(m *model.Model) int {
		id, err := m.Add(text)
		if err != nil {
			return failed(opt, "add", err)
		}
		ui.OK(opt.Stdout, fmt.Sprintf("added #%d", id))
		return 0
	})
}

func doEdit(opt Options, id int, text string) int {
	return withModel(opt, func(m *model.Model) int {
		if !exists(opt, m, id) {
			return 2
		}
		if err := m.Edit(id, text); err != nil {
			return failed(opt, "edit", err)
		}
		ui.OK(opt.Stdout, fmt.Sprintf("edited #%d", id))
		return 0
	})
}

func doToggle(opt Options, id int) int {
	return withModel(opt, func(m *model.Model) int {
		if !exists(opt, m, id) {
			return 2
		}
		if err := m.Toggle(id); err != nil {
			return failed(opt, "done", err)
		}
		ui.OK(opt.Stdout, fmt.Sprintf("toggled #%d", id))
		return 0
	})
}

func doRemove(opt Options, id int) int {
	return withModel(opt, func(m *model.Model) int {
		if !exists(opt, m, id) {
			return 2
		}
		if err := m.Delete(id); err != nil {
			return failed(opt, "rm", err)
		}
		ui.OK(opt.Stdout, fmt.Sprintf("removed #%d", id))
		return 0
	})
}

// exists reports unknown ids to the user; the model itself ignores them.
func exists(opt Options, m *model.Model, id int) bool {
	items := m.Items()
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, strconv.Itoa(it.ID))
	}
	ui.Fail(opt.Stderr, fmt.Sprintf("no item with id %d (have: %s)", id, strings.Join(ids, ", ")))
	fmt.Fprintln(opt.Stderr, ui.Current().Muted.Render("Hint: run `todo ls` to see valid ids"))
	return false
}

func failed(opt Options, sub string, err error) int {
	ui.Fail(opt.Stderr, sub+": "+err.Error())
	if errors.Is(err, model.ErrEmptyText) {
		return 2
	}
	return 1
}

// -------------- rendering helpers --------------

const maxLabelWidth = 80

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render(view.Placeholder)}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := t.Muted.Render(t.BoxUnchecked)
		label := it.Label()
		if lipgloss.Width(label) > maxLabelWidth {
			label = ansi.Truncate(label, maxLabelWidth, "...")
		}
		if it.Done {
			box = t.Success.Render(t.BoxChecked)
			label = t.Done.Render(label)
		}
		out = append(out, box+" "+label)
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
