package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/controller"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/view"
)

// App is the wired model, view and controller of the interactive list.
type App struct {
	Model      *model.Model
	View       *view.View
	Controller *controller.Controller
}

func newApp(m *model.Model, logger *log.Logger) *App {
	v := view.New()
	return &App{
		Model:      m,
		View:       v,
		Controller: controller.New(m, v, logger),
	}
}

// runProgram hands the terminal to Bubble Tea until the user quits. Every
// gesture is persisted as it happens, so there is nothing to save here.
func runProgram(app *App) error {
	p := tea.NewProgram(app.View, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func doUI(opt Options) int {
	// The alt screen owns stdout; log to a file instead.
	if fl, closer, err := logging.FileLogger(opt.Config.LogFile, opt.Config.LogLevel); err == nil {
		defer closer.Close()
		opt.Logger = fl
	} else {
		opt.Logger.Warn("file logging disabled", "err", err)
	}

	return withModel(opt, func(m *model.Model) int {
		app := newApp(m, opt.Logger)
		opt.Logger.Info("interactive session", "items", len(m.Items()), "store", opt.Config.Store)
		if err := opt.RunUI(app); err != nil {
			ui.Fail(opt.Stderr, "tui: "+err.Error())
			return 1
		}
		d, p := m.Stats()
		opt.Logger.Info("session ended", "done", d, "pending", p)
		return 0
	})
}
