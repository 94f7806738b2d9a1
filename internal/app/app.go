// Package app wires the Bubble Tea program: the root model owns the window
// size and the frame chrome, and delegates everything else to the screen
// router.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/config"
	"github.com/adube/examterm/internal/router"
	"github.com/adube/examterm/internal/screen"
	"github.com/adube/examterm/internal/screens/instructions"
	"github.com/adube/examterm/internal/store"
	"github.com/adube/examterm/internal/ui/layout"
)

// Options carries everything the program needs before the first screen shows.
type Options struct {
	Store  *store.Store
	Config config.Config
	Bank   []aiken.Question
	Report aiken.Report
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	root := instructions.New(opts.Store, opts.Config, opts.Bank, opts.Report)
	return AppModel{
		router: router.New(root),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is owned by the screens; the exam screen in particular uses
		// it for its quit confirmation rather than plain back-navigation.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	streak, warnings, maxWarnings := 0, 0, m.opts.Config.MaxWarnings
	if p, ok := active.(screen.HeaderStatsProvider); ok {
		streak, warnings, maxWarnings = p.HeaderStats()
	}
	header := layout.RenderHeader(title, streak, warnings, maxWarnings, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. Focus reporting is enabled so losing
// terminal focus reaches the exam screen as a tea.BlurMsg.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
