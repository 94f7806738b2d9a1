// Package instructions is the landing screen: test rules, bank summary, and
// the choice between resuming a saved test, a full test, and practice mode.
package instructions

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/config"
	"github.com/adube/examterm/internal/router"
	"github.com/adube/examterm/internal/screen"
	"github.com/adube/examterm/internal/screens/exam"
	"github.com/adube/examterm/internal/screens/registration"
	sess "github.com/adube/examterm/internal/session"
	"github.com/adube/examterm/internal/store"
	"github.com/adube/examterm/internal/ui/layout"
	"github.com/adube/examterm/internal/ui/theme"
)

const (
	modeStart    = "Start Test"
	modePractice = "Practice Mode (3 questions)"
	modeResume   = "Resume Test"
)

// progressMsg carries a saved in-flight session, if one exists.
type progressMsg struct {
	saved *sess.Session
}

// Screen is the instructions/landing screen.
type Screen struct {
	st       *store.Store
	cfg      config.Config
	bank     []aiken.Question
	report   aiken.Report
	saved    *sess.Session
	selected int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the instructions screen over a parsed bank.
func New(st *store.Store, cfg config.Config, bank []aiken.Question, report aiken.Report) *Screen {
	return &Screen{st: st, cfg: cfg, bank: bank, report: report}
}

func (s *Screen) Init() tea.Cmd {
	if s.st == nil {
		return nil
	}
	return func() tea.Msg {
		saved, ok, err := s.st.LoadProgress(context.Background())
		if err != nil || !ok {
			return progressMsg{}
		}
		return progressMsg{saved: saved}
	}
}

func (s *Screen) Title() string {
	return "Instructions"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// modes lists the menu entries; resuming is offered only while a saved
// session exists.
func (s *Screen) modes() []string {
	if s.saved != nil {
		return []string{modeResume, modeStart, modePractice}
	}
	return []string{modeStart, modePractice}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		s.saved = msg.saved
		return s, nil

	case tea.KeyMsg:
		modes := s.modes()
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(modes)-1 {
				s.selected++
			}
		case "enter":
			return s.choose(modes[s.selected])
		}
	}

	return s, nil
}

func (s *Screen) choose(mode string) (screen.Screen, tea.Cmd) {
	if mode == modeResume {
		ex := exam.Resume(s.st, s.cfg, s.bank, s.saved)
		s.saved = nil
		s.selected = 0
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: ex} }
	}
	reg := registration.New(s.st, s.cfg, s.bank, mode == modePractice)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: reg} }
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Welcome to Examterm"))
	b.WriteString("\n\n")

	rules := []string{
		"• Each question has its own countdown; when it hits zero the",
		"  question is scored as unanswered and the test moves on.",
		"• Question difficulty adapts to how well you are doing.",
		"• Switching away from the terminal counts as an integrity",
		fmt.Sprintf("  warning; %d warnings end the test immediately.", s.cfg.MaxWarnings),
		"• Your score, streak and badges are saved when you finish.",
	}
	ruleStyle := lipgloss.NewStyle().Foreground(theme.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		ruleStyle.Render(strings.Join(rules, "\n"))))
	b.WriteString("\n\n")

	bankLine := fmt.Sprintf("Question bank: %d questions", len(s.bank))
	if s.report.Dropped > 0 {
		bankLine += fmt.Sprintf(" (%d malformed blocks skipped)", s.report.Dropped)
	}
	b.WriteString(theme.Subtitle.Width(width).Render(bankLine))
	b.WriteString("\n\n")

	if s.saved != nil {
		resumeLine := fmt.Sprintf("Unfinished test found for %s (question %d of %d)",
			s.saved.Name, s.saved.CurrentIndex+1, len(s.saved.Questions))
		b.WriteString(theme.Subtitle.Width(width).Render(resumeLine))
		b.WriteString("\n\n")
	}

	for i, mode := range s.modes() {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+mode)))
		b.WriteString("\n")
	}

	return b.String()
}
