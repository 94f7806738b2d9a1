// Package registration collects the test-taker's name and email, prefilled
// from cached credentials, and hands off to the exam screen.
package registration

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/config"
	"github.com/adube/examterm/internal/router"
	"github.com/adube/examterm/internal/screen"
	"github.com/adube/examterm/internal/screens/exam"
	"github.com/adube/examterm/internal/store"
	"github.com/adube/examterm/internal/ui/components"
	"github.com/adube/examterm/internal/ui/layout"
	"github.com/adube/examterm/internal/ui/theme"
)

// credentialsMsg carries the cached identity, if any.
type credentialsMsg struct {
	creds store.Credentials
	ok    bool
}

// Screen is the registration form.
type Screen struct {
	st       *store.Store
	cfg      config.Config
	bank     []aiken.Question
	practice bool

	name    components.TextInput
	email   components.TextInput
	focused int // 0 = name, 1 = email
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the registration screen.
func New(st *store.Store, cfg config.Config, bank []aiken.Question, practice bool) *Screen {
	return &Screen{
		st:       st,
		cfg:      cfg,
		bank:     bank,
		practice: practice,
		name:     components.NewTextInput("Your name", 40),
		email:    components.NewTextInput("you@example.com", 60),
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.name.Init(), s.loadCredentials())
}

func (s *Screen) Title() string {
	if s.practice {
		return "Registration — Practice"
	}
	return "Registration"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Begin"},
		{Key: "Esc", Description: "Back"},
	}
}

// loadCredentials fetches the cached identity for prefill.
func (s *Screen) loadCredentials() tea.Cmd {
	return func() tea.Msg {
		creds, ok, err := s.st.LoadCredentials(context.Background())
		if err != nil {
			return credentialsMsg{}
		}
		return credentialsMsg{creds: creds, ok: ok}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case credentialsMsg:
		if msg.ok {
			if s.name.Value() == "" {
				s.name.SetValue(msg.creds.Name)
			}
			if s.email.Value() == "" {
				s.email.SetValue(msg.creds.Email)
			}
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			return s, s.toggleFocus()
		case "enter":
			return s.begin()
		}
	}

	var cmd tea.Cmd
	if s.focused == 0 {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.email, cmd = s.email.Update(msg)
	}
	return s, cmd
}

func (s *Screen) toggleFocus() tea.Cmd {
	if s.focused == 0 {
		s.focused = 1
		s.name.Blur()
		return s.email.Focus()
	}
	s.focused = 0
	s.email.Blur()
	return s.name.Focus()
}

// begin validates the form, caches credentials, and replaces this screen
// with the exam.
func (s *Screen) begin() (screen.Screen, tea.Cmd) {
	name := strings.TrimSpace(s.name.Value())
	email := strings.TrimSpace(s.email.Value())

	if name == "" {
		s.errMsg = "Name is required"
		return s, nil
	}
	if email == "" || !strings.Contains(email, "@") {
		s.errMsg = "A valid email is required"
		return s, nil
	}

	_ = s.st.SaveCredentials(context.Background(), store.Credentials{Name: name, Email: email})

	ex := exam.New(s.st, s.cfg, s.bank, name, email, s.practice)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: ex} }
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Before you begin"))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	form := label.Render("Name ") + s.name.View() + "\n\n" +
		label.Render("Email") + " " + s.email.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render(s.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}
