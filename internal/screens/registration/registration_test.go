package registration

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/config"
	"github.com/adube/examterm/internal/router"
	"github.com/adube/examterm/internal/store"
)

func testScreen(t *testing.T) *Screen {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "reg.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	bank := []aiken.Question{
		{ID: "q1", Text: "x?", Options: []string{"A. 1", "B. 2"}, CorrectAnswer: 0, Difficulty: aiken.TierMedium, TimeLimit: 30, Topic: "general"},
	}
	return New(st, config.Default(), bank, false)
}

func TestRegistration_EmptyNameRejected(t *testing.T) {
	s := testScreen(t)
	scr, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = scr.(*Screen)

	if cmd != nil {
		t.Error("expected no navigation without a name")
	}
	if s.errMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestRegistration_BadEmailRejected(t *testing.T) {
	s := testScreen(t)
	s.name.SetValue("Ada")
	s.email.SetValue("not-an-email")

	scr, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = scr.(*Screen)

	if cmd != nil {
		t.Error("expected no navigation with a bad email")
	}
	if s.errMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestRegistration_ValidFormStartsExam(t *testing.T) {
	s := testScreen(t)
	s.name.SetValue("Ada")
	s.email.SetValue("ada@example.com")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("expected the exam screen")
	}

	// Credentials are cached for the next run.
	creds, found, err := s.st.LoadCredentials(t.Context())
	if err != nil {
		t.Fatalf("load credentials: %v", err)
	}
	if !found || creds.Name != "Ada" || creds.Email != "ada@example.com" {
		t.Errorf("cached credentials = %+v found=%v", creds, found)
	}
}

func TestRegistration_PrefillDoesNotClobberTyped(t *testing.T) {
	s := testScreen(t)
	s.name.SetValue("Grace")

	scr, _ := s.Update(credentialsMsg{creds: store.Credentials{Name: "Ada", Email: "ada@example.com"}, ok: true})
	s = scr.(*Screen)

	if s.name.Value() != "Grace" {
		t.Errorf("name = %q, want typed value preserved", s.name.Value())
	}
	if s.email.Value() != "ada@example.com" {
		t.Errorf("email = %q, want prefilled", s.email.Value())
	}
}

func TestRegistration_EscPopsBack(t *testing.T) {
	s := testScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
