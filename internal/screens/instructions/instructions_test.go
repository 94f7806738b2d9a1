package instructions

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/config"
	"github.com/adube/examterm/internal/router"
	"github.com/adube/examterm/internal/screens/exam"
	"github.com/adube/examterm/internal/session"
	"github.com/adube/examterm/internal/stats"
)

func testScreen() *Screen {
	bank := []aiken.Question{
		{ID: "q1", Text: "x?", Options: []string{"A. 1", "B. 2"}, CorrectAnswer: 0, Difficulty: aiken.TierMedium, TimeLimit: 30, Topic: "general"},
	}
	return New(nil, config.Default(), bank, aiken.Report{Emitted: 1, Dropped: 2})
}

func TestInstructions_ViewMentionsBankAndDrops(t *testing.T) {
	s := testScreen()
	view := s.View(100, 30)
	if !strings.Contains(view, "1 questions") {
		t.Error("expected the bank size in the view")
	}
	if !strings.Contains(view, "2 malformed blocks") {
		t.Error("expected the malformed-block tally in the view")
	}
}

func TestInstructions_EnterPushesRegistration(t *testing.T) {
	s := testScreen()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("expected a pushed screen")
	}
}

func TestInstructions_NilStoreSkipsProgressLoad(t *testing.T) {
	s := testScreen()
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no init command without a store")
	}
}

func TestInstructions_ResumeOfferedForSavedSession(t *testing.T) {
	s := testScreen()
	saved := session.Start("Ada", "ada@example.com", stats.UserStats{}, s.bank, time.Now())

	scr, _ := s.Update(progressMsg{saved: saved})
	s = scr.(*Screen)

	modes := s.modes()
	if len(modes) != 3 || modes[0] != modeResume {
		t.Fatalf("modes = %v, want resume first", modes)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Unfinished test found for Ada") {
		t.Error("expected the saved-session notice in the view")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*exam.Screen); !ok {
		t.Errorf("resume pushed %T, want the exam screen", msg.Screen)
	}
}

func TestInstructions_ModeSelection(t *testing.T) {
	s := testScreen()
	scr, _ := s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s = scr.(*Screen)
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	scr, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s = scr.(*Screen)
	if s.selected != 1 {
		t.Errorf("selected = %d after extra down, want clamp at 1", s.selected)
	}
}
