// Package exam administers the test: it drives the per-question countdown,
// records answers and timeouts, counts integrity warnings on terminal focus
// loss, and hands the finished session to the results screen.
package exam

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/adube/examterm/internal/adaptive"
	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/badges"
	"github.com/adube/examterm/internal/config"
	"github.com/adube/examterm/internal/export"
	"github.com/adube/examterm/internal/router"
	"github.com/adube/examterm/internal/screen"
	"github.com/adube/examterm/internal/screens/results"
	sess "github.com/adube/examterm/internal/session"
	"github.com/adube/examterm/internal/stats"
	"github.com/adube/examterm/internal/store"
	"github.com/adube/examterm/internal/ui/components"
	"github.com/adube/examterm/internal/ui/layout"
)

// feedback snapshots the question that was just answered. Submit advances
// the session index immediately, so the view renders from this snapshot
// until the feedback delay ends; otherwise the upcoming prompt would leak
// into the feedback window.
type feedback struct {
	question aiken.Question
	number   int // 1-based position among the session's questions
	selected int
	timedOut bool
	correct  bool
}

// Screen runs one test session.
type Screen struct {
	st       *store.Store
	cfg      config.Config
	bank     []aiken.Question
	name     string
	email    string
	practice bool

	resume     *sess.Session
	session    *sess.Session
	seq        *adaptive.Sequencer
	batchStart int // index of the first question in the current batch
	remaining  int // seconds left on the current question
	choices    components.ChoiceList

	showingFeedback    bool
	fb                 feedback
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.HeaderStatsProvider = (*Screen)(nil)

// New creates an exam screen. The session itself is built in Init so the
// stats read happens off the first render.
func New(st *store.Store, cfg config.Config, bank []aiken.Question, name, email string, practice bool) *Screen {
	return &Screen{
		st:       st,
		cfg:      cfg,
		bank:     bank,
		name:     name,
		email:    email,
		practice: practice,
	}
}

// Resume creates an exam screen that continues a saved in-flight session
// instead of starting a fresh one.
func Resume(st *store.Store, cfg config.Config, bank []aiken.Question, saved *sess.Session) *Screen {
	return &Screen{
		st:     st,
		cfg:    cfg,
		bank:   bank,
		name:   saved.Name,
		email:  saved.Email,
		resume: saved,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.initExam()
}

func (s *Screen) Title() string {
	if s.practice {
		return "Practice"
	}
	return "Test"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End test"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D/↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "End test"},
	}
}

// HeaderStats feeds the header's streak and warning readouts.
func (s *Screen) HeaderStats() (int, int, int) {
	if s.session == nil {
		return 0, 0, s.cfg.MaxWarnings
	}
	return s.session.Stats.Streak, s.session.Warnings, s.cfg.MaxWarnings
}

// initExam loads prior stats and selects the opening questions, or rebuilds
// the adaptive state around a saved session when resuming.
func (s *Screen) initExam() tea.Cmd {
	return func() tea.Msg {
		if s.resume != nil {
			s.seq = adaptive.NewSequencer(adaptive.BuildPool(s.bank), s.resume.Difficulty, s.cfg.BatchSize)
			s.seq.MarkSeen(s.resume.Questions)
			s.batchStart = s.resume.CurrentIndex
			return examInitMsg{Session: s.resume}
		}

		base, err := s.st.LoadStats(context.Background())
		if err != nil {
			return examInitMsg{Err: err}
		}

		var opening []aiken.Question
		if s.practice {
			subset := s.bank
			if len(subset) > s.cfg.PracticeCount {
				subset = subset[:s.cfg.PracticeCount]
			}
			opening = adaptive.Shuffle(subset)
		} else {
			s.seq = adaptive.NewSequencer(adaptive.BuildPool(s.bank), aiken.TierMedium, s.cfg.BatchSize)
			opening = s.seq.NextBatch(0.5)
		}
		if len(opening) == 0 {
			return examInitMsg{Err: errors.New("question bank is empty")}
		}

		session := sess.Start(s.name, s.email, base, opening, time.Now())
		return examInitMsg{Session: session}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examInitMsg:
		return s.handleInit(msg)

	case timerTickMsg:
		return s.handleTick(msg)

	case feedbackDoneMsg:
		return s.handleFeedbackDone(msg)

	case tea.BlurMsg:
		return s.handleBlur()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *Screen) handleInit(msg examInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.session = msg.Session
	s.saveProgress()
	return s, s.startQuestion()
}

// startQuestion arms the countdown and choice list for the current question.
func (s *Screen) startQuestion() tea.Cmd {
	q, ok := s.session.CurrentQuestion()
	if !ok {
		return s.finish()
	}
	s.remaining = q.TimeLimit
	if s.remaining < 1 {
		s.remaining = 1
	}
	s.choices = components.NewChoiceList(q.Options)
	return tickCmd(q.ID)
}

func (s *Screen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Completed() || s.showingFeedback || s.errMsg != "" {
		return s, nil
	}
	q, ok := s.session.CurrentQuestion()
	if !ok || q.ID != msg.QuestionID {
		// Stale tick from a question that has already been answered.
		return s, nil
	}

	s.remaining--
	if s.remaining > 0 {
		return s, tickCmd(q.ID)
	}

	if s.session.RecordTimeout(q.ID, time.Now()) != sess.SubmitOK {
		return s, nil
	}
	s.saveProgress()
	s.showFeedback(feedback{
		question: q,
		number:   s.session.CurrentIndex,
		selected: sess.TimeoutAnswer,
		timedOut: true,
	})
	return s, s.feedbackCmd(q.ID)
}

// submit records the highlighted (or letter-picked) choice.
func (s *Screen) submit(choice int) (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, nil
	}
	q, ok := s.session.CurrentQuestion()
	if !ok || choice < 0 || choice >= len(q.Options) {
		return s, nil
	}
	if s.session.Submit(q.ID, choice, time.Now()) != sess.SubmitOK {
		return s, nil
	}

	s.saveProgress()
	s.showFeedback(feedback{
		question: q,
		number:   s.session.CurrentIndex,
		selected: choice,
		correct:  choice == q.CorrectAnswer,
	})
	return s, s.feedbackCmd(q.ID)
}

func (s *Screen) showFeedback(fb feedback) {
	s.showingFeedback = true
	s.fb = fb
}

func (s *Screen) handleFeedbackDone(msg feedbackDoneMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || !s.showingFeedback {
		return s, nil
	}
	if msg.QuestionID != s.fb.question.ID {
		// Stale delay from a question whose feedback is no longer showing.
		return s, nil
	}
	// A forced completion may have raced the feedback delay.
	if s.session.Completed() {
		return s, nil
	}
	s.showingFeedback = false

	if !s.session.IsComplete() {
		return s, s.startQuestion()
	}

	// Batch exhausted: pull the next adaptive batch, or finish.
	if s.seq != nil {
		batch := s.session.Questions[s.batchStart:]
		next := s.seq.NextBatch(s.session.CorrectRatio(batch))
		if len(next) > 0 {
			s.batchStart = len(s.session.Questions)
			s.session.Extend(next)
			s.session.Difficulty = s.seq.Tier()
			s.saveProgress()
			return s, s.startQuestion()
		}
	}

	return s, s.finish()
}

func (s *Screen) handleBlur() (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Completed() {
		return s, nil
	}
	_, force := s.session.RegisterVisibilityLoss(s.cfg.MaxWarnings)
	s.saveProgress()
	if force {
		return s, s.finish()
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.session == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, s.finish()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		return s.submit(s.choices.Selected)
	}

	// Direct selection: the option's leading letter submits immediately.
	// Letters past the option count fall through so j/k still navigate.
	if len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		if idx := int(key[0] - 'a'); idx < len(s.choices.Options) {
			return s.submit(idx)
		}
	}

	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

// finish folds the session into persistent stats, evaluates badges, stores
// the result artifact, and swaps in the results screen. Safe to reach from
// normal exhaustion, forced completion, and early quit alike.
func (s *Screen) finish() tea.Cmd {
	res := s.session.Complete()
	ctx := context.Background()

	folded := s.session.Stats
	var newAch []stats.Achievement
	if !s.practice {
		folded = stats.Fold(s.session.Stats, res.ScorePercent, res.TimeTaken)
		newAch = badges.Evaluate(folded, time.Now())
		folded.Achievements = append(folded.Achievements, newAch...)
		_ = s.st.SaveStats(ctx, folded)
	}
	_ = s.st.ClearProgress(ctx)

	artifact := export.Build(s.session.Questions, s.session, folded)
	_ = s.st.Save(ctx, store.KeyLastResult, artifact)

	retake := func() screen.Screen {
		return New(s.st, s.cfg, s.bank, s.name, s.email, s.practice)
	}
	resultsScreen := results.New(s.session, res, folded, newAch, artifact, s.cfg.MaxWarnings, retake)

	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: resultsScreen}
	}
}

// saveProgress persists the in-flight session, fire-and-forget.
func (s *Screen) saveProgress() {
	_ = s.st.Save(context.Background(), store.KeyProgress, s.session)
}

// tickCmd schedules the next countdown tick for a specific question.
func tickCmd(questionID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{QuestionID: questionID}
	})
}

// feedbackCmd schedules the end of the feedback display.
func (s *Screen) feedbackCmd(questionID string) tea.Cmd {
	return tea.Tick(s.cfg.FeedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{QuestionID: questionID}
	})
}
