package session

import (
	"testing"
	"time"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/stats"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func bank(n int) []aiken.Question {
	qs := make([]aiken.Question, n)
	for i := range qs {
		qs[i] = aiken.Question{
			ID:            string(rune('a' + i)),
			Text:          "q",
			Options:       []string{"A. x", "B. y", "C. z"},
			CorrectAnswer: 1,
			Difficulty:    aiken.TierMedium,
			TimeLimit:     60,
		}
	}
	return qs
}

func TestStart_Defaults(t *testing.T) {
	s := Start("Ada", "ada@example.com", stats.UserStats{}, bank(3), t0)

	if s.State != StateInProgress {
		t.Errorf("State = %v, want in-progress", s.State)
	}
	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.CurrentIndex)
	}
	if len(s.Answers) != 0 || len(s.TimeSpent) != 0 {
		t.Error("answer maps not empty at start")
	}
	if s.Difficulty != aiken.TierMedium {
		t.Errorf("Difficulty = %s, want medium", s.Difficulty)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, want 0", s.Score)
	}
	if !s.Stats.LastTestDate.Equal(t0) {
		t.Errorf("LastTestDate = %v, want %v", s.Stats.LastTestDate, t0)
	}
}

func TestStart_StreakRules(t *testing.T) {
	tests := []struct {
		name string
		last time.Time
		prev int
		want int
	}{
		{"within 24h extends", t0.Add(-23 * time.Hour), 3, 4},
		{"exactly 24h extends", t0.Add(-24 * time.Hour), 3, 4},
		{"beyond 24h resets", t0.Add(-25 * time.Hour), 3, 1},
		{"first test ever", time.Time{}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := stats.UserStats{Streak: tt.prev, LastTestDate: tt.last}
			s := Start("Ada", "a@b.c", base, bank(1), t0)
			if s.Stats.Streak != tt.want {
				t.Errorf("Streak = %d, want %d", s.Stats.Streak, tt.want)
			}
		})
	}
}

func TestSubmit_AdvancesAndRecords(t *testing.T) {
	qs := bank(2)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)

	status := s.Submit(qs[0].ID, 1, t0.Add(10*time.Second))
	if status != SubmitOK {
		t.Fatalf("status = %v, want ok", status)
	}
	if s.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", s.CurrentIndex)
	}
	if s.Answers[qs[0].ID] != 1 {
		t.Errorf("answer = %d, want 1", s.Answers[qs[0].ID])
	}
	if s.TimeSpent[qs[0].ID] != 10*time.Second {
		t.Errorf("timeSpent = %v, want 10s", s.TimeSpent[qs[0].ID])
	}
}

func TestSubmit_RejectsWrongQuestion(t *testing.T) {
	qs := bank(3)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)

	status := s.Submit(qs[2].ID, 0, t0)
	if status != SubmitWrongQuestion {
		t.Fatalf("status = %v, want wrong-question", status)
	}
	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex moved to %d on rejected submit", s.CurrentIndex)
	}
	if len(s.Answers) != 0 {
		t.Error("answer recorded on rejected submit")
	}
}

func TestSubmit_RejectsStaleQuestion(t *testing.T) {
	// A timeout firing for an already-answered question must be discarded.
	qs := bank(2)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)

	if st := s.Submit(qs[0].ID, 2, t0); st != SubmitOK {
		t.Fatalf("first submit: %v", st)
	}
	if st := s.RecordTimeout(qs[0].ID, t0.Add(time.Minute)); st != SubmitWrongQuestion {
		t.Errorf("stale timeout status = %v, want wrong-question", st)
	}
	if s.Answers[qs[0].ID] != 2 {
		t.Errorf("stale timeout overwrote answer: %d", s.Answers[qs[0].ID])
	}
}

func TestSubmit_RejectedAfterComplete(t *testing.T) {
	qs := bank(1)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)
	s.Submit(qs[0].ID, 1, t0)
	s.Complete()

	if st := s.Submit(qs[0].ID, 0, t0); st != SubmitNotInProgress {
		t.Errorf("status = %v, want not-in-progress", st)
	}
}

func TestRecordTimeout_StoresSentinel(t *testing.T) {
	qs := bank(1)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)

	if st := s.RecordTimeout(qs[0].ID, t0.Add(time.Minute)); st != SubmitOK {
		t.Fatalf("status = %v, want ok", st)
	}
	if s.Answers[qs[0].ID] != TimeoutAnswer {
		t.Errorf("answer = %d, want sentinel %d", s.Answers[qs[0].ID], TimeoutAnswer)
	}
}

func TestRegisterVisibilityLoss(t *testing.T) {
	s := Start("Ada", "a@b.c", stats.UserStats{}, bank(3), t0)

	for i := 1; i <= 2; i++ {
		n, force := s.RegisterVisibilityLoss(DefaultMaxWarnings)
		if n != i || force {
			t.Errorf("warning %d: count=%d force=%v", i, n, force)
		}
	}

	n, force := s.RegisterVisibilityLoss(DefaultMaxWarnings)
	if n != 3 || !force {
		t.Errorf("third warning: count=%d force=%v, want 3/true", n, force)
	}

	// Warnings do not accrue after completion.
	s.Complete()
	n, force = s.RegisterVisibilityLoss(DefaultMaxWarnings)
	if n != 3 || force {
		t.Errorf("post-complete warning: count=%d force=%v", n, force)
	}
}

func TestComplete_ScoresAndIsIdempotent(t *testing.T) {
	qs := bank(4)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)

	s.Submit(qs[0].ID, 1, t0.Add(5*time.Second))  // correct
	s.Submit(qs[1].ID, 0, t0.Add(10*time.Second)) // wrong
	s.Submit(qs[2].ID, 1, t0.Add(15*time.Second)) // correct
	s.RecordTimeout(qs[3].ID, t0.Add(20*time.Second))

	res := s.Complete()
	if res.CorrectCount != 2 || res.Total != 4 {
		t.Errorf("correct = %d/%d, want 2/4", res.CorrectCount, res.Total)
	}
	if res.ScorePercent != 50 {
		t.Errorf("ScorePercent = %d, want 50", res.ScorePercent)
	}
	if res.TimeTaken != 50*time.Second {
		t.Errorf("TimeTaken = %v, want 50s", res.TimeTaken)
	}
	if s.State != StateCompleted {
		t.Errorf("State = %v, want completed", s.State)
	}

	again := s.Complete()
	if again != res {
		t.Errorf("Complete not idempotent: %+v vs %+v", again, res)
	}
}

func TestComplete_ZeroQuestions(t *testing.T) {
	s := Start("Ada", "a@b.c", stats.UserStats{}, nil, t0)
	res := s.Complete()
	if res.ScorePercent != 0 || res.CorrectCount != 0 || res.Total != 0 {
		t.Errorf("result = %+v, want zeros", res)
	}
}

func TestComplete_ForcedScoresAnsweredOnly(t *testing.T) {
	qs := bank(3)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)
	s.Submit(qs[0].ID, 1, t0.Add(time.Second))

	res := s.Complete()
	if res.CorrectCount != 1 || res.Total != 3 {
		t.Errorf("correct = %d/%d, want 1/3", res.CorrectCount, res.Total)
	}
	if res.ScorePercent != 33 {
		t.Errorf("ScorePercent = %d, want 33", res.ScorePercent)
	}
}

func TestIsComplete(t *testing.T) {
	qs := bank(1)
	s := Start("Ada", "a@b.c", stats.UserStats{}, qs, t0)
	if s.IsComplete() {
		t.Error("IsComplete = true before answering")
	}
	s.Submit(qs[0].ID, 0, t0)
	if !s.IsComplete() {
		t.Error("IsComplete = false after final answer")
	}
}
