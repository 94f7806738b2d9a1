// Package session owns the test lifecycle: start, per-question answer or
// timeout, integrity warnings, and completion. All transitions happen on the
// host event loop; no locking is needed.
package session

import (
	"math"
	"time"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/stats"

	"github.com/google/uuid"
)

// StreakWindow is the maximum gap between tests that keeps a day-streak
// alive.
const StreakWindow = 24 * time.Hour

// Start creates an InProgress session over the ordered questions. The carried
// stats snapshot has its streak recomputed: a test within StreakWindow of the
// last one extends the streak, otherwise it resets to 1. LastTestDate is
// stamped here, not at completion.
func Start(name, email string, base stats.UserStats, questions []aiken.Question, now time.Time) *Session {
	if now.Sub(base.LastTestDate) <= StreakWindow {
		base.Streak++
	} else {
		base.Streak = 1
	}
	base.LastTestDate = now

	return &Session{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Questions:  questions,
		Answers:    make(map[string]int),
		TimeSpent:  make(map[string]time.Duration),
		StartTime:  now,
		Difficulty: aiken.TierMedium,
		State:      StateInProgress,
		Stats:      base,
	}
}

// CurrentQuestion returns the question at the current index, or false when
// the list is exhausted.
func (s *Session) CurrentQuestion() (aiken.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return aiken.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Submit records an answer for the current question and advances the index.
// The submission is rejected when the session is not in progress or when
// questionID is not the current question (a stale timer or an out-of-order
// event); rejection never changes session state.
func (s *Session) Submit(questionID string, choice int, now time.Time) SubmitStatus {
	if s.State != StateInProgress {
		return SubmitNotInProgress
	}
	cur, ok := s.CurrentQuestion()
	if !ok || cur.ID != questionID {
		return SubmitWrongQuestion
	}

	s.Answers[cur.ID] = choice
	s.TimeSpent[cur.ID] = now.Sub(s.StartTime)
	s.CurrentIndex++
	return SubmitOK
}

// RecordTimeout is Submit with the timeout sentinel; it fires when the
// question's countdown reaches zero without a selection.
func (s *Session) RecordTimeout(questionID string, now time.Time) SubmitStatus {
	return s.Submit(questionID, TimeoutAnswer, now)
}

// RegisterVisibilityLoss counts one integrity warning, taken whenever the
// test surface loses visibility while the session is in progress. The
// counter never decrements. It returns the new count and whether the
// maxWarnings threshold was reached, which forces completion.
func (s *Session) RegisterVisibilityLoss(maxWarnings int) (int, bool) {
	if s.State != StateInProgress {
		return s.Warnings, false
	}
	s.Warnings++
	return s.Warnings, s.Warnings >= maxWarnings
}

// IsComplete reports whether every question has been answered or timed out.
func (s *Session) IsComplete() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// Complete transitions the session to Completed and returns the final
// result. It is idempotent: repeated calls return the same result and never
// re-score. A forced completion (integrity threshold) scores only what was
// answered.
func (s *Session) Complete() Result {
	if s.result != nil {
		return *s.result
	}

	correct := 0
	for _, q := range s.Questions {
		if ans, ok := s.Answers[q.ID]; ok && ans == q.CorrectAnswer {
			correct++
		}
	}

	percent := 0
	if len(s.Questions) > 0 {
		percent = int(math.Round(float64(correct) / float64(len(s.Questions)) * 100))
	}

	var total time.Duration
	for _, d := range s.TimeSpent {
		total += d
	}

	s.State = StateCompleted
	s.Score = percent
	s.result = &Result{
		CorrectCount: correct,
		Total:        len(s.Questions),
		ScorePercent: percent,
		TimeTaken:    total,
	}
	return *s.result
}

// Completed reports whether Complete has been called.
func (s *Session) Completed() bool {
	return s.State == StateCompleted
}

// Extend appends the next adaptive batch to the question list. It is a
// no-op once the session has completed.
func (s *Session) Extend(batch []aiken.Question) {
	if s.State != StateInProgress {
		return
	}
	s.Questions = append(s.Questions, batch...)
}

// CorrectRatio returns the fraction of the given questions answered
// correctly, used as the rolling score for adaptive selection. Questions
// without a recorded answer count as wrong. Returns 0 for an empty slice.
func (s *Session) CorrectRatio(questions []aiken.Question) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for _, q := range questions {
		if ans, ok := s.Answers[q.ID]; ok && ans == q.CorrectAnswer {
			correct++
		}
	}
	return float64(correct) / float64(len(questions))
}
