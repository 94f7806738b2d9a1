package exam

import (
	sess "github.com/adube/examterm/internal/session"
)

// examInitMsg is sent when stats loading and question selection finish.
type examInitMsg struct {
	Session *sess.Session
	Err     error
}

// timerTickMsg is the per-second countdown tick. It is keyed to a question
// so a tick raced past an answer or a batch change is discarded instead of
// draining the next question's clock.
type timerTickMsg struct {
	QuestionID string
}

// feedbackDoneMsg ends the post-answer feedback display. Keyed to the
// answered question so a stale delay never advances a forcibly completed
// session.
type feedbackDoneMsg struct {
	QuestionID string
}
