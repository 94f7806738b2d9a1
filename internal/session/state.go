package session

import (
	"time"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/stats"
)

// State is the lifecycle position of a session.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return "not-started"
	}
}

// TimeoutAnswer is the sentinel stored when a question's countdown expires
// without a selection.
const TimeoutAnswer = -1

// DefaultMaxWarnings is the integrity-warning count that forces completion.
const DefaultMaxWarnings = 3

// Session is the mutable record for one in-progress test. The answer and
// time maps never contain entries for questions at or beyond CurrentIndex,
// and CurrentIndex only increases. A retake constructs a new Session.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// Questions is the ordered set being administered.
	Questions []aiken.Question `json:"questions"`

	// CurrentIndex is the 0-based position of the question being asked.
	CurrentIndex int `json:"currentQuestionIndex"`

	// Answers maps question id to the selected option index, or
	// TimeoutAnswer when the countdown expired.
	Answers map[string]int `json:"answers"`

	// TimeSpent maps question id to elapsed time since session start when
	// the answer was recorded. This is cumulative elapsed time, not a true
	// per-question duration.
	TimeSpent map[string]time.Duration `json:"timeSpent"`

	StartTime  time.Time       `json:"startTime"`
	Difficulty aiken.Tier      `json:"difficulty"`
	Score      int             `json:"score"`
	Warnings   int             `json:"warnings"`
	State      State           `json:"state"`
	Stats      stats.UserStats `json:"stats"`

	result *Result
}

// SubmitStatus reports the outcome of a submission attempt.
type SubmitStatus int

const (
	// SubmitOK means the answer was recorded and the index advanced.
	SubmitOK SubmitStatus = iota

	// SubmitNotInProgress means the session is already completed (or was
	// never started); the submission was ignored.
	SubmitNotInProgress

	// SubmitWrongQuestion means the question id does not match the current
	// question; out-of-order submissions are never accepted.
	SubmitWrongQuestion
)

func (s SubmitStatus) String() string {
	switch s {
	case SubmitOK:
		return "ok"
	case SubmitNotInProgress:
		return "not-in-progress"
	default:
		return "wrong-question"
	}
}

// Result is the terminal outcome of a session.
type Result struct {
	CorrectCount int           `json:"correctCount"`
	Total        int           `json:"total"`
	ScorePercent int           `json:"scorePercent"`
	TimeTaken    time.Duration `json:"timeTaken"`
}
