// Package export projects a finished session into the downloadable result
// artifact. The artifact is a pure function of its inputs; building it never
// changes session state.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/session"
	"github.com/adube/examterm/internal/stats"
)

// AnswerRecord is one per-question entry in the artifact.
type AnswerRecord struct {
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// Artifact is the exported result document.
type Artifact struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Score     string          `json:"score"`
	TimeSpent int64           `json:"timeSpent"` // milliseconds
	Answers   []AnswerRecord  `json:"answers"`
	Stats     stats.UserStats `json:"stats"`
}

// Build assembles the artifact from the administered questions, the finished
// session, and the folded statistics. Timed-out or unanswered questions
// export an empty selection and count as incorrect.
func Build(questions []aiken.Question, sess *session.Session, st stats.UserStats) Artifact {
	res := sess.Complete()

	answers := make([]AnswerRecord, 0, len(questions))
	for _, q := range questions {
		rec := AnswerRecord{
			Question:      q.Text,
			CorrectAnswer: q.Options[q.CorrectAnswer],
		}
		if sel, ok := sess.Answers[q.ID]; ok && sel >= 0 && sel < len(q.Options) {
			rec.SelectedAnswer = q.Options[sel]
			rec.IsCorrect = sel == q.CorrectAnswer
		}
		answers = append(answers, rec)
	}

	return Artifact{
		Name:      sess.Name,
		Email:     sess.Email,
		Score:     fmt.Sprintf("%d/%d (%d%%)", res.CorrectCount, res.Total, res.ScorePercent),
		TimeSpent: res.TimeTaken.Milliseconds(),
		Answers:   answers,
		Stats:     st,
	}
}

// Write marshals the artifact indented and writes it to path.
func Write(path string, a Artifact) error {
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
