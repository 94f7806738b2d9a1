// Package aiken parses question banks written in the line-oriented
// Aiken-like markup: a prompt line, option lines ("A. ..."), an
// "ANSWER: X" line closing the block, and optional DIFFICULTY/TIME/TOPIC
// directives. Multi-line prompts are not supported; only the last prompt
// line before ANSWER is kept.
package aiken

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultTimeLimit is used when a block carries no TIME directive
	// or the directive value is unparsable.
	DefaultTimeLimit = 60

	// DefaultTopic is used when a block carries no TOPIC directive.
	DefaultTopic = "general"
)

var (
	optionRe = regexp.MustCompile(`^[A-Z]\.`)
	imageRe  = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)
)

// block accumulates directive and option state for one question while it is
// being parsed. Directives may appear before or after the ANSWER line; the
// block is flushed when the next block begins or input ends.
type block struct {
	text    string
	options []string
	correct int
	closed  bool

	difficulty Tier
	hasDiff    bool
	timeLimit  int
	hasTime    bool
	topic      string
	hasTopic   bool
}

func newBlock() *block {
	return &block{correct: -1}
}

func (b *block) empty() bool {
	return b.text == "" && len(b.options) == 0 && !b.closed
}

// Parse converts raw Aiken-like markup into questions. Malformed blocks
// (fewer than two options, no prompt text, or an ANSWER token matching no
// option) are dropped and counted in the report; Parse never fails.
func Parse(raw string) ([]Question, Report) {
	var (
		questions []Question
		report    Report
		cur       = newBlock()
	)

	flush := func() {
		if cur.empty() {
			cur = newBlock()
			return
		}
		if q, ok := cur.emit(); ok {
			questions = append(questions, q)
			report.Emitted++
		} else {
			report.Dropped++
		}
		cur = newBlock()
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "ANSWER:"):
			if cur.closed {
				flush()
			}
			token := strings.TrimSpace(strings.TrimPrefix(line, "ANSWER:"))
			cur.correct = findOption(cur.options, token)
			cur.closed = true

		case strings.HasPrefix(line, "DIFFICULTY:"):
			cur.difficulty = ParseTier(strings.TrimPrefix(line, "DIFFICULTY:"))
			cur.hasDiff = true

		case strings.HasPrefix(line, "TIME:"):
			v := strings.TrimSpace(strings.TrimPrefix(line, "TIME:"))
			if n, err := strconv.Atoi(v); err == nil {
				cur.timeLimit = n
				cur.hasTime = true
			}

		case strings.HasPrefix(line, "TOPIC:"):
			cur.topic = strings.TrimSpace(strings.TrimPrefix(line, "TOPIC:"))
			cur.hasTopic = true

		case optionRe.MatchString(line):
			if cur.closed {
				flush()
			}
			cur.options = append(cur.options, line)

		default:
			if cur.closed {
				flush()
			}
			// Later prompt lines overwrite earlier ones.
			cur.text = line
		}
	}
	flush()

	return questions, report
}

// emit validates the block and builds the Question. A block qualifies only
// when it was closed by ANSWER, has prompt text, at least two options, and a
// resolved correct index.
func (b *block) emit() (Question, bool) {
	if !b.closed || b.text == "" || len(b.options) < 2 || b.correct < 0 {
		return Question{}, false
	}

	q := Question{
		ID:            uuid.New().String(),
		Text:          b.text,
		Options:       b.options,
		CorrectAnswer: b.correct,
		Difficulty:    TierMedium,
		TimeLimit:     DefaultTimeLimit,
		Topic:         DefaultTopic,
	}
	if b.hasDiff {
		q.Difficulty = b.difficulty
	}
	if b.hasTime {
		q.TimeLimit = b.timeLimit
	}
	if b.hasTopic {
		q.Topic = b.topic
	}

	q.HasLatex = strings.Contains(q.Text, "$") || strings.Contains(q.Text, `\(`)

	if m := imageRe.FindStringSubmatch(q.Text); m != nil {
		q.ImageURL = m[1]
		q.HasImage = true
		q.Text = strings.TrimSpace(imageRe.ReplaceAllString(q.Text, ""))
	}

	return q, true
}

// findOption returns the index of the option whose text starts with
// "<token>.", or -1 if no option matches.
func findOption(options []string, token string) int {
	for i, opt := range options {
		if strings.HasPrefix(opt, token+".") {
			return i
		}
	}
	return -1
}
