package aiken

import "strings"

// Tier is a question difficulty classification.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// ParseTier normalizes a difficulty string to a Tier. Unknown values map to
// TierMedium so downstream pooling never sees an unclassified question.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierEasy:
		return TierEasy
	case TierHard:
		return TierHard
	default:
		return TierMedium
	}
}

// Escalate returns the next tier up. TierHard stays TierHard.
func (t Tier) Escalate() Tier {
	switch t {
	case TierEasy:
		return TierMedium
	default:
		return TierHard
	}
}

// DeEscalate returns the next tier down. TierEasy stays TierEasy.
func (t Tier) DeEscalate() Tier {
	switch t {
	case TierHard:
		return TierMedium
	default:
		return TierEasy
	}
}

// Question is a single parsed multiple-choice question. Instances are created
// by Parse and never mutated afterwards.
type Question struct {
	// ID is a unique identifier minted at parse time.
	ID string

	// Text is the prompt with any image markup stripped.
	Text string

	// Options holds the option lines verbatim, including the "A." prefix.
	// The slice index is the canonical answer key.
	Options []string

	// CorrectAnswer is the index into Options of the correct option.
	CorrectAnswer int

	// Difficulty is the question's tier.
	Difficulty Tier

	// TimeLimit is the per-question countdown in whole seconds.
	TimeLimit int

	// Topic is a free-form topic label.
	Topic string

	// HasLatex reports whether the prompt contains inline math markers.
	HasLatex bool

	// HasImage reports whether the prompt carried an image reference.
	HasImage bool

	// ImageURL is the extracted image URL when HasImage is true.
	ImageURL string
}

// Report summarizes a single Parse call for diagnostics.
type Report struct {
	// Emitted is the number of valid questions produced.
	Emitted int

	// Dropped is the number of malformed blocks discarded.
	Dropped int
}
