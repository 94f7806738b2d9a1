package adaptive

import "github.com/adube/examterm/internal/aiken"

const (
	// EscalateRatio is the recent-score ratio at or above which the next
	// batch moves one tier up.
	EscalateRatio = 0.8

	// DeEscalateRatio is the recent-score ratio at or below which the next
	// batch moves one tier down.
	DeEscalateRatio = 0.4
)

// NextTier applies the adaptive tier rule to a recent score ratio.
func NextTier(current aiken.Tier, ratio float64) aiken.Tier {
	switch {
	case ratio >= EscalateRatio:
		return current.Escalate()
	case ratio <= DeEscalateRatio:
		return current.DeEscalate()
	default:
		return current
	}
}

// SelectAdaptive picks at most count questions for the next batch. The tier
// is adjusted from current by the recent score ratio, then the resulting
// bucket is shuffled and truncated. The pool's stored slices are not mutated.
func SelectAdaptive(pool Pool, current aiken.Tier, ratio float64, count int) []aiken.Question {
	tier := NextTier(current, ratio)
	batch := Shuffle(pool[tier])
	if len(batch) > count {
		batch = batch[:count]
	}
	return batch
}

// Sequencer produces successive adaptive batches over a pool, never
// repeating a question within one test.
type Sequencer struct {
	pool      Pool
	tier      aiken.Tier
	batchSize int
	used      map[string]bool
}

// NewSequencer creates a Sequencer starting at the given tier.
func NewSequencer(pool Pool, start aiken.Tier, batchSize int) *Sequencer {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Sequencer{
		pool:      pool,
		tier:      start,
		batchSize: batchSize,
		used:      make(map[string]bool),
	}
}

// Tier returns the tier the next batch will draw from before adjustment.
func (s *Sequencer) Tier() aiken.Tier {
	return s.tier
}

// MarkSeen excludes pool questions already served to a resumed session.
// Question ids are minted fresh on every parse, so matching is by prompt
// text rather than id.
func (s *Sequencer) MarkSeen(served []aiken.Question) {
	texts := make(map[string]bool, len(served))
	for _, q := range served {
		texts[q.Text] = true
	}
	for _, bucket := range s.pool {
		for _, q := range bucket {
			if texts[q.Text] {
				s.used[q.ID] = true
			}
		}
	}
}

// NextBatch adjusts the tier by the recent score ratio and returns the next
// batch of unseen questions. When the adjusted tier's bucket is exhausted it
// falls back to any tier that still has unseen questions, so a test always
// runs the whole bank. Returns nil when no questions remain.
func (s *Sequencer) NextBatch(ratio float64) []aiken.Question {
	s.tier = NextTier(s.tier, ratio)

	batch := s.take(s.tier)
	if len(batch) > 0 {
		return batch
	}

	for _, tier := range []aiken.Tier{aiken.TierMedium, aiken.TierEasy, aiken.TierHard} {
		if batch = s.take(tier); len(batch) > 0 {
			s.tier = tier
			return batch
		}
	}
	return nil
}

func (s *Sequencer) take(tier aiken.Tier) []aiken.Question {
	var unseen []aiken.Question
	for _, q := range s.pool[tier] {
		if !s.used[q.ID] {
			unseen = append(unseen, q)
		}
	}
	batch := Shuffle(unseen)
	if len(batch) > s.batchSize {
		batch = batch[:s.batchSize]
	}
	for _, q := range batch {
		s.used[q.ID] = true
	}
	return batch
}
