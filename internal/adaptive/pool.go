// Package adaptive partitions a question bank by difficulty and selects
// question batches based on the test-taker's rolling score.
package adaptive

import "github.com/adube/examterm/internal/aiken"

// Pool maps each difficulty tier to its questions, preserving bank order
// within a tier. A Pool is derived state; it is never persisted.
type Pool map[aiken.Tier][]aiken.Question

// BuildPool groups questions by difficulty. Order within each bucket follows
// the input order.
func BuildPool(questions []aiken.Question) Pool {
	pool := Pool{
		aiken.TierEasy:   nil,
		aiken.TierMedium: nil,
		aiken.TierHard:   nil,
	}
	for _, q := range questions {
		pool[q.Difficulty] = append(pool[q.Difficulty], q)
	}
	return pool
}

// Size returns the total number of questions across all tiers.
func (p Pool) Size() int {
	n := 0
	for _, bucket := range p {
		n += len(bucket)
	}
	return n
}
