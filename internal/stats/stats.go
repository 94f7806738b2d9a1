// Package stats holds cumulative per-user test statistics and the fold that
// absorbs one finished test into them.
package stats

import (
	"math"
	"time"
)

// Achievement records that a badge's condition was met. Achievements are
// append-only: once earned they are never removed or re-scored.
type Achievement struct {
	BadgeID  string    `json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
	Progress float64   `json:"progress"`
}

// UserStats is the persisted per-user record. It is mutated only by Fold at
// test completion; streak and LastTestDate are fixed at session start.
type UserStats struct {
	TotalTests     int           `json:"totalTests"`
	AverageScore   int           `json:"averageScore"`
	Streak         int           `json:"streak"`
	LastTestDate   time.Time     `json:"lastTestDate"`
	Achievements   []Achievement `json:"achievements"`
	TotalTimeTaken time.Duration `json:"totalTimeTaken"`
	TestsThisWeek  int           `json:"testsThisWeek"`
}

// HasAchievement reports whether the badge has already been earned.
func (s UserStats) HasAchievement(badgeID string) bool {
	for _, a := range s.Achievements {
		if a.BadgeID == badgeID {
			return true
		}
	}
	return false
}

// AverageTime returns the mean time per completed test, or 0 when no test
// has been completed.
func (s UserStats) AverageTime() time.Duration {
	if s.TotalTests == 0 {
		return 0
	}
	return s.TotalTimeTaken / time.Duration(s.TotalTests)
}

// Fold absorbs one completed test into the prior statistics and returns the
// updated record. The running average is weighted by the pre-increment test
// count. The weekly counter has no rollover; it only ever increments.
func Fold(prior UserStats, scorePercent int, sessionTime time.Duration) UserStats {
	next := prior
	next.TotalTests = prior.TotalTests + 1
	next.AverageScore = int(math.Round(
		float64(prior.AverageScore*prior.TotalTests+scorePercent) / float64(next.TotalTests),
	))
	next.TotalTimeTaken = prior.TotalTimeTaken + sessionTime
	next.TestsThisWeek = prior.TestsThisWeek + 1
	return next
}
