// Package badges defines the static badge catalog and evaluates badge
// conditions against user statistics.
package badges

import (
	"time"

	"github.com/adube/examterm/internal/stats"
)

// Kind classifies what a badge condition measures.
type Kind string

const (
	KindScore      Kind = "score"
	KindStreak     Kind = "streak"
	KindCompletion Kind = "completion"
	KindSpeed      Kind = "speed"
)

// Badge is a catalog entry. The catalog is static and never persisted; only
// earned Achievements are stored.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Kind        Kind
	Threshold   float64
}

// Catalog lists every badge the application can award.
var Catalog = []Badge{
	{
		ID:          "perfect_score",
		Name:        "Perfect Score",
		Description: "Achieve 100% on a test",
		Icon:        "🏆",
		Kind:        KindScore,
		Threshold:   100,
	},
	{
		ID:          "speed_demon",
		Name:        "Speed Demon",
		Description: "Complete a test in under 5 minutes",
		Icon:        "⚡",
		Kind:        KindSpeed,
		Threshold:   300, // seconds of average test time
	},
	{
		ID:          "streak_master",
		Name:        "Streak Master",
		Description: "Complete tests for 5 days in a row",
		Icon:        "🔥",
		Kind:        KindStreak,
		Threshold:   5,
	},
	{
		ID:          "test_warrior",
		Name:        "Test Warrior",
		Description: "Complete 10 tests",
		Icon:        "⚔️",
		Kind:        KindCompletion,
		Threshold:   10,
	},
}

// ByID looks a badge up in the catalog.
func ByID(id string) (Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Satisfied reports whether the badge's condition holds for the statistics.
func (b Badge) Satisfied(s stats.UserStats) bool {
	switch b.Kind {
	case KindScore:
		return float64(s.AverageScore) >= b.Threshold
	case KindStreak:
		return float64(s.Streak) >= b.Threshold
	case KindCompletion:
		return float64(s.TotalTests) >= b.Threshold
	case KindSpeed:
		if s.TotalTests == 0 {
			return false
		}
		return s.AverageTime().Seconds() <= b.Threshold
	}
	return false
}

// Progress returns how close the statistics are to the badge's condition,
// as a percentage capped at 100. Degenerate inputs yield 0.
func (b Badge) Progress(s stats.UserStats) float64 {
	var p float64
	switch b.Kind {
	case KindScore:
		p = float64(s.AverageScore) / b.Threshold * 100
	case KindStreak:
		p = float64(s.Streak) / b.Threshold * 100
	case KindCompletion:
		p = float64(s.TotalTests) / b.Threshold * 100
	case KindSpeed:
		avg := s.AverageTime().Seconds()
		if avg == 0 {
			return 0
		}
		p = b.Threshold / avg * 100
	}
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Evaluate returns achievements for catalog badges newly satisfied by the
// statistics. Already-earned badges are skipped, so evaluation is monotonic:
// nothing is ever removed or re-stamped.
func Evaluate(s stats.UserStats, now time.Time) []stats.Achievement {
	var earned []stats.Achievement
	for _, b := range Catalog {
		if s.HasAchievement(b.ID) {
			continue
		}
		if b.Satisfied(s) {
			earned = append(earned, stats.Achievement{
				BadgeID:  b.ID,
				EarnedAt: now,
				Progress: 100,
			})
		}
	}
	return earned
}
