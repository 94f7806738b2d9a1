package badges

import (
	"testing"
	"time"

	"github.com/adube/examterm/internal/stats"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func badge(t *testing.T, id string) Badge {
	t.Helper()
	b, ok := ByID(id)
	if !ok {
		t.Fatalf("badge %s not in catalog", id)
	}
	return b
}

func TestEvaluate_ScoreBadge(t *testing.T) {
	s := stats.UserStats{TotalTests: 1, AverageScore: 100}
	earned := Evaluate(s, now)

	found := false
	for _, a := range earned {
		if a.BadgeID == "perfect_score" {
			found = true
			if a.Progress != 100 {
				t.Errorf("Progress = %v, want 100", a.Progress)
			}
			if !a.EarnedAt.Equal(now) {
				t.Errorf("EarnedAt = %v, want %v", a.EarnedAt, now)
			}
		}
	}
	if !found {
		t.Error("perfect_score not earned at averageScore=100")
	}
}

func TestEvaluate_SpeedBadge(t *testing.T) {
	// 250s across 1 test: under the 300s threshold.
	s := stats.UserStats{TotalTests: 1, TotalTimeTaken: 250 * time.Second}
	if !badge(t, "speed_demon").Satisfied(s) {
		t.Error("speed_demon not satisfied at 250s/1 test")
	}

	// No completed tests: not satisfied, progress 0 rather than a fault.
	empty := stats.UserStats{}
	if badge(t, "speed_demon").Satisfied(empty) {
		t.Error("speed_demon satisfied with zero tests")
	}
	if p := badge(t, "speed_demon").Progress(empty); p != 0 {
		t.Errorf("Progress = %v, want 0", p)
	}
}

func TestEvaluate_AlreadyEarnedSkipped(t *testing.T) {
	earnedAt := now.Add(-24 * time.Hour)
	s := stats.UserStats{
		TotalTests:   20,
		AverageScore: 100,
		Streak:       10,
		Achievements: []stats.Achievement{
			{BadgeID: "perfect_score", EarnedAt: earnedAt, Progress: 100},
		},
	}

	earned := Evaluate(s, now)
	for _, a := range earned {
		if a.BadgeID == "perfect_score" {
			t.Error("perfect_score re-awarded")
		}
	}

	// The original achievement is untouched.
	if !s.Achievements[0].EarnedAt.Equal(earnedAt) {
		t.Error("existing achievement restamped")
	}
}

func TestEvaluate_Monotonic(t *testing.T) {
	s := stats.UserStats{TotalTests: 10, AverageScore: 50}
	s.Achievements = append(s.Achievements, Evaluate(s, now)...)
	before := len(s.Achievements)

	// Stats regress; nothing is removed and nothing new is earned twice.
	s.TotalTests = 10
	s.AverageScore = 10
	again := Evaluate(s, now.Add(time.Hour))
	for _, a := range again {
		if s.HasAchievement(a.BadgeID) {
			t.Errorf("badge %s awarded twice", a.BadgeID)
		}
	}
	if len(s.Achievements) != before {
		t.Errorf("achievements shrank: %d -> %d", before, len(s.Achievements))
	}
}

func TestProgress_Capped(t *testing.T) {
	s := stats.UserStats{TotalTests: 50, AverageScore: 100, Streak: 50}
	for _, b := range Catalog {
		if p := b.Progress(s); p < 0 || p > 100 {
			t.Errorf("badge %s: progress %v out of [0,100]", b.ID, p)
		}
	}
}

func TestProgress_Partial(t *testing.T) {
	s := stats.UserStats{TotalTests: 5, AverageScore: 50, Streak: 2}

	if p := badge(t, "test_warrior").Progress(s); p != 50 {
		t.Errorf("test_warrior progress = %v, want 50", p)
	}
	if p := badge(t, "perfect_score").Progress(s); p != 50 {
		t.Errorf("perfect_score progress = %v, want 50", p)
	}
	if p := badge(t, "streak_master").Progress(s); p != 40 {
		t.Errorf("streak_master progress = %v, want 40", p)
	}
}
