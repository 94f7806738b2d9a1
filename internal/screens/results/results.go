// Package results shows the score summary, the per-question review, badge
// progress, and cumulative statistics for a finished test.
package results

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adube/examterm/internal/badges"
	"github.com/adube/examterm/internal/export"
	"github.com/adube/examterm/internal/router"
	"github.com/adube/examterm/internal/screen"
	"github.com/adube/examterm/internal/session"
	"github.com/adube/examterm/internal/stats"
	"github.com/adube/examterm/internal/ui/layout"
	"github.com/adube/examterm/internal/ui/theme"
)

// ExportFilename is where the d key writes the result artifact.
const ExportFilename = "test-results.json"

// Screen shows a finished session.
type Screen struct {
	sess        *session.Session
	res         session.Result
	stats       stats.UserStats
	earned      []stats.Achievement
	artifact    export.Artifact
	maxWarnings int
	retake      func() screen.Screen

	scroll     int
	exportNote string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.HeaderStatsProvider = (*Screen)(nil)

// New creates the results screen. The retake factory constructs a fresh exam
// screen so the two packages stay decoupled.
func New(sess *session.Session, res session.Result, st stats.UserStats, earned []stats.Achievement, artifact export.Artifact, maxWarnings int, retake func() screen.Screen) *Screen {
	return &Screen{
		sess:        sess,
		res:         res,
		stats:       st,
		earned:      earned,
		artifact:    artifact,
		maxWarnings: maxWarnings,
		retake:      retake,
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Results"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "D", Description: "Download JSON"},
		{Key: "R", Description: "Retake"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *Screen) HeaderStats() (int, int, int) {
	return s.stats.Streak, s.sess.Warnings, s.maxWarnings
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		s.scroll++
	case "d", "D":
		if err := export.Write(ExportFilename, s.artifact); err != nil {
			s.exportNote = err.Error()
		} else {
			s.exportNote = "Saved to " + ExportFilename
		}
	case "r", "R":
		next := s.retake()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	return s, nil
}

func (s *Screen) View(width, height int) string {
	lines := strings.Split(s.render(width), "\n")

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}

	end := s.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[s.scroll:end], "\n")
}

func (s *Screen) render(width int) string {
	var b strings.Builder
	center := func(text string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	headline := theme.Correct
	if s.res.ScorePercent < 50 {
		headline = theme.Incorrect
	}
	center(theme.Title.Render("Test Complete, " + s.sess.Name))
	b.WriteString("\n")
	center(headline.Render(fmt.Sprintf("%d / %d correct  (%d%%)", s.res.CorrectCount, s.res.Total, s.res.ScorePercent)))
	center(theme.Subtitle.Render(fmt.Sprintf("Time taken: %s", formatDuration(s.res.TimeTaken))))
	if s.sess.Warnings > 0 {
		center(theme.WarningBanner.Render(fmt.Sprintf("Integrity warnings: %d", s.sess.Warnings)))
	}
	if s.exportNote != "" {
		center(theme.Hint.Render(s.exportNote))
	}
	b.WriteString("\n")

	for _, a := range s.earned {
		if badge, ok := badges.ByID(a.BadgeID); ok {
			center(theme.Correct.Render(fmt.Sprintf("%s New badge: %s", badge.Icon, badge.Name)))
			center(theme.Subtitle.Render(badge.Description))
		}
	}
	if len(s.earned) > 0 {
		b.WriteString("\n")
	}

	center(sectionTitle("Review"))
	for i, q := range s.sess.Questions {
		sel, answered := s.sess.Answers[q.ID]
		var line string
		switch {
		case answered && sel == q.CorrectAnswer:
			line = theme.Correct.Render("✓") + " " + truncate(q.Text, width-12)
		case answered && sel >= 0:
			line = theme.Incorrect.Render("✗") + " " + truncate(q.Text, width-12) +
				"\n    " + theme.Hint.Render("answer: "+q.Options[q.CorrectAnswer])
		default:
			line = theme.Incorrect.Render("⏱") + " " + truncate(q.Text, width-12) +
				"\n    " + theme.Hint.Render("ran out of time; answer: "+q.Options[q.CorrectAnswer])
		}
		b.WriteString(fmt.Sprintf("  %2d. %s\n", i+1, line))
	}
	b.WriteString("\n")

	center(sectionTitle("Badges"))
	for _, badge := range badges.Catalog {
		status := theme.Hint.Render(fmt.Sprintf("%.0f%%", badge.Progress(s.stats)))
		if s.stats.HasAchievement(badge.ID) {
			status = theme.Correct.Render("earned")
		}
		center(fmt.Sprintf("%s %-14s %s", badge.Icon, badge.Name, status))
	}
	b.WriteString("\n")

	center(sectionTitle("Your Stats"))
	center(theme.Body.Render(fmt.Sprintf("Tests taken: %d   This week: %d", s.stats.TotalTests, s.stats.TestsThisWeek)))
	center(theme.Body.Render(fmt.Sprintf("Average score: %d%%   Average time: %s", s.stats.AverageScore, formatDuration(s.stats.AverageTime()))))
	center(theme.Body.Render(fmt.Sprintf("Day streak: %d", s.stats.Streak)))
	b.WriteString("\n")

	center(sectionTitle("Leaderboard"))
	center(theme.Body.Render(fmt.Sprintf("1. %s  —  %d%%", s.sess.Name, s.res.ScorePercent)))
	center(theme.Hint.Render("(local scores only)"))

	return b.String()
}

func sectionTitle(t string) string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(t)
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func truncate(text string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(text) <= max {
		return text
	}
	return text[:max-1] + "…"
}
