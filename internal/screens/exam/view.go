package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/adube/examterm/internal/ui/components"
	"github.com/adube/examterm/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not start the test: "+s.errMsg)+
				"\n\n"+theme.Hint.Render("Press any key to go back"))
	}
	if s.session == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Preparing your test..."))
	}

	if s.showingQuitConfirm {
		return s.viewQuitConfirm(width, height)
	}

	if s.showingFeedback {
		return s.viewFeedback(width)
	}

	q, ok := s.session.CurrentQuestion()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Scoring..."))
	}

	var b strings.Builder
	b.WriteString("\n")
	s.writeQuestionHeader(&b, width, q.Topic, string(q.Difficulty), s.session.CurrentIndex+1)

	barWidth := width * 2 / 3
	if barWidth > 60 {
		barWidth = 60
	}
	bar := components.Countdown{Remaining: s.remaining, Limit: q.TimeLimit, Width: barWidth}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	s.writePrompt(&b, width, q.Text, q.HasImage, q.ImageURL)

	b.WriteString(s.choices.View(width))
	b.WriteString("\n")

	return b.String()
}

// viewFeedback renders the answered question from the feedback snapshot.
// The session index has already advanced, so the live current question must
// not be shown until the feedback delay ends.
func (s *Screen) viewFeedback(width int) string {
	q := s.fb.question

	var b strings.Builder
	b.WriteString("\n")
	s.writeQuestionHeader(&b, width, q.Topic, string(q.Difficulty), s.fb.number)
	b.WriteString("\n")

	s.writePrompt(&b, width, q.Text, q.HasImage, q.ImageURL)

	var lines []string
	for i, opt := range q.Options {
		prefix := "  "
		style := theme.Unselected
		switch {
		case i == q.CorrectAnswer:
			prefix = "✓ "
			style = theme.Correct
		case i == s.fb.selected:
			prefix = "✗ "
			style = theme.Incorrect
		}
		lines = append(lines, style.Render(prefix+opt))
	}
	options := lipgloss.JoinVertical(lipgloss.Left, lines...)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, options))
	b.WriteString("\n\n")

	var verdict string
	switch {
	case s.fb.timedOut:
		verdict = theme.Incorrect.Render("Time's up!")
	case s.fb.correct:
		verdict = theme.Correct.Render("Correct!")
	default:
		verdict = theme.Incorrect.Render("Not quite.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, verdict))
	b.WriteString("\n")

	return b.String()
}

func (s *Screen) writeQuestionHeader(b *strings.Builder, width int, topic, difficulty string, number int) {
	progress := fmt.Sprintf("Question %d of %d", number, len(s.session.Questions))
	meta := fmt.Sprintf("%s · %s", topic, difficulty)
	b.WriteString(theme.Subtitle.Width(width).Render(progress + "   " + meta))
	b.WriteString("\n\n")
}

func (s *Screen) writePrompt(b *strings.Builder, width int, text string, hasImage bool, imageURL string) {
	promptWidth := width - 8
	if promptWidth > 72 {
		promptWidth = 72
	}
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(promptWidth).Render(text)
	if hasImage {
		prompt += "\n" + theme.Hint.Render("Figure: "+imageURL)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")
}

func (s *Screen) viewQuitConfirm(width, height int) string {
	answered := len(s.session.Answers)
	card := theme.Card.Render(
		theme.WarningBanner.Render("End the test now?") + "\n\n" +
			theme.Body.Render(fmt.Sprintf("You have answered %d of %d questions.", answered, len(s.session.Questions))) + "\n" +
			theme.Body.Render("Unanswered questions will count as incorrect.") + "\n\n" +
			theme.Hint.Render("Y to end and score, N to keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
