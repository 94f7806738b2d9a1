package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/adube/examterm/internal/ui/theme"
)

// Countdown renders the per-question time bar with a m:ss readout. The bar
// drains left to right and turns red for the final stretch.
type Countdown struct {
	Remaining int // seconds left
	Limit     int // the question's time limit in seconds
	Width     int
}

// View renders the countdown bar.
func (c Countdown) View() string {
	limit := c.Limit
	if limit < 1 {
		limit = 1
	}
	remaining := c.Remaining
	if remaining < 0 {
		remaining = 0
	}

	readout := fmt.Sprintf(" %d:%02d", remaining/60, remaining%60)

	barWidth := c.Width - lipgloss.Width(readout)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * remaining / limit
	if filled > barWidth {
		filled = barWidth
	}

	fillColor := theme.Secondary
	if remaining*5 <= limit { // last 20%
		fillColor = theme.Error
	}

	bar := lipgloss.NewStyle().Background(fillColor).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(readout)
}
