package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adube/examterm/internal/ui/theme"
)

// ChoiceList is the answer-option selector. Option texts already carry their
// "A." style prefixes from the bank, so they are rendered verbatim.
type ChoiceList struct {
	Options  []string
	Selected int
}

// NewChoiceList creates a selector over the given option lines.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options}
}

// Update handles keyboard navigation. Selection by letter is handled by the
// owning screen, since submission policy differs between modes.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	}

	return c, nil
}

// View renders the options with the current selection highlighted.
func (c ChoiceList) View(width int) string {
	var lines []string
	for i, opt := range c.Options {
		prefix := "  "
		style := theme.Unselected
		if i == c.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		lines = append(lines, style.Render(prefix+opt))
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
