package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B6B6B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
)

// ProgressBar renders a library sync progress line.
type ProgressBar struct {
	completed int
	total     int
	label     string
	width     int
}

// NewProgressBar creates a new progress bar with the specified total and width.
func NewProgressBar(total int, width int) *ProgressBar {
	if width <= 0 {
		width = 15
	}
	return &ProgressBar{
		total: total,
		width: width,
	}
}

// Update sets the current progress and label.
func (p *ProgressBar) Update(completed int, label string) {
	p.completed = completed
	p.label = label
}

// SetTotal changes the total once it becomes known.
func (p *ProgressBar) SetTotal(total int) {
	p.total = total
}

// Render returns the formatted progress bar, or "" before the total is known.
func (p *ProgressBar) Render() string {
	if p.total == 0 {
		return ""
	}

	completed := p.completed
	if completed > p.total {
		completed = p.total
	}
	filled := p.width * completed / p.total
	empty := p.width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	return accentStyle.Render("⚡ ") +
		barStyle.Render("["+bar+"]") +
		mutedStyle.Render(fmt.Sprintf(" %d/%d ", p.completed, p.total)) +
		accentStyle.Render(p.label)
}

// ClearLine clears the current line for in-place progress updates.
func ClearLine(w io.Writer) {
	_, _ = fmt.Fprint(w, "\r\033[K")
}
