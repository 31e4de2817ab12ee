package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Render(t *testing.T) {
	bar := NewProgressBar(0, 10)
	assert.Empty(t, bar.Render(), "nothing to draw before the total is known")

	bar.SetTotal(4)
	bar.Update(2, "Syncing library")
	out := bar.Render()
	assert.Contains(t, out, "█████░░░░░")
	assert.Contains(t, out, "2/4")
	assert.Contains(t, out, "Syncing library")

	bar.Update(9, "done")
	assert.Contains(t, bar.Render(), "██████████")
}

func TestNewProgressBar_DefaultWidth(t *testing.T) {
	assert.Equal(t, 15, NewProgressBar(3, 0).width)
}

func TestClearLine(t *testing.T) {
	var buf bytes.Buffer
	ClearLine(&buf)
	assert.Equal(t, "\r\033[K", buf.String())
}

func TestFormatTimeSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", formatTimeSince(now.Add(-10*time.Second), now))
	assert.Equal(t, "1 minute ago", formatTimeSince(now.Add(-time.Minute), now))
	assert.Equal(t, "3 hours ago", formatTimeSince(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days ago", formatTimeSince(now.Add(-48*time.Hour), now))
	assert.Equal(t, "2026-01-01", formatTimeSince(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), now))
}
