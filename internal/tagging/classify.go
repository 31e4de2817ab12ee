// Package tagging classifies games into progress tags and keeps the stored
// tags in step with live library data.
package tagging

import (
	"time"

	"github.com/asteroid-belt/gametracker/internal/models"
)

const (
	// MasteredPercentage is the achievement completion that makes a game mastered.
	MasteredPercentage = 85.0

	// DroppedAfterDays is how long a played game may sit idle before the
	// classifier calls it dropped.
	DroppedAfterDays = 365
)

const secondsPerDay = 24 * 60 * 60

// Classify returns the automatic tag for a game. Rules are checked in order
// and the first match wins:
//
//  1. mastered: achievement percentage >= 85
//  2. completed: a main-story duration is known and playtime reaches it
//  3. dropped: last played more than 365 days before now
//  4. in_progress: playtime >= settings.InProgressThreshold minutes
//
// Anything else is models.TagNone (backlog). settings.MasteredMultiplier is
// not consulted.
func Classify(stats *models.GameStats, entry *models.CompletionTime, settings models.Settings, now time.Time) models.Tag {
	if stats == nil {
		return models.TagNone
	}

	if percentage(stats) >= MasteredPercentage {
		return models.TagMastered
	}

	if entry.HasMainStory() && float64(stats.PlaytimeMinutes) >= entry.MainStoryMinutes() {
		return models.TagCompleted
	}

	if last := stats.LastPlayed(); last > 0 && now.Unix()-last > DroppedAfterDays*secondsPerDay {
		return models.TagDropped
	}

	if float64(stats.PlaytimeMinutes) >= settings.InProgressThreshold {
		return models.TagInProgress
	}

	return models.TagNone
}

// percentage recomputes from the counts so a stale stored percentage can't
// disagree with them.
func percentage(stats *models.GameStats) float64 {
	return models.Achievements{
		Total:    stats.TotalAchievements,
		Unlocked: stats.UnlockedAchievements,
	}.Percentage()
}
