package db

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/gametracker/internal/models"
)

// GetStats retrieves stored stats for a game. Returns nil, nil if absent.
func (db *DB) GetStats(appID string) (*models.GameStats, error) {
	var stats models.GameStats
	err := db.First(&stats, "app_id = ?", appID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

// UpsertStats creates or replaces the stats row for a game.
func (db *DB) UpsertStats(stats *models.GameStats) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}},
		UpdateAll: true,
	}).Create(stats).Error
}

// ListStats returns stored stats ordered by name, optionally including
// hidden games.
func (db *DB) ListStats(includeHidden bool) ([]models.GameStats, error) {
	var stats []models.GameStats
	query := db.Order("game_name COLLATE NOCASE ASC")
	if !includeHidden {
		query = query.Where("is_hidden = ?", false)
	}
	err := query.Find(&stats).Error
	return stats, err
}

// ListBacklog returns visible games that have no tag, ordered by name.
func (db *DB) ListBacklog() ([]models.GameStats, error) {
	var stats []models.GameStats
	err := db.Table("game_stats AS s").
		Select("s.*").
		Joins("LEFT JOIN game_tags AS t ON t.app_id = s.app_id").
		Where("s.is_hidden = ? AND t.app_id IS NULL", false).
		Order("s.game_name COLLATE NOCASE ASC").
		Find(&stats).Error
	return stats, err
}

// EligibleForDropped returns games last played more than days ago (strictly)
// relative to now, excluding hidden games, manual tags and games already
// tagged dropped, completed or mastered.
func (db *DB) EligibleForDropped(days int, now int64) ([]models.GameStats, error) {
	threshold := int64(days) * 24 * 60 * 60
	var stats []models.GameStats
	err := db.Table("game_stats AS s").
		Select("s.*").
		Joins("LEFT JOIN game_tags AS t ON t.app_id = s.app_id").
		Where("s.last_played_at IS NOT NULL AND s.last_played_at > 0").
		Where("? - s.last_played_at > ?", now, threshold).
		Where("s.is_hidden = ?", false).
		Where("t.app_id IS NULL OR (t.is_manual = ? AND t.tag NOT IN ?)", false,
			[]string{string(models.TagDropped), string(models.TagCompleted), string(models.TagMastered)}).
		Order("s.app_id ASC").
		Find(&stats).Error
	return stats, err
}
