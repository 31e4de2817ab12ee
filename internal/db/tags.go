package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/gametracker/internal/models"
)

// GetTag retrieves the tag for a game. Returns nil, nil for an untagged game.
func (db *DB) GetTag(appID string) (*models.GameTag, error) {
	var tag models.GameTag
	err := db.First(&tag, "app_id = ?", appID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// SetTag creates or replaces the tag for a game.
func (db *DB) SetTag(appID string, tag models.Tag, isManual bool) error {
	if !tag.Valid() {
		return fmt.Errorf("set tag %s: invalid tag %q", appID, tag)
	}
	row := models.GameTag{AppID: appID, Tag: tag, IsManual: isManual}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tag", "is_manual", "updated_at"}),
	}).Create(&row).Error
}

// RemoveTag deletes the tag for a game, returning whether one existed.
func (db *DB) RemoveTag(appID string) (bool, error) {
	result := db.Where("app_id = ?", appID).Delete(&models.GameTag{})
	return result.RowsAffected > 0, result.Error
}

// ListTags returns all stored tags.
func (db *DB) ListTags() ([]models.GameTag, error) {
	var tags []models.GameTag
	err := db.Order("app_id ASC").Find(&tags).Error
	return tags, err
}

// ListTaggedGames returns tags joined with stored names, skipping hidden
// games unless their tag is manual. Games with no stats row keep an empty
// name for the caller to resolve.
func (db *DB) ListTaggedGames() ([]models.TaggedGame, error) {
	var games []models.TaggedGame
	err := db.Table("game_tags AS t").
		Select("t.app_id AS app_id, COALESCE(s.game_name, '') AS game_name, t.tag AS tag, t.is_manual AS is_manual").
		Joins("LEFT JOIN game_stats AS s ON s.app_id = t.app_id").
		Where("s.app_id IS NULL OR s.is_hidden = ? OR t.is_manual = ?", false, true).
		Scan(&games).Error
	return games, err
}

// TagStatistics counts tags over visible games. A game is visible when it
// has a stats row and is either not hidden or carries a manual tag, so the
// per-tag counts never exceed Total. Backlog counts visible games with no
// tag.
func (db *DB) TagStatistics() (*models.TagStatistics, error) {
	var rows []struct {
		Tag   models.Tag
		Count int
	}
	err := db.Table("game_tags AS t").
		Select("t.tag AS tag, COUNT(*) AS count").
		Joins("JOIN game_stats AS s ON s.app_id = t.app_id").
		Where("s.is_hidden = ? OR t.is_manual = ?", false, true).
		Group("t.tag").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}

	stats := &models.TagStatistics{}
	for _, r := range rows {
		switch r.Tag {
		case models.TagCompleted:
			stats.Completed = r.Count
		case models.TagInProgress:
			stats.InProgress = r.Count
		case models.TagMastered:
			stats.Mastered = r.Count
		case models.TagDropped:
			stats.Dropped = r.Count
		}
	}

	var total, backlog int64
	if err := db.Table("game_stats AS s").
		Joins("LEFT JOIN game_tags AS t ON t.app_id = s.app_id").
		Where("s.is_hidden = ? OR t.is_manual = ?", false, true).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count games: %w", err)
	}
	if err := db.Table("game_stats AS s").
		Joins("LEFT JOIN game_tags AS t ON t.app_id = s.app_id").
		Where("s.is_hidden = ? AND t.app_id IS NULL", false).
		Count(&backlog).Error; err != nil {
		return nil, fmt.Errorf("count backlog: %w", err)
	}

	stats.Total = int(total)
	stats.Backlog = int(backlog)
	return stats, nil
}
