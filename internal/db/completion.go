package db

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/gametracker/internal/models"
)

// GetCompletionTime retrieves a cached completion time. Returns nil, nil on a miss.
func (db *DB) GetCompletionTime(appID string) (*models.CompletionTime, error) {
	var entry models.CompletionTime
	err := db.First(&entry, "app_id = ?", appID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// UpsertCompletionTime creates or replaces a cache entry.
func (db *DB) UpsertCompletionTime(entry *models.CompletionTime) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}},
		UpdateAll: true,
	}).Create(entry).Error
}

// ClearCompletionCache deletes every cache entry and returns how many were removed.
func (db *DB) ClearCompletionCache() (int64, error) {
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CompletionTime{})
	return result.RowsAffected, result.Error
}
