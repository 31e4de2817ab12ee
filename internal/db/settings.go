package db

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/gametracker/internal/models"
)

// GetSetting returns the decoded value for key, or def when unset.
func (db *DB) GetSetting(key string, def any) (any, error) {
	var setting models.Setting
	err := db.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return def, nil
		}
		return nil, err
	}
	return models.DecodeSettingValue(setting.Value), nil
}

// SetSetting stores value under key.
func (db *DB) SetSetting(key string, value any) error {
	setting := models.Setting{Key: key, Value: models.EncodeSettingValue(value)}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// ListSettings returns every setting with decoded values.
func (db *DB) ListSettings() (map[string]any, error) {
	var rows []models.Setting
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make(map[string]any, len(rows))
	for _, r := range rows {
		settings[r.Key] = models.DecodeSettingValue(r.Value)
	}
	return settings, nil
}

// Settings returns the typed settings view.
func (db *DB) Settings() (models.Settings, error) {
	m, err := db.ListSettings()
	if err != nil {
		return models.DefaultTypedSettings(), err
	}
	return models.SettingsFromMap(m), nil
}
