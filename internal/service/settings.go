package service

import (
	"context"
	"sort"

	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/log"
)

// SettingsResponse carries every setting with its typed value.
type SettingsResponse struct {
	Result
	Settings map[string]any `json:"settings"`
}

// GetSettings returns all settings.
func (s *Service) GetSettings(_ context.Context) SettingsResponse {
	settings, err := s.db.ListSettings()
	if err != nil {
		return SettingsResponse{Result: failed("get settings", err)}
	}
	return SettingsResponse{Result: succeeded(), Settings: settings}
}

// UpdateSettings writes the given settings. Every key and value is checked
// before anything is written.
func (s *Service) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) SettingsResponse {
	if err := check(&req); err != nil {
		return SettingsResponse{Result: failed("update settings", err)}
	}

	keys := make([]string, 0, len(req.Settings))
	typed := make(map[string]any, len(req.Settings))
	for key, value := range req.Settings {
		v, err := checkSettingValue(key, value)
		if err != nil {
			return SettingsResponse{Result: failed("update settings", err)}
		}
		keys = append(keys, key)
		typed[key] = v
	}
	sort.Strings(keys)

	err := s.db.Transaction(func(tx *db.DB) error {
		for _, key := range keys {
			if err := tx.SetSetting(key, typed[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SettingsResponse{Result: failed("update settings", err)}
	}
	for _, key := range keys {
		s.telemetry.TrackSettingsChanged(key)
	}
	log.Printf("Settings updated: %v\n", keys)

	return s.GetSettings(ctx)
}
