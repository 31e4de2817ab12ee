package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Setting is a persisted user setting. Values are stored as text and
// decoded to bool, float64 or string on read.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Setting) TableName() string {
	return "settings"
}

// Setting keys.
const (
	SettingAutoTagEnabled      = "auto_tag_enabled"
	SettingInProgressThreshold = "in_progress_threshold"
	SettingMasteredMultiplier  = "mastered_multiplier"
	SettingCacheTTL            = "cache_ttl"
	SettingSourceInstalled     = "source_installed"
	SettingSourceNonSteam      = "source_non_steam"
)

// DefaultSettings are seeded on first start.
var DefaultSettings = map[string]string{
	SettingAutoTagEnabled:      "true",
	SettingInProgressThreshold: "30",
	SettingMasteredMultiplier:  "1.5",
	SettingCacheTTL:            "7200",
	SettingSourceInstalled:     "true",
	SettingSourceNonSteam:      "false",
}

// DecodeSettingValue converts stored text to its typed value.
func DecodeSettingValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// EncodeSettingValue converts a typed value to its stored text form.
func EncodeSettingValue(v any) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// Settings is the typed view of the settings table used by the classifier
// and the sync orchestrator.
type Settings struct {
	AutoTagEnabled      bool
	InProgressThreshold float64 // minutes
	MasteredMultiplier  float64
	CacheTTL            time.Duration
	SourceInstalled     bool
	SourceNonSteam      bool
}

// DefaultTypedSettings returns the typed defaults.
func DefaultTypedSettings() Settings {
	return SettingsFromMap(nil)
}

// SettingsFromMap builds typed settings from decoded values, falling back
// to defaults for missing or mistyped keys.
func SettingsFromMap(m map[string]any) Settings {
	return Settings{
		AutoTagEnabled:      boolSetting(m, SettingAutoTagEnabled, true),
		InProgressThreshold: floatSetting(m, SettingInProgressThreshold, 30),
		MasteredMultiplier:  floatSetting(m, SettingMasteredMultiplier, 1.5),
		CacheTTL:            time.Duration(floatSetting(m, SettingCacheTTL, 7200)) * time.Second,
		SourceInstalled:     boolSetting(m, SettingSourceInstalled, true),
		SourceNonSteam:      boolSetting(m, SettingSourceNonSteam, false),
	}
}

func boolSetting(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func floatSetting(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return def
}
