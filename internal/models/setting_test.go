package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSettingValue(t *testing.T) {
	assert.Equal(t, true, DecodeSettingValue("true"))
	assert.Equal(t, false, DecodeSettingValue("FALSE"))
	assert.Equal(t, 30.0, DecodeSettingValue("30"))
	assert.Equal(t, 1.5, DecodeSettingValue("1.5"))
	assert.Equal(t, "dark", DecodeSettingValue("dark"))
}

func TestEncodeSettingValue(t *testing.T) {
	assert.Equal(t, "true", EncodeSettingValue(true))
	assert.Equal(t, "30", EncodeSettingValue(30.0))
	assert.Equal(t, "1.5", EncodeSettingValue(1.5))
	assert.Equal(t, "45", EncodeSettingValue(45))
	assert.Equal(t, "dark", EncodeSettingValue("dark"))
}

func TestSettingsFromMap_Defaults(t *testing.T) {
	s := DefaultTypedSettings()

	assert.True(t, s.AutoTagEnabled)
	assert.Equal(t, 30.0, s.InProgressThreshold)
	assert.Equal(t, 1.5, s.MasteredMultiplier)
	assert.Equal(t, 2*time.Hour, s.CacheTTL)
	assert.True(t, s.SourceInstalled)
	assert.False(t, s.SourceNonSteam)
}

func TestSettingsFromMap_Overrides(t *testing.T) {
	s := SettingsFromMap(map[string]any{
		SettingInProgressThreshold: 60.0,
		SettingAutoTagEnabled:      false,
		SettingSourceNonSteam:      "yes", // mistyped, falls back to default
	})

	assert.Equal(t, 60.0, s.InProgressThreshold)
	assert.False(t, s.AutoTagEnabled)
	assert.False(t, s.SourceNonSteam)
}
