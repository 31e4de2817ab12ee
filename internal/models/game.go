// Package models defines the core data structures for the game tracker.
package models

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// NonSteamIDThreshold separates real Steam app ids from the CRC-derived ids
// Steam assigns to non-Steam shortcuts.
const NonSteamIDThreshold = 2000000000

// GameStats is the per-game snapshot written on every sync.
type GameStats struct {
	AppID                 string  `gorm:"primaryKey;size:32" json:"appid"`
	GameName              string  `gorm:"size:255;not null" json:"game_name"`
	PlaytimeMinutes       int     `gorm:"default:0" json:"playtime_minutes"`
	TotalAchievements     int     `gorm:"default:0" json:"total_achievements"`
	UnlockedAchievements  int     `gorm:"default:0" json:"unlocked_achievements"`
	AchievementPercentage float64 `gorm:"default:0" json:"achievement_percentage"`
	IsHidden              bool    `gorm:"default:false;index" json:"is_hidden"`

	// LastPlayedAt is a unix timestamp (seconds); nil or 0 means never played.
	LastPlayedAt *int64    `gorm:"index" json:"rt_last_time_played,omitempty"`
	LastSyncAt   time.Time `gorm:"autoUpdateTime" json:"last_sync"`
}

// TableName specifies the table name for GORM.
func (GameStats) TableName() string {
	return "game_stats"
}

// Achievements is a live achievement snapshot supplied by a caller.
type Achievements struct {
	Total    int `json:"total"`
	Unlocked int `json:"unlocked"`
}

// Percentage returns 100*unlocked/total rounded to two decimals, or 0 when
// the game has no achievements.
func (a Achievements) Percentage() float64 {
	if a.Total <= 0 {
		return 0
	}
	unlocked := a.Unlocked
	if unlocked > a.Total {
		unlocked = a.Total
	}
	return math.Round(float64(unlocked)/float64(a.Total)*100*100) / 100
}

// SetAchievements stores an achievement snapshot, keeping unlocked <= total
// and the percentage consistent with the counts.
func (s *GameStats) SetAchievements(a Achievements) {
	if a.Total < 0 {
		a.Total = 0
	}
	if a.Unlocked < 0 {
		a.Unlocked = 0
	}
	if a.Unlocked > a.Total {
		a.Unlocked = a.Total
	}
	s.TotalAchievements = a.Total
	s.UnlockedAchievements = a.Unlocked
	s.AchievementPercentage = a.Percentage()
}

// LastPlayed returns the last-played unix timestamp, or 0 when unknown.
func (s *GameStats) LastPlayed() int64 {
	if s.LastPlayedAt == nil {
		return 0
	}
	return *s.LastPlayedAt
}

// IsNonSteamID reports whether appID is a synthetic shortcut id.
func IsNonSteamID(appID string) bool {
	n, err := strconv.ParseUint(appID, 10, 64)
	if err != nil {
		return false
	}
	return n > NonSteamIDThreshold
}

// PlaceholderName returns the name used when no real title could be resolved.
func PlaceholderName(appID string) string {
	return fmt.Sprintf("Unknown Game (%s)", appID)
}

// IsPlaceholderName reports whether name is empty or a synthesized placeholder.
func IsPlaceholderName(name string) bool {
	return name == "" || hasPrefix(name, "Unknown") || hasPrefix(name, "Game ")
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// GameSummary is a lightweight library entry used for listings.
type GameSummary struct {
	AppID           string `json:"appid"`
	Name            string `json:"name"`
	PlaytimeMinutes int    `json:"playtime_minutes"`
	IsExternal      bool   `json:"is_non_steam,omitempty"`
}
