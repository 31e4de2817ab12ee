package models

import "time"

// MinSimilarity is the lowest match score accepted from a completion-time search.
const MinSimilarity = 0.7

// CompletionTime is a cached completion-time lookup for one game.
// Hours are nil when the provider had no data for that play style.
type CompletionTime struct {
	AppID         string    `gorm:"primaryKey;size:32" json:"appid"`
	GameName      string    `gorm:"size:255;not null" json:"game_name"`
	MatchedName   string    `gorm:"size:255" json:"matched_name"`
	Similarity    float64   `gorm:"column:similarity_score" json:"similarity"`
	MainStory     *float64  `json:"main_story"`
	MainExtra     *float64  `json:"main_extra"`
	Completionist *float64  `json:"completionist"`
	AllStyles     *float64  `json:"all_styles"`
	URL           string    `gorm:"column:hltb_url;size:500" json:"hltb_url"`
	CachedAt      time.Time `gorm:"autoUpdateTime;index" json:"cached_at"`
}

// TableName specifies the table name for GORM.
func (CompletionTime) TableName() string {
	return "hltb_cache"
}

// HasMainStory reports whether the entry carries a usable main-story duration.
func (c *CompletionTime) HasMainStory() bool {
	return c != nil && c.MainStory != nil && *c.MainStory > 0
}

// MainStoryMinutes returns the main-story duration in minutes, or 0.
func (c *CompletionTime) MainStoryMinutes() float64 {
	if !c.HasMainStory() {
		return 0
	}
	return *c.MainStory * 60
}

// SearchResult is one candidate returned by a completion-time search.
type SearchResult struct {
	MatchedName   string   `json:"matched_name"`
	Similarity    float64  `json:"similarity"`
	MainStory     *float64 `json:"main_story"`
	MainExtra     *float64 `json:"main_extra"`
	Completionist *float64 `json:"completionist"`
	AllStyles     *float64 `json:"all_styles"`
	URL           string   `json:"url"`
}
