package models

import "time"

// Tag is a progress category. The empty Tag means "backlog".
type Tag string

const (
	TagNone       Tag = ""
	TagCompleted  Tag = "completed"
	TagInProgress Tag = "in_progress"
	TagMastered   Tag = "mastered"
	TagDropped    Tag = "dropped"

	// TagBacklog is the display name for untagged games. It is never stored.
	TagBacklog Tag = "backlog"
)

// AllTags returns the storable tags in display order.
func AllTags() []Tag {
	return []Tag{TagCompleted, TagMastered, TagInProgress, TagDropped}
}

// Valid reports whether t is one of the four storable tags.
func (t Tag) Valid() bool {
	switch t {
	case TagCompleted, TagInProgress, TagMastered, TagDropped:
		return true
	}
	return false
}

// SortOrder ranks tags for listings; unknown tags sort last.
func (t Tag) SortOrder() int {
	for i, tag := range AllTags() {
		if tag == t {
			return i
		}
	}
	return 99
}

// GameTag is the stored classification of a game. Absence of a row means backlog.
type GameTag struct {
	AppID     string    `gorm:"primaryKey;size:32" json:"appid"`
	Tag       Tag       `gorm:"size:20;not null;index" json:"tag"`
	IsManual  bool      `gorm:"default:false;index" json:"is_manual"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// TableName specifies the table name for GORM.
func (GameTag) TableName() string {
	return "game_tags"
}

// TagStatistics holds per-tag counts over visible games.
type TagStatistics struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Mastered   int `json:"mastered"`
	Dropped    int `json:"dropped"`
	Backlog    int `json:"backlog"`
	Total      int `json:"total"`
}

// TaggedGame is a tag joined with its display name.
type TaggedGame struct {
	AppID    string `json:"appid"`
	GameName string `json:"game_name"`
	Tag      Tag    `json:"tag"`
	IsManual bool   `json:"is_manual"`
}
