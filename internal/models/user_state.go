package models

import "time"

// UserStateID is the primary key of the single user_state row.
const UserStateID = "default"

// UserState holds application-wide state that survives restarts: the
// anonymous telemetry id and the last gametracker version that opened the
// database.
type UserState struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	TrackingID  string    `gorm:"size:64" json:"tracking_id"`
	LastVersion string    `gorm:"size:64" json:"last_version"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserState) TableName() string {
	return "user_state"
}
