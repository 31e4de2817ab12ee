package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/gametracker/internal/models"
)

// GetUserState returns the state row. A missing row reads as an empty state.
func (db *DB) GetUserState() (*models.UserState, error) {
	var state models.UserState
	err := db.Where("id = ?", models.UserStateID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserState{ID: models.UserStateID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// saveUserState upserts state, touching only the named columns.
func (db *DB) saveUserState(state *models.UserState, columns ...string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(state).Error
}

// GetOrCreateTrackingID returns the anonymous telemetry id, creating and
// storing one on first use. If the database can't be read or written the
// id is still returned; it just won't outlive the process.
func (db *DB) GetOrCreateTrackingID() string {
	state, err := db.GetUserState()
	if err != nil {
		return uuid.NewString()
	}
	if state.TrackingID != "" {
		return state.TrackingID
	}

	state.TrackingID = uuid.NewString()
	_ = db.saveUserState(state, "tracking_id")
	return state.TrackingID
}

// RecordVersion stores current as the last version to open the database
// and returns the one stored before, "" on first run.
func (db *DB) RecordVersion(current string) (string, error) {
	state, err := db.GetUserState()
	if err != nil {
		return "", fmt.Errorf("get user state: %w", err)
	}

	previous := state.LastVersion
	if previous == current {
		return previous, nil
	}

	state.LastVersion = current
	if err := db.saveUserState(state, "last_version"); err != nil {
		return previous, fmt.Errorf("save version: %w", err)
	}
	return previous, nil
}
