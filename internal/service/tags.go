package service

import (
	"context"

	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/models"
)

// TagResponse carries a game's tag; Tag is nil for backlog.
type TagResponse struct {
	Result
	Tag *models.GameTag `json:"tag"`
}

// RemoveTagResponse reports whether a tag existed.
type RemoveTagResponse struct {
	Result
	Removed bool `json:"removed"`
}

// StatisticsResponse carries per-tag counts.
type StatisticsResponse struct {
	Result
	Stats *models.TagStatistics `json:"stats,omitempty"`
}

// GetTag returns the stored tag for a game.
func (s *Service) GetTag(_ context.Context, req GameRequest) TagResponse {
	if err := check(&req); err != nil {
		return TagResponse{Result: failed("get tag", err)}
	}
	tag, err := s.db.GetTag(req.AppID)
	if err != nil {
		return TagResponse{Result: failed("get tag", err)}
	}
	return TagResponse{Result: succeeded(), Tag: tag}
}

// SetManualTag stores a user-chosen tag that automatic syncs leave alone.
func (s *Service) SetManualTag(_ context.Context, req SetTagRequest) TagResponse {
	if err := check(&req); err != nil {
		return TagResponse{Result: failed("set tag", err)}
	}
	if err := s.db.SetTag(req.AppID, models.Tag(req.Tag), true); err != nil {
		return TagResponse{Result: failed("set tag", err)}
	}
	log.Printf("Manual tag for %s set to %s\n", req.AppID, req.Tag)
	s.telemetry.TrackTagSet(req.Tag, true)

	tag, err := s.db.GetTag(req.AppID)
	if err != nil {
		return TagResponse{Result: failed("set tag", err)}
	}
	return TagResponse{Result: succeeded(), Tag: tag}
}

// RemoveTag deletes a game's tag, returning it to the backlog.
func (s *Service) RemoveTag(_ context.Context, req GameRequest) RemoveTagResponse {
	if err := check(&req); err != nil {
		return RemoveTagResponse{Result: failed("remove tag", err)}
	}
	removed, err := s.db.RemoveTag(req.AppID)
	if err != nil {
		return RemoveTagResponse{Result: failed("remove tag", err)}
	}
	if removed {
		s.telemetry.TrackTagRemoved()
	}
	return RemoveTagResponse{Result: succeeded(), Removed: removed}
}

// ResetToAuto drops a manual tag and reclassifies the game from its
// current data.
func (s *Service) ResetToAuto(ctx context.Context, req GameRequest) SyncGameResponse {
	return s.SyncGame(ctx, SyncGameRequest{AppID: req.AppID, Force: true})
}

// GetTagStatistics counts games per tag. Hidden games only count when
// they carry a manual tag.
func (s *Service) GetTagStatistics(_ context.Context) StatisticsResponse {
	stats, err := s.db.TagStatistics()
	if err != nil {
		return StatisticsResponse{Result: failed("tag statistics", err)}
	}
	return StatisticsResponse{Result: succeeded(), Stats: stats}
}
