// Package service exposes the tracker's caller-facing operations. Each
// operation takes one typed request, validates it once, and returns a
// result that carries its own success flag; no operation returns a Go error.
//
// The CLI and the MCP server both go through this package so they behave
// the same way.
package service

import (
	"context"
	"time"

	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/hltb"
	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/steam"
	"github.com/asteroid-belt/gametracker/internal/tagging"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
)

// Library is the local game inventory. *steam.Library implements it.
type Library interface {
	GameName(appID string) (string, bool)
	Stats(appID string) steam.LocalStats
	InstalledGames() []models.GameSummary
	NonSteamGames() []models.GameSummary
}

// Options configures a Service. Every field is optional.
type Options struct {
	Library   Library
	Names     tagging.NameLookup
	Searcher  hltb.Searcher
	Pacing    time.Duration
	Sweeper   tagging.SweeperConfig
	Telemetry telemetry.Client
}

// Service implements the tracker operations on top of the store.
type Service struct {
	db        *db.DB
	library   Library
	names     tagging.NameLookup
	orch      *tagging.Orchestrator
	sweeper   *tagging.Sweeper
	telemetry telemetry.Client
	now       func() time.Time
}

// New wires a Service around database.
func New(database *db.DB, opts Options) *Service {
	tc := opts.Telemetry
	if tc == nil {
		tc = telemetry.Noop()
	}

	s := &Service{
		db:        database,
		library:   opts.Library,
		names:     opts.Names,
		telemetry: tc,
		now:       time.Now,
	}

	s.orch = tagging.NewOrchestrator(database, hltb.NewGateway(database, opts.Searcher), tagging.Options{
		Inventory: opts.Library,
		Names:     opts.Names,
		Pacing:    opts.Pacing,
		Now:       func() time.Time { return s.now() },
	})

	sweep := opts.Sweeper
	if sweep == (tagging.SweeperConfig{}) {
		sweep = tagging.DefaultSweeperConfig()
	}
	s.sweeper = tagging.NewSweeper(database, sweep)
	s.sweeper.OnSweep = func(tagged int, err error) {
		if err == nil {
			s.telemetry.TrackDroppedSweep(tagged, true)
		}
	}
	return s
}

// StartSweeper launches the background dropped-game sweep.
func (s *Service) StartSweeper(ctx context.Context) {
	s.sweeper.Start(ctx)
}

// StopSweeper stops the background sweep and waits for it to exit. It is
// safe to call when the sweeper was never started.
func (s *Service) StopSweeper() {
	if !s.sweeper.IsRunning() {
		return
	}
	s.sweeper.Stop()
	s.sweeper.Wait()
}

// Result is embedded in every response.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	err error
}

// Err returns the failure behind an unsuccessful result, or nil.
func (r Result) Err() error {
	return r.err
}

func succeeded() Result {
	return Result{Success: true}
}

func failed(op string, err error) Result {
	log.Errorf("%s: %v", op, err)
	return Result{Error: err.Error(), err: err}
}
