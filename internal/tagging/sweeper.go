package tagging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asteroid-belt/gametracker/internal/log"
	"github.com/asteroid-belt/gametracker/internal/models"
)

// SweepStore is the persistence a sweep needs.
type SweepStore interface {
	SetTag(appID string, tag models.Tag, isManual bool) error
	EligibleForDropped(days int, now int64) ([]models.GameStats, error)
}

// SweeperConfig controls the background schedule.
type SweeperConfig struct {
	Days         int
	InitialDelay time.Duration
	Interval     time.Duration
	RetryDelay   time.Duration
}

// DefaultSweeperConfig waits an hour, then sweeps daily with a 365 day
// threshold.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Days:         DroppedAfterDays,
		InitialDelay: time.Hour,
		Interval:     24 * time.Hour,
		RetryDelay:   time.Hour,
	}
}

// Sweeper tags long-idle games as dropped, on demand or on a schedule.
type Sweeper struct {
	store  SweepStore
	config SweeperConfig
	now    func() time.Time

	// OnSweep, if set, is called after every scheduled sweep.
	OnSweep func(tagged int, err error)

	mu         sync.Mutex
	running    bool
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// NewSweeper creates a Sweeper.
func NewSweeper(store SweepStore, cfg SweeperConfig) *Sweeper {
	if cfg.Days <= 0 {
		cfg.Days = DroppedAfterDays
	}
	return &Sweeper{
		store:  store,
		config: cfg,
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// Sweep tags every eligible game as dropped (automatic) and returns how
// many were tagged. Eligible means last played more than days ago, not
// hidden, not manually tagged, and not already dropped, completed or
// mastered. A failed write is logged and skipped.
func (s *Sweeper) Sweep(ctx context.Context, days int) (int, error) {
	now := s.now().Unix()
	eligible, err := s.store.EligibleForDropped(days, now)
	if err != nil {
		return 0, fmt.Errorf("find dropped games: %w", err)
	}

	tagged := 0
	for _, g := range eligible {
		if err := ctx.Err(); err != nil {
			return tagged, err
		}
		if err := s.store.SetTag(g.AppID, models.TagDropped, false); err != nil {
			log.Errorf("tag %s (%s) as dropped: %v", g.GameName, g.AppID, err)
			continue
		}
		tagged++
		log.Debugf("dropped: %s (%s), idle %d days", g.GameName, g.AppID, (now-g.LastPlayed())/secondsPerDay)
	}
	return tagged, nil
}

// Start launches the schedule in a goroutine and returns immediately. A
// second Start while running is a no-op; a Sweeper runs at most once.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running || s.cancelFunc != nil {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancelFunc = context.WithCancel(ctx)
	s.mu.Unlock()

	go s.run(ctx)
}

// Stop cancels the schedule. Any sleep in progress ends immediately.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()
}

// Wait blocks until a started schedule has exited.
func (s *Sweeper) Wait() {
	<-s.done
}

// IsRunning returns whether the schedule is active.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) run(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(s.done)
	}()

	log.Debugf("dropped-game sweeper started")
	if sleepCtx(ctx, s.config.InitialDelay) != nil {
		return
	}

	for {
		tagged, err := s.Sweep(ctx, s.config.Days)
		if s.OnSweep != nil {
			s.OnSweep(tagged, err)
		}

		wait := s.config.Interval
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Errorf("dropped-game sweep: %v", err)
			wait = s.config.RetryDelay
		} else {
			log.Debugf("dropped-game sweep tagged %d games", tagged)
		}

		if sleepCtx(ctx, wait) != nil {
			log.Debugf("dropped-game sweeper stopped")
			return
		}
	}
}
