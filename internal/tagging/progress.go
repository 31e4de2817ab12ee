package tagging

import (
	"errors"
	"sync"
)

// ErrSyncInProgress is returned when a library sync starts while another
// one is still running.
var ErrSyncInProgress = errors.New("library sync already in progress")

// Progress is a point-in-time view of a library sync.
type Progress struct {
	Syncing bool `json:"syncing"`
	Current int  `json:"current"`
	Total   int  `json:"total"`
}

// ProgressTracker holds the progress of the running library sync. Begin
// refuses to start a second sync until End is called.
type ProgressTracker struct {
	mu sync.Mutex
	p  Progress
}

// NewProgressTracker creates an idle tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// Begin marks a sync of total games as started.
func (t *ProgressTracker) Begin(total int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.p.Syncing {
		return ErrSyncInProgress
	}
	t.p = Progress{Syncing: true, Total: total}
	return nil
}

// Advance records that current games have been processed.
func (t *ProgressTracker) Advance(current int) {
	t.mu.Lock()
	t.p.Current = current
	t.mu.Unlock()
}

// End resets the tracker to idle.
func (t *ProgressTracker) End() {
	t.mu.Lock()
	t.p = Progress{}
	t.mu.Unlock()
}

// Snapshot returns the current progress.
func (t *ProgressTracker) Snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.p
}
