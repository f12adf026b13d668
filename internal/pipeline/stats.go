package pipeline

import (
	"errors"
	"sync"

	"github.com/backmassage/hardlinker/internal/linker"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	RunID          string
	Total          int // Files discovered across all phases.
	Created        int
	SkippedExists  int
	SkippedIgnored int
	Unresolved     int
	Failed         int   // Link failures plus scan errors.
	LinkedBytes    int64 // Sum of source sizes for Created links.
	Interrupted    bool
	Failures       []error
}

// Skipped is the number of links deliberately not made.
func (s *RunStats) Skipped() int {
	return s.SkippedExists + s.SkippedIgnored
}

// Err joins every recorded failure, or returns nil for a clean run.
func (s *RunStats) Err() error {
	return errors.Join(s.Failures...)
}

// tally guards RunStats while workers update it.
type tally struct {
	mu    sync.Mutex
	stats RunStats
}

func (t *tally) record(res linker.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := &t.stats
	switch res.Outcome {
	case linker.Created:
		s.Created++
		s.LinkedBytes += res.Size
	case linker.SkippedExists:
		s.SkippedExists++
	case linker.SkippedIgnored:
		s.SkippedIgnored++
	case linker.FailedIO:
		s.Failed++
		s.Failures = append(s.Failures, res.Err)
	}
}

func (t *tally) unresolved() {
	t.mu.Lock()
	t.stats.Unresolved++
	t.mu.Unlock()
}

func (t *tally) failed(err error) {
	t.mu.Lock()
	t.stats.Failed++
	t.stats.Failures = append(t.stats.Failures, err)
	t.mu.Unlock()
}

func (t *tally) discovered(n int) {
	t.mu.Lock()
	t.stats.Total += n
	t.mu.Unlock()
}

func (t *tally) snapshot() RunStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stats
	s.Failures = append([]error(nil), t.stats.Failures...)
	return s
}
