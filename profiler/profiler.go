// Package profiler provides lightweight timing of pipeline stages for
// the command-line tool's --profile output.
package profiler

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// StageTimer records wall-clock durations per named stage. Safe for
// concurrent use.
type StageTimer struct {
	mu     sync.Mutex
	stages map[string]*stageStats
	order  []string
}

// stageStats accumulates timing statistics for one stage.
type stageStats struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// New creates an empty stage timer.
func New() *StageTimer {
	return &StageTimer{stages: make(map[string]*stageStats)}
}

// Track starts timing a stage and returns the function that stops it:
//
//	defer timer.Track("dilate")()
func (t *StageTimer) Track(name string) func() {
	start := time.Now()
	return func() {
		t.Record(name, time.Since(start))
	}
}

// Record adds one observed duration for a stage.
func (t *StageTimer) Record(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.stages[name]
	if !ok {
		s = &stageStats{min: d, max: d}
		t.stages[name] = s
		t.order = append(t.order, name)
	}
	s.count++
	s.total += d
	if d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
}

// Total returns the accumulated duration of one stage.
func (t *StageTimer) Total(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.stages[name]; ok {
		return s.total
	}
	return 0
}

// Report formats all recorded stages, in first-recorded order, with
// count, total, average, and min/max per stage.
func (t *StageTimer) Report() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.order) == 0 {
		return "no stages recorded"
	}

	width := 0
	for _, name := range t.order {
		if len(name) > width {
			width = len(name)
		}
	}

	var b strings.Builder
	for _, name := range t.order {
		s := t.stages[name]
		avg := s.total / time.Duration(s.count)
		fmt.Fprintf(&b, "%-*s  n=%-3d total=%-10v avg=%-10v min=%v max=%v\n",
			width, name, s.count, s.total.Round(time.Microsecond),
			avg.Round(time.Microsecond), s.min.Round(time.Microsecond), s.max.Round(time.Microsecond))
	}
	return b.String()
}

// StageNames returns the recorded stage names sorted alphabetically.
func (t *StageTimer) StageNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := append([]string(nil), t.order...)
	sort.Strings(names)
	return names
}
