// Package history - bounded snapshot undo stack over full-resolution
// masks, gated so one continuous brush gesture produces exactly one
// undo step no matter how many pointer samples it spans.
package history

import "github.com/yahyarahhawi/Spotless-Film/mask"

// DefaultCap bounds the undo depth; the oldest snapshot is evicted past it.
const DefaultCap = 20

// Stack is a snapshot-based undo stack. Not safe for concurrent use; the
// engine serializes all access through one editing session.
type Stack struct {
	snapshots []*mask.Mask
	capacity  int
	dragging  bool
}

// NewStack creates a stack bounded to the given capacity; non-positive
// values fall back to DefaultCap.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Stack{capacity: capacity}
}

// Len returns the number of stored snapshots.
func (s *Stack) Len() int { return len(s.snapshots) }

// Dragging reports whether a stroke is currently in progress.
func (s *Stack) Dragging() bool { return s.dragging }

// Push appends a deep copy of m, evicting the oldest snapshot when the
// stack is full. Nil masks are ignored.
func (s *Stack) Push(m *mask.Mask) {
	if m == nil {
		return
	}
	s.snapshots = append(s.snapshots, m.Clone())
	if len(s.snapshots) > s.capacity {
		s.snapshots = s.snapshots[1:]
	}
}

// StartStrokeIfNeeded pushes the current mask exactly once per stroke.
// The first brush sample after pointer-down lands here, sets the
// dragging flag, and snapshots the pre-stroke mask; every further sample
// of the same gesture is a no-op until EndStroke clears the flag.
//
// Returns true when a snapshot was taken.
func (s *Stack) StartStrokeIfNeeded(current *mask.Mask) bool {
	if s.dragging || current == nil {
		return false
	}
	s.Push(current)
	s.dragging = true
	return true
}

// EndStroke closes the in-progress gesture window.
func (s *Stack) EndStroke() {
	s.dragging = false
}

// Undo pops and returns the most recent snapshot. The second return is
// false when there is nothing to undo.
func (s *Stack) Undo() (*mask.Mask, bool) {
	if len(s.snapshots) == 0 {
		return nil, false
	}
	last := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	return last, true
}

// Clear wipes all snapshots and resets the dragging flag. Called on a new
// detection run or when a new image is loaded.
func (s *Stack) Clear() {
	s.snapshots = nil
	s.dragging = false
}
