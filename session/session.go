// Package session - the editing session that ties the probability map,
// the full-resolution mask, its low-resolution working mirror, brush
// strokes, and undo history together.
//
// One session owns one detection run. All methods assume externally
// serialized access; the heavy buffer work inside them is bounded-time
// and safe to run off the interactive thread, with only the returned
// results installed on whatever thread owns display state.
package session

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/yahyarahhawi/Spotless-Film/brush"
	"github.com/yahyarahhawi/Spotless-Film/composite"
	"github.com/yahyarahhawi/Spotless-Film/history"
	"github.com/yahyarahhawi/Spotless-Film/mask"
	"github.com/yahyarahhawi/Spotless-Film/probmap"
	"github.com/yahyarahhawi/Spotless-Film/view"
)

// State is the session's lifecycle phase.
type State int

const (
	// StateIdle means no detection has run; there is no mask.
	StateIdle State = iota
	// StateDetected means a mask exists and is not mid-stroke.
	StateDetected
	// StateEditing means a brush stroke is in progress on the working buffer.
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateDetected:
		return "detected"
	case StateEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Session orchestrates interactive mask editing for one image.
type Session struct {
	state State

	pm        *probmap.Map
	threshold float32

	imgW, imgH int

	// full is the displayed full-resolution mask; authoritative for
	// compositing once reconciled. base is the mask as generated purely
	// from the probability map with no manual edits; kept so threshold
	// changes can re-apply the user's edits as a pixel-wise diff.
	full *mask.Mask
	base *mask.Mask

	// working is the low-resolution mirror brush strokes run against.
	working *mask.Mask

	hist *history.Stack

	// Per-tool stroke state, in working-buffer pixel coordinates.
	lastBrush  *brush.Point
	lastEraser *brush.Point

	debug bool
}

// New creates an idle session.
func New() *Session {
	return &Session{hist: history.NewStack(history.DefaultCap)}
}

// SetDebug toggles progress reporting to stdout.
func (s *Session) SetDebug(enabled bool) { s.debug = enabled }

func (s *Session) debugf(format string, args ...any) {
	if s.debug {
		fmt.Printf("[session] "+format+"\n", args...)
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Threshold returns the active detection threshold.
func (s *Session) Threshold() float32 { return s.threshold }

// LiveMask returns the mask to render right now. During a stroke this is
// the working buffer upscaled for display and not yet authoritative.
func (s *Session) LiveMask() *mask.Mask { return s.full }

// BaseMask returns the un-edited mask derived purely from the
// probability map at the current threshold.
func (s *Session) BaseMask() *mask.Mask { return s.base }

// Working returns the low-resolution editing buffer.
func (s *Session) Working() *mask.Mask { return s.working }

// CanUndo reports whether an undo snapshot is available.
func (s *Session) CanUndo() bool { return s.hist.Len() > 0 }

// CompleteDetection installs the result of a detection run: thresholds
// the probability map at grid size, resamples the binary mask to image
// size, snapshots it as the base mask, derives the working copy, and
// clears undo history.
//
// Arguments:
// - pm: The probability map from the detection model.
// - imgW, imgH: The original image's pixel dimensions.
// - threshold: The detection threshold in (0, 1).
//
// Returns:
// - error: Nil probability map, degenerate dimensions, or an invalid
//   threshold.
func (s *Session) CompleteDetection(pm *probmap.Map, imgW, imgH int, threshold float32) error {
	if pm == nil {
		return errors.New("session: probability map is nil")
	}
	if imgW <= 0 || imgH <= 0 {
		return errors.Errorf("session: degenerate image dimensions %dx%d", imgW, imgH)
	}
	if !probmap.ValidThreshold(threshold) {
		return errors.Errorf("session: threshold %v out of range (0, 1)", threshold)
	}

	// Threshold first, then resize the binary mask. Resizing the float
	// grid first would average probabilities across edges.
	grid := pm.Threshold(threshold)
	full := mask.Resample(grid, imgW, imgH)

	s.pm = pm
	s.threshold = threshold
	s.imgW, s.imgH = imgW, imgH
	s.full = full
	s.base = full.Clone()
	s.working = mask.DeriveWorking(full)
	s.hist.Clear()
	s.clearStrokeState()
	s.state = StateDetected

	lo, hi := pm.Range()
	s.debugf("detection complete: grid %dx%d, image %dx%d, prob range [%.4f, %.4f], %d px set",
		pm.Width(), pm.Height(), imgW, imgH, lo, hi, full.CountSet())
	return nil
}

// SetThreshold regenerates the mask from the stored probability map at a
// new threshold while preserving manual corrections: the pixel-wise diff
// between the stored base mask and the edited mask is re-applied onto
// the fresh candidate before it is committed. Erased pixels stay erased
// and painted pixels stay painted even when the new threshold would
// decide otherwise. No stroke history is consulted.
//
// A call before any detection is a silent no-op.
func (s *Session) SetThreshold(threshold float32) error {
	if s.pm == nil {
		return nil
	}
	if !probmap.ValidThreshold(threshold) {
		return errors.Errorf("session: threshold %v out of range (0, 1)", threshold)
	}

	candidate := mask.Resample(s.pm.Threshold(threshold), s.imgW, s.imgH)
	pure := candidate.Clone()

	if s.base != nil && s.full != nil {
		candidate = mask.ApplyEdits(candidate, s.base, s.full)
	}

	s.threshold = threshold
	s.full = candidate
	s.base = pure
	s.working = mask.DeriveWorking(candidate)
	s.clearStrokeState()
	s.hist.EndStroke()
	if s.state == StateEditing {
		s.state = StateDetected
	}

	s.debugf("threshold %.4f: %d px set (%d before edits)", threshold, candidate.CountSet(), pure.CountSet())
	return nil
}

// BrushSample applies one pointer sample of a brush or eraser drag.
// The canvas point is mapped into the working buffer's own pixel space;
// points outside the displayed image are silent no-ops that leave mask
// and history untouched. The first effective sample of a gesture pushes
// an undo snapshot. After the stroke segment is rasterized the working
// buffer is upscaled over the full-resolution mask for immediate visual
// feedback; the authoritative reconcile happens in EndStroke.
//
// Arguments:
// - canvasPt: The pointer position in canvas units.
// - canvas: The canvas dimensions.
// - dt: The current display transform (zoom, anchor, pan).
// - screenRadius: The brush radius in canvas units.
// - mode: brush.ModeAdd or brush.ModeErase.
//
// Returns:
// - bool: Whether any pixel changed (drives display refresh).
func (s *Session) BrushSample(canvasPt view.PointF, canvas view.SizeF, dt view.DisplayTransform, screenRadius float64, mode brush.Mode) bool {
	if s.full == nil || s.working.Degenerate() {
		return false
	}

	imgSize := view.SizeF{W: float64(s.imgW), H: float64(s.imgH)}
	pt, ok := view.MapToBuffer(canvasPt, canvas, imgSize, dt, s.working.Width, s.working.Height)
	if !ok {
		return false
	}

	rect := view.FitRect(canvas, imgSize)
	radius := view.MapBrushRadius(screenRadius, rect.W, s.working.Width)

	cur := brush.Point{X: float32(pt.X), Y: float32(pt.Y)}
	prev := s.lastPoint(mode)
	changed := brush.Stroke(s.working, prev, cur, radius, mode)
	s.setLastPoint(mode, cur)

	if changed == 0 {
		// Nothing moved: no history entry, no new display image.
		return false
	}

	// Snapshot the pre-stroke mask exactly once per gesture. full has
	// not been touched yet this gesture, so the first effective sample
	// still sees the pre-stroke state.
	s.hist.StartStrokeIfNeeded(s.full)
	s.state = StateEditing

	// Cheap upscale for live feedback; not yet authoritative.
	s.full = mask.Resample(s.working, s.imgW, s.imgH)

	s.debugf("%s sample at (%d,%d) r=%d changed %d px", mode, pt.X, pt.Y, radius, changed)
	return true
}

// EndStroke reconciles the working buffer into the authoritative
// full-resolution mask and clears per-stroke state. Safe to call when no
// stroke is in progress.
func (s *Session) EndStroke() {
	if s.working != nil && s.full != nil {
		s.full = mask.Resample(s.working, s.imgW, s.imgH)
	}
	s.clearStrokeState()
	s.hist.EndStroke()
	if s.state == StateEditing {
		s.state = StateDetected
	}
}

// Undo restores the most recent snapshot as both the full-resolution
// mask and a freshly derived working copy. Returns false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	snap, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.full = snap
	s.working = mask.DeriveWorking(snap)
	s.clearStrokeState()
	s.hist.EndStroke()
	if s.state == StateEditing {
		s.state = StateDetected
	}
	s.debugf("undo: %d snapshots remain", s.hist.Len())
	return true
}

// Reset drops all per-detection state and returns the session to idle.
// Called when a new image is loaded.
func (s *Session) Reset() {
	s.pm = nil
	s.full = nil
	s.base = nil
	s.working = nil
	s.imgW, s.imgH = 0, 0
	s.threshold = 0
	s.hist.Clear()
	s.clearStrokeState()
	s.state = StateIdle
}

// RemovalMask returns the full-resolution mask dilated for inpainting
// coverage, with the kernel sized to the image resolution. Nil when no
// detection has run.
func (s *Session) RemovalMask() *mask.Mask {
	if s.full == nil {
		return nil
	}
	radius := mask.KernelSizeFor(s.imgW, s.imgH) / 2
	return mask.Dilate(s.full, radius)
}

// Composite blends the externally inpainted image back into the original
// using the dilated mask as a binary matte. The inpainted image and mask
// are normalized to the original's dimensions before blending; a
// remaining mismatch is reported as an error.
func (s *Session) Composite(original, inpainted image.Image) (*image.RGBA, error) {
	if s.full == nil {
		return nil, errors.New("session: no mask to composite with")
	}
	dilated := s.RemovalMask()
	inpainted, dilated = composite.NormalizeInputs(original, inpainted, dilated)
	return composite.Blend(original, inpainted, dilated)
}

func (s *Session) lastPoint(mode brush.Mode) *brush.Point {
	if mode == brush.ModeErase {
		return s.lastEraser
	}
	return s.lastBrush
}

func (s *Session) setLastPoint(mode brush.Mode, p brush.Point) {
	if mode == brush.ModeErase {
		s.lastEraser = &p
	} else {
		s.lastBrush = &p
	}
}

func (s *Session) clearStrokeState() {
	s.lastBrush = nil
	s.lastEraser = nil
}
