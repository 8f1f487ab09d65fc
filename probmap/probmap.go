// Package probmap - the per-pixel dust probability grid produced by the
// external detection model, and the thresholding that turns it into a
// binary mask.
package probmap

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/yahyarahhawi/Spotless-Film/mask"
)

// DefaultThreshold matches the detection UI's initial slider position.
const DefaultThreshold float32 = 0.05

// Map is a single-channel float32 probability grid in [0, 1]. The model
// emits a fixed-size grid (typically 1024x1024) regardless of the source
// image dimensions; thresholding happens at grid size and the resulting
// binary mask is resampled to image size afterwards, never the reverse.
type Map struct {
	dense  *tensor.Dense
	width  int
	height int
}

// New wraps a model-output tensor as a probability map.
//
// Arguments:
// - t: A rank-2 float32 tensor shaped (height, width).
//
// Returns:
// - *Map: The validated probability map.
// - error: Shape or dtype violations.
func New(t *tensor.Dense) (*Map, error) {
	if t == nil {
		return nil, errors.New("probability tensor is nil")
	}
	if t.Dtype() != tensor.Float32 {
		return nil, errors.Errorf("probability tensor must be float32, got %v", t.Dtype())
	}
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, errors.Errorf("probability tensor must be rank 2 (H, W), got shape %v", shape)
	}
	h, w := shape[0], shape[1]
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("degenerate probability grid: %dx%d", w, h)
	}
	return &Map{dense: t, width: w, height: h}, nil
}

// FromSlice builds a probability map from a raw row-major float32 slice.
func FromSlice(values []float32, width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("degenerate probability grid: %dx%d", width, height)
	}
	if len(values) != width*height {
		return nil, errors.Errorf("probability grid size mismatch: have %d values, need %d",
			len(values), width*height)
	}
	t := tensor.New(tensor.WithShape(height, width), tensor.WithBacking(values))
	return New(t)
}

// Width returns the grid width in cells.
func (p *Map) Width() int { return p.width }

// Height returns the grid height in cells.
func (p *Map) Height() int { return p.height }

// Values exposes the raw row-major grid data.
func (p *Map) Values() []float32 {
	return p.dense.Data().([]float32)
}

// Range scans the grid for its minimum and maximum probability. Used for
// threshold sanity reporting; an all-zero range means the model saw no
// dust at all.
func (p *Map) Range() (min, max float32) {
	values := p.Values()
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		min = math32.Min(min, v)
		max = math32.Max(max, v)
	}
	return min, max
}

// ValidThreshold reports whether t is a usable detection threshold.
func ValidThreshold(t float32) bool {
	return t > 0 && t < 1
}

// Threshold produces a binary mask at grid size: 255 where the
// probability strictly exceeds t, 0 elsewhere. Increasing t can only
// clear pixels, never set new ones.
func (p *Map) Threshold(t float32) *mask.Mask {
	out := mask.New(p.width, p.height)
	values := p.Values()
	for i, v := range values {
		if v > t {
			out.Pix[i] = 255
		}
	}
	return out
}
