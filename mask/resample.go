package mask

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
)

// Working-copy sizing. Brush edits run on a downscaled mirror of the
// full-resolution mask so per-pointer-event cost stays bounded on large
// scans; the mirror is reconciled back to full resolution on stroke end.
const (
	// workingScale is the preferred downscale factor for the editing copy.
	workingScale = 0.25
	// maxWorkingDim caps the editing copy's largest dimension in pixels.
	maxWorkingDim = 1024.0
)

// WorkingScale returns the downscale factor for the editing copy of a
// mask with the given full-resolution dimensions: 25% of full size, but
// never larger than maxWorkingDim on the longest axis.
func WorkingScale(width, height int) float64 {
	maxDim := width
	if height > maxDim {
		maxDim = height
	}
	if maxDim <= 0 {
		return workingScale
	}
	return math.Min(workingScale, maxWorkingDim/float64(maxDim))
}

// DeriveWorking produces the low-resolution editing copy of m.
func DeriveWorking(m *Mask) *Mask {
	if m.Degenerate() {
		return m
	}
	scale := WorkingScale(m.Width, m.Height)
	w := int(float64(m.Width) * scale)
	h := int(float64(m.Height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Resample(m, w, h)
}

// Resample scales m to width x height using nearest-neighbor sampling and
// re-binarizes the result. Nearest sampling of a binary buffer cannot
// introduce intermediate values, but the re-binarize keeps the invariant
// explicit for any future filter change.
//
// Degenerate inputs and non-positive target dimensions return the input
// unchanged.
func Resample(m *Mask, width, height int) *Mask {
	if m.Degenerate() || width <= 0 || height <= 0 {
		return m
	}
	if m.Width == width && m.Height == height {
		return m.Clone()
	}

	scaled := resize.Resize(uint(width), uint(height), m.ToGray(), resize.NearestNeighbor)

	var out *Mask
	if g, ok := scaled.(*image.Gray); ok {
		out = FromGray(g)
	} else {
		// The resize library returns *image.Gray for gray input; this
		// path only triggers if the filter choice ever changes.
		out = New(width, height)
		b := scaled.Bounds()
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := color.GrayModel.Convert(scaled.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				out.Pix[y*width+x] = c.Y
			}
		}
	}
	out.Binarize()
	return out
}
