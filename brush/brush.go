// Package brush - circular brush stamps and interpolated strokes over
// the low-resolution working mask.
package brush

import (
	"github.com/chewxy/math32"

	"github.com/yahyarahhawi/Spotless-Film/mask"
)

// Mode selects what a brush pass writes.
type Mode int

const (
	// ModeAdd paints dust in (pixels go to 255).
	ModeAdd Mode = iota
	// ModeErase removes dust (pixels go to 0).
	ModeErase
)

func (m Mode) String() string {
	if m == ModeErase {
		return "erase"
	}
	return "add"
}

// target returns the byte value the mode writes.
func (m Mode) target() uint8 {
	if m == ModeErase {
		return 0
	}
	return 255
}

// Point is a brush sample position in working-buffer pixel coordinates.
// Float32 because brush geometry lives in the same float32 domain as the
// model output the mask came from.
type Point struct {
	X, Y float32
}

// Stamp applies one circular brush imprint at center. Pixels within
// radius (by squared distance, no per-pixel sqrt) are set to the mode's
// target value; pixels already at the target are skipped. The center must
// land inside the buffer or the stamp is dropped entirely.
//
// Returns the number of pixels actually changed; zero means the pass was
// a no-op and the caller should not materialize a new display image or
// push history.
func Stamp(m *mask.Mask, center Point, radius int, mode Mode) int {
	if m.Degenerate() || radius < 1 {
		return 0
	}
	cx, cy := int(center.X), int(center.Y)
	if cx < 0 || cx >= m.Width || cy < 0 || cy >= m.Height {
		return 0
	}

	target := mode.target()
	r2 := radius * radius
	changed := 0

	y0 := clamp(cy-radius, 0, m.Height-1)
	y1 := clamp(cy+radius, 0, m.Height-1)
	x0 := clamp(cx-radius, 0, m.Width-1)
	x1 := clamp(cx+radius, 0, m.Width-1)

	for y := y0; y <= y1; y++ {
		dy := y - cy
		row := y * m.Width
		for x := x0; x <= x1; x++ {
			dx := x - cx
			if dx*dx+dy*dy > r2 {
				continue
			}
			if m.Pix[row+x] == target {
				continue
			}
			m.Pix[row+x] = target
			changed++
		}
	}
	return changed
}

// Stroke connects the previous and current pointer samples with a
// continuous run of stamps so fast drags do not leave gaps. With no
// previous point, or when the two samples are within one pixel, it
// behaves exactly like a single stamp at cur. Stamps are spaced at
// max(1, radius/4) pixels along the segment and applied in order from
// prev to cur.
//
// Returns the total number of pixels changed.
func Stroke(m *mask.Mask, prev *Point, cur Point, radius int, mode Mode) int {
	if prev == nil {
		return Stamp(m, cur, radius, mode)
	}

	dx := cur.X - prev.X
	dy := cur.Y - prev.Y
	dist := math32.Hypot(dx, dy)
	if dist < 1 {
		return Stamp(m, cur, radius, mode)
	}

	spacing := math32.Max(1, 0.25*float32(radius))
	steps := int(math32.Ceil(dist / spacing))
	if steps < 1 {
		steps = 1
	}

	changed := 0
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		p := Point{
			X: prev.X + t*dx,
			Y: prev.Y + t*dy,
		}
		changed += Stamp(m, p, radius, mode)
	}
	return changed
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
