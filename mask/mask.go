// Package mask - single-channel dust mask buffers and the dense pixel
// operations applied to them (morphology, resampling, edit diffing).
//
// A mask stores one byte per pixel: 0 means "not dust", 255 means "dust".
// Every reader in the engine treats values above 127 as set, so masks that
// pass through a resampling filter are re-binarized before use.
package mask

import "image"

// setLevel is the cutoff above which a pixel counts as set.
const setLevel = 127

// Mask is a single-channel byte buffer over a width x height pixel grid.
type Mask struct {
	// Pix holds one byte per pixel in row-major order.
	Pix []uint8
	// Width is the number of pixels per row.
	Width int
	// Height is the number of rows.
	Height int
}

// New creates a zeroed mask of the given dimensions. Non-positive
// dimensions produce a degenerate mask that every operation treats as a
// no-op input.
func New(width, height int) *Mask {
	if width <= 0 || height <= 0 {
		return &Mask{Width: width, Height: height}
	}
	return &Mask{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// FromGray copies an image.Gray into a mask without re-binarizing.
func FromGray(g *image.Gray) *Mask {
	if g == nil {
		return New(0, 0)
	}
	b := g.Bounds()
	m := New(b.Dx(), b.Dy())
	if m.Degenerate() {
		return m
	}
	for y := 0; y < m.Height; y++ {
		src := g.Pix[y*g.Stride : y*g.Stride+m.Width]
		copy(m.Pix[y*m.Width:(y+1)*m.Width], src)
	}
	return m
}

// ToGray copies the mask into a standard image.Gray for interop with
// resampling filters and display surfaces.
func (m *Mask) ToGray() *image.Gray {
	if m.Degenerate() {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		copy(g.Pix[y*g.Stride:y*g.Stride+m.Width], m.Pix[y*m.Width:(y+1)*m.Width])
	}
	return g
}

// Degenerate reports whether the mask has no addressable pixels.
func (m *Mask) Degenerate() bool {
	return m == nil || m.Width <= 0 || m.Height <= 0 || len(m.Pix) < m.Width*m.Height
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}
	c := &Mask{Width: m.Width, Height: m.Height}
	if len(m.Pix) > 0 {
		c.Pix = make([]uint8, len(m.Pix))
		copy(c.Pix, m.Pix)
	}
	return c
}

// At returns the byte at (x, y), or 0 when out of range.
func (m *Mask) At(x, y int) uint8 {
	if m.Degenerate() || x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Set writes the byte at (x, y); out-of-range writes are dropped.
func (m *Mask) Set(x, y int, v uint8) {
	if m.Degenerate() || x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// IsSet reports whether the pixel at (x, y) counts as dust.
func (m *Mask) IsSet(x, y int) bool {
	return m.At(x, y) > setLevel
}

// Fill sets every pixel to v.
func (m *Mask) Fill(v uint8) {
	if m.Degenerate() {
		return
	}
	for i := range m.Pix {
		m.Pix[i] = v
	}
}

// CountSet returns the number of set pixels.
func (m *Mask) CountSet() int {
	if m.Degenerate() {
		return 0
	}
	n := 0
	for _, v := range m.Pix {
		if v > setLevel {
			n++
		}
	}
	return n
}

// Equal reports pixel-exact equality of dimensions and contents.
func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Width != o.Width || m.Height != o.Height || len(m.Pix) != len(o.Pix) {
		return false
	}
	for i, v := range m.Pix {
		if v != o.Pix[i] {
			return false
		}
	}
	return true
}

// Binarize snaps every pixel to 0 or 255 in place. Called after any
// resampling pass so downstream >127 checks stay exact.
func (m *Mask) Binarize() {
	if m.Degenerate() {
		return
	}
	for i, v := range m.Pix {
		if v > setLevel {
			m.Pix[i] = 255
		} else {
			m.Pix[i] = 0
		}
	}
}
