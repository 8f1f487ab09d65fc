package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelSizeFor(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want int
	}{
		{name: "small image floors at minimum", w: 800, h: 600, want: 5},
		{name: "reference resolution", w: 4000, h: 3000, want: 7},
		{name: "large scan", w: 6000, h: 4000, want: 11},
		{name: "huge scan caps at maximum", w: 12000, h: 9000, want: 15},
		{name: "degenerate", w: 0, h: 0, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KernelSizeFor(tt.w, tt.h)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, got%2, "kernel size must be odd")
		})
	}
}

// Dilation is extensive: every set pixel survives it.
func TestDilateExtensive(t *testing.T) {
	m := New(32, 32)
	// Deterministic scatter.
	for i := range m.Pix {
		if (i*31)%7 == 0 {
			m.Pix[i] = 255
		}
	}

	for _, r := range []int{0, 1, 2, 5} {
		d := Dilate(m, r)
		require.Equal(t, m.Width, d.Width)
		require.Equal(t, m.Height, d.Height)
		for i := range m.Pix {
			if m.Pix[i] > 127 {
				assert.Greater(t, int(d.Pix[i]), 127, "radius %d lost pixel %d", r, i)
			}
		}
	}
}

// A single set pixel dilates to a disc: offsets with dx^2+dy^2 <= r^2.
func TestDilateDiscShape(t *testing.T) {
	m := New(11, 11)
	m.Set(5, 5, 255)

	d := Dilate(m, 2)
	// r=2 disc on the integer lattice has 13 pixels.
	assert.Equal(t, 13, d.CountSet())
	assert.True(t, d.IsSet(5, 3))
	assert.True(t, d.IsSet(3, 5))
	assert.False(t, d.IsSet(3, 3), "corner at distance sqrt(8) must stay outside the disc")
}

// Edge-extend sampling: dilation must not shrink the mask at borders.
func TestDilateEdgeExtend(t *testing.T) {
	m := New(8, 8)
	m.Set(0, 0, 255)

	d := Dilate(m, 1)
	assert.True(t, d.IsSet(0, 0), "corner pixel must survive")
	assert.True(t, d.IsSet(1, 0))
	assert.True(t, d.IsSet(0, 1))
	assert.False(t, d.IsSet(1, 1), "diagonal is outside an r=1 disc")
}

func TestDilateDegenerateAndZeroRadius(t *testing.T) {
	degen := New(0, 0)
	assert.Same(t, degen, Dilate(degen, 3), "degenerate input returned unchanged")

	m := New(4, 4)
	m.Set(2, 2, 255)
	d := Dilate(m, 0)
	assert.True(t, m.Equal(d))
	assert.NotSame(t, m, d, "zero radius still returns a copy")
}
