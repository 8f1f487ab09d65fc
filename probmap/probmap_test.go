package probmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

// testGrid builds a deterministic 16x16 probability surface.
func testGrid() []float32 {
	values := make([]float32, 16*16)
	for i := range values {
		values[i] = float32((i*37)%100) / 100.0
	}
	return values
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *tensor.Dense
		wantErr bool
	}{
		{
			name: "valid 2d float32",
			build: func() *tensor.Dense {
				return tensor.New(tensor.WithShape(4, 4), tensor.WithBacking(make([]float32, 16)))
			},
		},
		{
			name:    "nil tensor",
			build:   func() *tensor.Dense { return nil },
			wantErr: true,
		},
		{
			name: "wrong dtype",
			build: func() *tensor.Dense {
				return tensor.New(tensor.WithShape(4, 4), tensor.WithBacking(make([]float64, 16)))
			},
			wantErr: true,
		},
		{
			name: "wrong rank",
			build: func() *tensor.Dense {
				return tensor.New(tensor.WithShape(2, 2, 4), tensor.WithBacking(make([]float32, 16)))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.build())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 4, p.Width())
				assert.Equal(t, 4, p.Height())
			}
		})
	}
}

func TestFromSliceValidation(t *testing.T) {
	_, err := FromSlice(make([]float32, 10), 4, 4)
	assert.Error(t, err, "size mismatch must be rejected")

	_, err = FromSlice(nil, 0, 4)
	assert.Error(t, err, "degenerate dimensions must be rejected")

	p, err := FromSlice(make([]float32, 12), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Width())
	assert.Equal(t, 3, p.Height())
}

// Increasing the threshold never increases the set pixel count.
func TestThresholdMonotonic(t *testing.T) {
	p, err := FromSlice(testGrid(), 16, 16)
	require.NoError(t, err)

	prev := p.Threshold(0.0).CountSet()
	for _, th := range []float32{0.1, 0.25, 0.5, 0.75, 0.9, 0.99} {
		n := p.Threshold(th).CountSet()
		assert.LessOrEqual(t, n, prev, "threshold %v grew the mask", th)
		prev = n
	}
	assert.Equal(t, 0, p.Threshold(0.99).CountSet())
}

func TestThresholdStrictCompare(t *testing.T) {
	p, err := FromSlice([]float32{0.5, 0.51, 0.49, 0.5}, 2, 2)
	require.NoError(t, err)

	m := p.Threshold(0.5)
	// Strictly greater-than: exactly one cell exceeds 0.5.
	assert.Equal(t, 1, m.CountSet())
	assert.True(t, m.IsSet(1, 0))
}

func TestRange(t *testing.T) {
	p, err := FromSlice([]float32{0.2, 0.9, 0.05, 0.4}, 2, 2)
	require.NoError(t, err)

	lo, hi := p.Range()
	assert.InDelta(t, 0.05, float64(lo), 1e-6)
	assert.InDelta(t, 0.9, float64(hi), 1e-6)
}

func TestValidThreshold(t *testing.T) {
	assert.True(t, ValidThreshold(DefaultThreshold))
	assert.True(t, ValidThreshold(0.999))
	assert.False(t, ValidThreshold(0))
	assert.False(t, ValidThreshold(1))
	assert.False(t, ValidThreshold(-0.1))
}
