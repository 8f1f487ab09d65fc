package inpaint

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yahyarahhawi/Spotless-Film/mask"
)

// The OpenCV paths need a linked runtime; these cover the contract
// checks that run before any Mat is created.
func TestInpaintValidation(t *testing.T) {
	inp := NewTelea()
	assert.Equal(t, defaultRadius, inp.Radius)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))

	tests := []struct {
		name string
		img  image.Image
		m    *mask.Mask
	}{
		{name: "nil image", img: nil, m: mask.New(8, 8)},
		{name: "nil mask", img: img, m: nil},
		{name: "degenerate mask", img: img, m: &mask.Mask{}},
		{name: "mask too small", img: img, m: mask.New(4, 4)},
		{name: "mask too large", img: img, m: mask.New(16, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := inp.Inpaint(tt.img, tt.m)
			assert.Error(t, err)
			assert.Nil(t, out)
		})
	}
}

var _ Inpainter = (*Telea)(nil)
