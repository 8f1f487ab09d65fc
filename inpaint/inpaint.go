// Package inpaint - the boundary to the external inpainting step. The
// neural inpainting model is a black box owned by the surrounding
// application; this package defines its contract and ships the classical
// TELEA fallback used when no model is available.
package inpaint

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/yahyarahhawi/Spotless-Film/mask"
)

// Inpainter fills the masked region of an image with synthesized content.
// Implementations receive the original image and the (dilated) dust mask
// at matching pixel dimensions.
type Inpainter interface {
	Inpaint(img image.Image, m *mask.Mask) (image.Image, error)
}

// defaultRadius is the TELEA neighborhood radius in pixels.
const defaultRadius float32 = 5

// Telea is a classical diffusion-based inpainter (Telea 2004, via
// OpenCV). Quality is below a learned model on large regions but it has
// no model file to load and runs everywhere OpenCV does.
type Telea struct {
	// Radius is the inpainting neighborhood radius; zero means the
	// default of 5 pixels.
	Radius float32
}

// NewTelea returns a TELEA inpainter with the default radius.
func NewTelea() *Telea {
	return &Telea{Radius: defaultRadius}
}

// Inpaint fills the set region of m in img.
//
// Arguments:
// - img: The source image.
// - m: The dust mask; must match img's pixel dimensions.
//
// Returns:
// - image.Image: The inpainted image at the source dimensions.
// - error: Dimension mismatch or OpenCV conversion failure.
func (t *Telea) Inpaint(img image.Image, m *mask.Mask) (image.Image, error) {
	if img == nil {
		return nil, errors.New("inpaint: image is nil")
	}
	if m.Degenerate() {
		return nil, errors.New("inpaint: mask is degenerate")
	}
	b := img.Bounds()
	if m.Width != b.Dx() || m.Height != b.Dy() {
		return nil, errors.Errorf("inpaint: mask size %dx%d does not match image %dx%d",
			m.Width, m.Height, b.Dx(), b.Dy())
	}

	radius := t.Radius
	if radius <= 0 {
		radius = defaultRadius
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, errors.Wrap(err, "inpaint: converting image")
	}
	defer src.Close()

	maskMat, err := gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8UC1, m.Pix)
	if err != nil {
		return nil, errors.Wrap(err, "inpaint: converting mask")
	}
	defer maskMat.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Inpaint(src, maskMat, &dst, radius, gocv.Telea)

	out, err := dst.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "inpaint: converting result")
	}
	return out, nil
}
