// Package composite - blending the externally inpainted image back into
// the original photo using the dust mask as a binary matte, plus the
// mask overlay used for on-screen preview.
package composite

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/yahyarahhawi/Spotless-Film/mask"
)

// Blend composites inpainted over original wherever the mask is set.
// The matte is binary: a set pixel takes the inpainted value exactly, an
// unset pixel keeps the original exactly. All three inputs must already
// share the original's pixel dimensions; a mismatch is a contract
// violation reported to the caller, not coerced. Use NormalizeInputs
// first when the inpainted image or mask may be a different size.
//
// Arguments:
// - original: The source photo.
// - inpainted: The externally produced inpainted image.
// - m: The (typically dilated) dust mask.
//
// Returns:
// - *image.RGBA: The composited output, sized like original.
// - error: Dimension mismatch between the three inputs.
func Blend(original, inpainted image.Image, m *mask.Mask) (*image.RGBA, error) {
	if original == nil || inpainted == nil {
		return nil, errors.New("composite: original and inpainted images are required")
	}
	if m.Degenerate() {
		return nil, errors.New("composite: mask is degenerate")
	}

	ob := original.Bounds()
	ib := inpainted.Bounds()
	w, h := ob.Dx(), ob.Dy()
	if ib.Dx() != w || ib.Dy() != h {
		return nil, errors.Errorf("composite: inpainted size %dx%d does not match original %dx%d",
			ib.Dx(), ib.Dy(), w, h)
	}
	if m.Width != w || m.Height != h {
		return nil, errors.Errorf("composite: mask size %dx%d does not match original %dx%d",
			m.Width, m.Height, w, h)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), original, ob.Min, draw.Src)

	// Clip the second pass to the set region of the mask.
	mask.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * m.Width
			for x := 0; x < w; x++ {
				if m.Pix[row+x] <= 127 {
					continue
				}
				r, g, b, a := inpainted.At(ib.Min.X+x, ib.Min.Y+y).RGBA()
				i := out.PixOffset(x, y)
				out.Pix[i+0] = uint8(r >> 8)
				out.Pix[i+1] = uint8(g >> 8)
				out.Pix[i+2] = uint8(b >> 8)
				out.Pix[i+3] = uint8(a >> 8)
			}
		}
	})

	return out, nil
}

// NormalizeInputs rescales the inpainted image and the mask to the
// original's pixel dimensions ahead of compositing: Lanczos for the
// photographic content, nearest-neighbor plus re-binarize for the mask
// so thresholded edges are not averaged. Inputs that already match are
// returned as-is.
func NormalizeInputs(original, inpainted image.Image, m *mask.Mask) (image.Image, *mask.Mask) {
	if original == nil {
		return inpainted, m
	}
	ob := original.Bounds()
	w, h := ob.Dx(), ob.Dy()

	if inpainted != nil {
		ib := inpainted.Bounds()
		if ib.Dx() != w || ib.Dy() != h {
			inpainted = resize.Resize(uint(w), uint(h), inpainted, resize.Lanczos3)
		}
	}
	if !m.Degenerate() && (m.Width != w || m.Height != h) {
		m = mask.Resample(m, w, h)
	}
	return inpainted, m
}

// Overlay renders the mask over an image as a translucent tint for
// on-screen preview of detected dust. Unset pixels pass the image
// through untouched.
//
// Arguments:
// - img: The image to draw over.
// - m: The mask to visualize; must match img's dimensions.
// - tint: The highlight color.
// - opacity: Tint strength in [0, 1].
//
// Returns:
// - *image.RGBA: The tinted preview, or a plain copy when the mask does
//   not line up with the image.
func Overlay(img image.Image, m *mask.Mask, tint color.RGBA, opacity float64) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	if m.Degenerate() || m.Width != w || m.Height != h {
		return out
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	mask.Parallel(h, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := y * m.Width
			for x := 0; x < w; x++ {
				if m.Pix[row+x] <= 127 {
					continue
				}
				i := out.PixOffset(x, y)
				out.Pix[i+0] = lerp8(out.Pix[i+0], tint.R, opacity)
				out.Pix[i+1] = lerp8(out.Pix[i+1], tint.G, opacity)
				out.Pix[i+2] = lerp8(out.Pix[i+2], tint.B, opacity)
			}
		}
	})

	return out
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
