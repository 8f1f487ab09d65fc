package util

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/yahyarahhawi/Spotless-Film/mask"
	"github.com/yahyarahhawi/Spotless-Film/probmap"
)

// LoadImage reads and decodes an image file (PNG or JPEG).
//
// Arguments:
// - path: Path to the image file.
//
// Returns:
// - image.Image: The decoded image.
// - error: Error if reading or decoding fails.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}

// LoadProbabilityMap reads a probability grid stored as a grayscale
// image: each pixel's luminance over 255 is the dust probability of that
// grid cell. This is the interchange format the detection step exports.
//
// Arguments:
// - path: Path to the grayscale probability image.
//
// Returns:
// - *probmap.Map: The decoded probability grid.
// - error: Error if reading or decoding fails.
func LoadProbabilityMap(path string) (*probmap.Map, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	values := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			values[y*w+x] = float32(g.Y) / 255.0
		}
	}
	return probmap.FromSlice(values, w, h)
}

// SaveImage encodes an image to disk, with the format chosen by the
// file extension (.png, .jpg, .jpeg).
func SaveImage(path string, img image.Image) error {
	if img == nil {
		return errors.New("image is nil")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		return errors.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	return errors.Wrapf(err, "encoding %s", path)
}

// SaveMask writes a binary mask to disk as a grayscale PNG.
func SaveMask(path string, m *mask.Mask) error {
	if m.Degenerate() {
		return errors.New("mask is degenerate")
	}
	return SaveImage(path, m.ToGray())
}
