package mask

// Adaptive kernel sizing bounds. Dilation coverage should look the same on
// a 1000px scan and a 8000px scan, so the kernel grows with resolution
// instead of being fixed to one reference size.
const (
	minKernelSize = 5
	maxKernelSize = 15
	// kernelFraction divides the minimum image dimension to pick a size.
	kernelFraction = 400
)

// KernelSizeFor returns the dilation kernel size (diameter, always odd)
// appropriate for an image of the given pixel dimensions, clamped to
// [minKernelSize, maxKernelSize].
func KernelSizeFor(width, height int) int {
	minDim := width
	if height < minDim {
		minDim = height
	}
	if minDim <= 0 {
		return minKernelSize
	}
	size := minDim / kernelFraction
	if size%2 == 0 {
		size++
	}
	if size < minKernelSize {
		return minKernelSize
	}
	if size > maxKernelSize {
		return maxKernelSize
	}
	return size
}

// Dilate grows the set regions of m by a disc-shaped structuring element.
// A kernel offset belongs to the disc iff its squared Euclidean distance
// from the center is at most radius squared. Sampling clamps coordinates
// at the buffer edges (edge-extend) so dilation never shrinks the mask at
// borders. The input is not modified.
//
// Arguments:
// - m: The mask to dilate.
// - radius: Disc radius in pixels; radius <= 0 returns a plain copy.
//
// Returns:
// - A new dilated mask, or the input itself when it is degenerate.
func Dilate(m *Mask, radius int) *Mask {
	if m.Degenerate() {
		return m
	}
	if radius <= 0 {
		return m.Clone()
	}

	offsets := discOffsets(radius)
	out := New(m.Width, m.Height)

	// Each output row only reads input rows within the kernel radius, so
	// rows can be processed independently.
	Parallel(m.Height, func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			for x := 0; x < m.Width; x++ {
				var maxVal uint8
				for _, off := range offsets {
					sx := clampInt(x+off.dx, 0, m.Width-1)
					sy := clampInt(y+off.dy, 0, m.Height-1)
					if v := m.Pix[sy*m.Width+sx]; v > maxVal {
						maxVal = v
						if maxVal == 255 {
							break
						}
					}
				}
				out.Pix[y*m.Width+x] = maxVal
			}
		}
	})

	return out
}

type kernelOffset struct {
	dx, dy int
}

// discOffsets enumerates the offsets of a disc structuring element of the
// given radius.
func discOffsets(radius int) []kernelOffset {
	offsets := make([]kernelOffset, 0, (2*radius+1)*(2*radius+1))
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				offsets = append(offsets, kernelOffset{dx: dx, dy: dy})
			}
		}
	}
	return offsets
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
