package mask

// ApplyEdits transfers manual corrections onto a regenerated candidate
// mask. base is the mask as it came out of thresholding (no manual
// edits) and edited is the mask after the user's brush work. A pixel the
// user erased (set in base, clear in edited) is cleared in the candidate;
// a pixel the user painted in (clear in base, set in edited) is set in
// the candidate. This is a pure pixel-wise compare: no stroke history is
// consulted, so it holds across any number of strokes and undos.
//
// The candidate is modified in place and returned. When dimensions
// disagree or any input is degenerate the candidate is returned
// untouched.
func ApplyEdits(candidate, base, edited *Mask) *Mask {
	if candidate.Degenerate() || base.Degenerate() || edited.Degenerate() {
		return candidate
	}
	if candidate.Width != base.Width || candidate.Height != base.Height ||
		candidate.Width != edited.Width || candidate.Height != edited.Height {
		return candidate
	}

	for i := range candidate.Pix {
		baseSet := base.Pix[i] > setLevel
		editSet := edited.Pix[i] > setLevel
		switch {
		case baseSet && !editSet:
			candidate.Pix[i] = 0
		case !baseSet && editSet:
			candidate.Pix[i] = 255
		}
	}
	return candidate
}
