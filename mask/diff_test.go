package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEditsPreservesErasures(t *testing.T) {
	base := New(8, 8)
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			base.Set(x, y, 255)
		}
	}

	// User erased the top half of the detected region.
	edited := base.Clone()
	for y := 2; y < 4; y++ {
		for x := 2; x < 6; x++ {
			edited.Set(x, y, 0)
		}
	}

	// A lower threshold re-includes everything, plus a new blob.
	candidate := base.Clone()
	candidate.Set(7, 7, 255)

	out := ApplyEdits(candidate, base, edited)
	for y := 2; y < 4; y++ {
		for x := 2; x < 6; x++ {
			assert.False(t, out.IsSet(x, y), "erased pixel (%d,%d) must stay erased", x, y)
		}
	}
	for y := 4; y < 6; y++ {
		for x := 2; x < 6; x++ {
			assert.True(t, out.IsSet(x, y), "untouched detection at (%d,%d) must survive", x, y)
		}
	}
	assert.True(t, out.IsSet(7, 7), "newly detected pixel must not be clobbered")
}

func TestApplyEditsPreservesAdditions(t *testing.T) {
	base := New(4, 4)
	edited := base.Clone()
	edited.Set(0, 0, 255) // manually painted in

	candidate := New(4, 4) // new threshold detects nothing
	out := ApplyEdits(candidate, base, edited)
	assert.True(t, out.IsSet(0, 0), "painted pixel must survive a threshold change")
	assert.Equal(t, 1, out.CountSet())
}

func TestApplyEditsDimensionMismatchIsNoOp(t *testing.T) {
	candidate := New(4, 4)
	candidate.Set(1, 1, 255)
	before := candidate.Clone()

	out := ApplyEdits(candidate, New(5, 5), New(4, 4))
	assert.True(t, before.Equal(out))
}
