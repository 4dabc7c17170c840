package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRange_Empty(t *testing.T) {
	t.Parallel()

	r := ComputeRange(NewOffsets(0, Fixed(54)), 0, 500, 10)
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Contains(0))
}

func TestComputeRange_TopOfList(t *testing.T) {
	t.Parallel()

	o := NewOffsets(1000, Fixed(54))

	assert.Equal(t, Range{Start: 0, End: 9}, ComputeRange(o, 0, 500, 0))
	assert.Equal(t, Range{Start: 0, End: 19}, ComputeRange(o, 0, 500, 10))
}

func TestComputeRange_Midpoint(t *testing.T) {
	t.Parallel()

	o := NewOffsets(1000, Fixed(54))

	assert.Equal(t, Range{Start: 500, End: 509}, ComputeRange(o, 27000, 500, 0))
	assert.Equal(t, Range{Start: 490, End: 519}, ComputeRange(o, 27000, 500, 10))
}

func TestComputeRange_AbuttingRowExcluded(t *testing.T) {
	t.Parallel()

	o := NewOffsets(10, Fixed(10))

	// Row 2 ends exactly at 30; it is not intersecting.
	r := ComputeRange(o, 30, 20, 0)
	assert.Equal(t, Range{Start: 3, End: 4}, r)

	// ...but overscan may bring it back.
	r = ComputeRange(o, 30, 20, 1)
	assert.Equal(t, Range{Start: 2, End: 5}, r)
}

func TestComputeRange_ClampsToTable(t *testing.T) {
	t.Parallel()

	o := NewOffsets(5, Fixed(10))

	assert.Equal(t, Range{Start: 0, End: 4}, ComputeRange(o, 0, 1000, 100))
	assert.Equal(t, Range{Start: 4, End: 4}, ComputeRange(o, 1e6, 10, 0), "scroll past the end clamps to the last row")
	assert.Equal(t, Range{Start: 0, End: 1}, ComputeRange(o, -50, 15, 0), "negative scroll clamps to 0")
	assert.Equal(t, Range{Start: 0, End: 0}, ComputeRange(o, 0, 0, -3), "negative overscan is ignored")
}

func TestComputeRange_VariableExtents(t *testing.T) {
	t.Parallel()

	// 0:[0,10) 1:[10,110) 2:[110,115) 3:[115,135) 4:[135,235)
	sizes := []float64{10, 100, 5, 20, 100}
	o := NewOffsets(len(sizes), func(i int) float64 { return sizes[i] })

	assert.Equal(t, Range{Start: 1, End: 1}, ComputeRange(o, 50, 50, 0))
	assert.Equal(t, Range{Start: 1, End: 3}, ComputeRange(o, 100, 30, 0))
	assert.Equal(t, Range{Start: 2, End: 4}, ComputeRange(o, 112, 30, 0))
}

func TestComputeRange_OverscanIsMonotonic(t *testing.T) {
	t.Parallel()

	o := NewOffsets(300, func(i int) float64 { return float64(1 + i%7) })

	for _, scroll := range []float64{0, 17, 400, 905, 1200} {
		prev := ComputeRange(o, scroll, 60, 0)
		for overscan := 1; overscan < 40; overscan++ {
			r := ComputeRange(o, scroll, 60, overscan)
			assert.LessOrEqual(t, r.Start, prev.Start)
			assert.GreaterOrEqual(t, r.End, prev.End)
			assert.GreaterOrEqual(t, r.Start, 0)
			assert.Less(t, r.End, 300)
			prev = r
		}
	}
}
