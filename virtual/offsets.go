package virtual

import (
	"fmt"
	"sort"
)

// Offsets is a cached prefix-sum table over row extents.
//
// prefix has count+1 entries: prefix[0] is 0, prefix[count] is the total
// size, and prefix[i+1]-prefix[i] is the extent of row i. Entries beyond
// valid are stale and are rebuilt before any read returns, so callers never
// observe a half-built table.
type Offsets struct {
	extent Estimator
	prefix []float64
	count  int
	valid  int

	// report is told about every estimate that had to be clamped.
	report func(index int, value float64)
}

// NewOffsets builds an accumulator for count rows sized by extent.
func NewOffsets(count int, extent Estimator) *Offsets {
	o := &Offsets{}
	o.Reset(count, extent)
	return o
}

// Reset replaces the row count and estimator and invalidates every entry.
func (o *Offsets) Reset(count int, extent Estimator) {
	if extent == nil {
		extent = Fixed(DefaultEstimate)
	}
	o.extent = extent
	o.resize(count)
	o.valid = 0
}

// Resize changes the row count. Entries below the smaller of the old and
// new counts stay valid since their extents did not change.
func (o *Offsets) Resize(count int) {
	o.resize(count)
}

func (o *Offsets) resize(count int) {
	if count < 0 {
		count = 0
	}
	if cap(o.prefix) < count+1 {
		grown := make([]float64, count+1)
		copy(grown, o.prefix)
		o.prefix = grown
	} else {
		o.prefix = o.prefix[:count+1]
	}
	o.prefix[0] = 0
	o.count = count
	if o.valid > count {
		o.valid = count
	}
}

// Invalidate marks every entry after row from as stale.
func (o *Offsets) Invalidate(from int) {
	if from < 0 {
		from = 0
	}
	if from < o.valid {
		o.valid = from
	}
}

// Len returns the number of rows covered by the table.
func (o *Offsets) Len() int {
	return o.count
}

// ensure rebuilds the stale tail of the table.
func (o *Offsets) ensure() {
	for i := o.valid; i < o.count; i++ {
		raw := o.extent(i)
		v, clamped := sanitizeExtent(raw)
		if clamped && o.report != nil {
			o.report(i, raw)
		}
		o.prefix[i+1] = o.prefix[i] + v
	}
	o.valid = o.count
}

// Offset returns the start of row i; Offset(Len()) is the total size.
func (o *Offsets) Offset(i int) float64 {
	o.ensure()
	return o.prefix[o.clamp(i, o.count)]
}

// Extent returns the (sanitised) size of row i.
func (o *Offsets) Extent(i int) float64 {
	if o.count == 0 {
		return 0
	}
	o.ensure()
	i = o.clamp(i, o.count-1)
	return o.prefix[i+1] - o.prefix[i]
}

// Total returns the size of all rows together.
func (o *Offsets) Total() float64 {
	o.ensure()
	return o.prefix[o.count]
}

// IndexAt returns the smallest row whose end lies strictly after x, that is
// the row containing offset x. A row ending exactly at x is not a match.
// Offsets past the end resolve to the last row; with no rows it returns 0.
func (o *Offsets) IndexAt(x float64) int {
	if o.count == 0 {
		return 0
	}
	o.ensure()
	i := sort.Search(o.count, func(i int) bool {
		return o.prefix[i+1] > x
	})
	if i >= o.count {
		i = o.count - 1
	}
	return i
}

func (o *Offsets) clamp(i, hi int) int {
	if i >= 0 && i <= hi {
		return i
	}
	if debugBounds {
		panic(fmt.Sprintf("virtual: offset index %d out of range [0,%d]", i, hi))
	}
	if i < 0 {
		return 0
	}
	return hi
}
