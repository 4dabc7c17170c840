package virtual

import "math"

// Range is an inclusive interval of row indices. The zero-length range is
// represented as {Start: 0, End: -1}.
type Range struct {
	Start int
	End   int
}

// EmptyRange is the range returned when there are no rows.
var EmptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index lies within the range.
func (r Range) Contains(index int) bool {
	return !r.Empty() && index >= r.Start && index <= r.End
}

// ComputeRange returns the rows intersecting [scrollOffset,
// scrollOffset+viewportExtent), widened by overscan rows on each side and
// clamped to the table. The result is never empty while the table has rows.
func ComputeRange(o *Offsets, scrollOffset, viewportExtent float64, overscan int) Range {
	count := o.Len()
	if count == 0 {
		return EmptyRange
	}
	scrollOffset = clampScroll(scrollOffset, o.Total())
	if viewportExtent < 0 {
		viewportExtent = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	first := o.IndexAt(scrollOffset)

	// Rows inside the viewport are bounded by viewport/min extent, so a
	// linear walk is cheaper than a second search.
	last := first
	bottom := scrollOffset + viewportExtent
	for last < count-1 && o.Offset(last+1) < bottom {
		last++
	}

	return Range{
		Start: max(0, first-overscan),
		End:   min(count-1, last+overscan),
	}
}

func clampScroll(offset, total float64) float64 {
	if math.IsNaN(offset) || offset < 0 {
		return 0
	}
	if offset > total {
		return total
	}
	return offset
}
