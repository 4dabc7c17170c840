// Package virtual is the windowing engine behind the grid: it decides which
// rows of a very large, fixed-height scrollable list have to be materialised
// and how much empty space must bracket them so the scroll extent stays
// identical to a fully rendered list.
//
// The engine works in abstract units (pixels, terminal lines, ...). It is
// driven by three inputs - scroll offset, viewport extent and row count/order -
// and recomputes everything it derives synchronously whenever one of them
// changes. A Virtualizer is not safe for concurrent use; the caller owns the
// event loop.
package virtual

import (
	"math"
	"strconv"
)

// MinExtent is the size substituted for estimates that are zero, negative or
// NaN. It keeps the prefix-sum table strictly increasing so binary search
// over it stays well defined.
const MinExtent = 1e-3

// DefaultEstimate is the row height used when no Estimator is configured.
const DefaultEstimate float64 = 54

// Estimator maps a row index to its estimated extent. It must be cheap and
// deterministic: it is called for every row whenever offsets are rebuilt.
type Estimator func(index int) float64

// Fixed returns an Estimator that gives every row the same extent.
func Fixed(size float64) Estimator {
	return func(int) float64 { return size }
}

// KeyFunc maps a positional index to the stable identity of the record that
// currently occupies it.
type KeyFunc func(index int) string

// IndexKey is the fallback KeyFunc: the key is the position itself. It is
// only correct while rows never move.
func IndexKey(index int) string {
	return strconv.Itoa(index)
}

// sanitizeExtent clamps an estimate into the valid range and reports whether
// it had to.
func sanitizeExtent(v float64) (float64, bool) {
	if math.IsNaN(v) || v <= 0 {
		return MinExtent, true
	}
	return v, false
}
