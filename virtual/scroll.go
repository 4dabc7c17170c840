package virtual

// Align selects where ScrollToIndex places the target row.
type Align int

const (
	// AlignAuto scrolls only when the row is not fully visible, and then by
	// the smallest distance.
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignAuto:
		return "auto"
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ParseAlign converts a wire name into an Align. Unknown names map to
// AlignAuto.
func ParseAlign(s string) Align {
	switch s {
	case "start":
		return AlignStart
	case "center":
		return AlignCenter
	case "end":
		return AlignEnd
	default:
		return AlignAuto
	}
}

// OffsetForIndex returns the scroll offset that brings index into view with
// the given alignment. The result is clamped to [0, MaxScrollOffset()].
func (v *Virtualizer) OffsetForIndex(index int, align Align) float64 {
	if v.opts.Count == 0 {
		return 0
	}
	index = min(max(index, 0), v.opts.Count-1)

	start := v.offsets.Offset(index)
	end := v.offsets.Offset(index + 1)

	if align == AlignAuto {
		switch {
		case start <= v.scroll && end >= v.scroll+v.viewport:
			// Already covers the viewport.
			return v.scroll
		case end >= v.scroll+v.viewport:
			align = AlignEnd
		case start <= v.scroll:
			align = AlignStart
		default:
			return v.scroll
		}
	}

	var target float64
	switch align {
	case AlignStart:
		target = start
	case AlignCenter:
		target = start - (v.viewport-(end-start))/2
	case AlignEnd:
		target = end - v.viewport
	}
	return min(max(target, 0), v.MaxScrollOffset())
}

// ScrollToIndex moves the scroll position so index is visible.
func (v *Virtualizer) ScrollToIndex(index int, align Align) {
	v.SetScrollOffset(v.OffsetForIndex(index, align))
}
