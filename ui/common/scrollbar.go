package common

import (
	"strings"

	"github.com/miosa/osa-grid/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// Scrollbar maps a virtual scroll position onto a column of Track cells.
// Total and Offset are in the same units as Viewport; for the grid that is
// terminal lines, taken from the virtualizer's TotalSize and ScrollOffset.
type Scrollbar struct {
	Track    int
	Viewport float64
	Total    float64
	Offset   float64
}

// Thumb returns the thumb's first cell and its length. Length is zero when
// the content fits the viewport.
func (s Scrollbar) Thumb() (top, length int) {
	if s.Track <= 0 || s.Viewport <= 0 || s.Total <= s.Viewport {
		return 0, 0
	}

	// At least one cell so the position stays visible on huge tables.
	length = int(float64(s.Track) * s.Viewport / s.Total)
	length = max(1, min(length, s.Track))

	scrollable := s.Total - s.Viewport
	off := max(0, min(s.Offset, scrollable))
	top = int(off / scrollable * float64(s.Track-length))
	top = max(0, min(top, s.Track-length))
	return top, length
}

// View renders the bar as Track lines. When the content fits the viewport
// the returned string is empty.
func (s Scrollbar) View() string {
	top, length := s.Thumb()
	if length == 0 {
		return ""
	}

	rows := make([]string, s.Track)
	for i := range rows {
		if i >= top && i < top+length {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
