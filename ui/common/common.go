// Package common provides shared rendering helpers used by the grid and the
// app chrome.
package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-grid/table"
)

// ---------------------------------------------------------------------------
// Cell fitting
// ---------------------------------------------------------------------------

const (
	ellipsis = "…"
	// ColumnGap separates adjacent cells.
	ColumnGap = 1
	// MinAutoWidth is the narrowest an auto-sized column is laid out.
	MinAutoWidth = 8
)

// Truncate shortens s to width terminal cells, appending "…" if truncated.
// ANSI sequences do not count towards the width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

// Fit truncates or pads s to exactly width cells.
func Fit(s string, width int, align table.Align) string {
	s = Truncate(s, width)
	pad := width - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if align == table.AlignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

// ColumnWidths lays out headers across total cells. Columns with a preferred
// width keep it, widened to fit their title and sort indicator. Auto columns
// share what is left, never narrower than MinAutoWidth. The result may
// exceed total; callers clip the joined line.
func ColumnWidths(headers []table.Header, total int) []int {
	widths := make([]int, len(headers))
	used := max(0, len(headers)-1) * ColumnGap
	var auto []int
	for i, h := range headers {
		if h.Width <= 0 {
			auto = append(auto, i)
			continue
		}
		w := max(h.Width, ansi.StringWidth(h.Title)+2)
		widths[i] = w
		used += w
	}
	if len(auto) == 0 {
		return widths
	}

	free := total - used
	share := free / len(auto)
	for n, i := range auto {
		w := share
		if n == len(auto)-1 {
			w = free - share*(len(auto)-1)
		}
		widths[i] = max(w, MinAutoWidth)
	}
	return widths
}

// JoinCells fits each cell to its width and joins them with the column gap.
func JoinCells(cells []string, widths []int, aligns []table.Align) string {
	var b strings.Builder
	gap := strings.Repeat(" ", ColumnGap)
	for i, c := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString(gap)
		}
		var a table.Align
		if i < len(aligns) {
			a = aligns[i]
		}
		b.WriteString(Fit(c, widths[i], a))
	}
	return b.String()
}

// ClipLine truncates a rendered line to width cells without an ellipsis.
func ClipLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
