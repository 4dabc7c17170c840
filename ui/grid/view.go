package grid

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-grid/style"
	"github.com/miosa/osa-grid/table"
	"github.com/miosa/osa-grid/ui/common"
	"github.com/miosa/osa-grid/virtual"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the header and the rows inside the viewport. Rows outside the
// virtualizer's range are never visited.
func (m Model) View() string {
	if m.height <= 0 || m.width <= 0 || m.data == nil {
		return ""
	}

	cw := m.contentWidth()
	headers := m.data.Headers()
	widths := common.ColumnWidths(headers, cw)
	aligns := make([]table.Align, len(headers))
	for i, h := range headers {
		aligns[i] = h.Align
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader(headers, widths, cw))
	if m.height > 1 {
		lines = append(lines, style.HeaderSeparator.Render(strings.Repeat("─", m.width)))
	}

	bodyH := m.bodyHeight()
	if bodyH == 0 {
		return strings.Join(lines, "\n")
	}

	body := m.renderBody(headers, widths, aligns, cw)
	if bar := m.scrollbar(bodyH); bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
	}
	lines = append(lines, body)
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader(headers []table.Header, widths []int, cw int) string {
	multi := len(m.data.Sorting()) > 1
	gap := strings.Repeat(" ", common.ColumnGap)

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString(gap)
		}
		title := h.Title
		if ind := h.Sort.Indicator(); ind != "" {
			suffix := " " + ind
			if multi {
				suffix += strconv.Itoa(h.Priority + 1)
			}
			title = common.Truncate(title, widths[i]-ansi.StringWidth(suffix)) + suffix
		}
		cell := common.Fit(title, widths[i], h.Align)

		st := style.HeaderCell
		if h.Sort != table.Unsorted {
			st = style.HeaderSorted
		}
		if i == m.focus {
			st = st.Underline(true)
		}
		b.WriteString(st.Render(cell))
	}
	return padLine(common.ClipLine(b.String(), cw), cw)
}

// renderBody emits exactly bodyHeight lines. Each materialised row writes
// the lines it covers that fall inside [scroll, scroll+bodyHeight).
func (m Model) renderBody(headers []table.Header, widths []int, aligns []table.Align, cw int) string {
	bodyH := m.bodyHeight()
	out := make([]string, bodyH)
	top := int(m.v.ScrollOffset())

	items := m.v.VirtualItems()
	if len(items) == 0 {
		out[0] = padLine(style.EmptyState.Render(common.Truncate("no rows", cw)), cw)
	}
	for _, it := range items {
		start, end := int(it.Start), int(it.End)
		if end <= top || start >= top+bodyH {
			// Overscan row: materialised for the range, not on screen.
			continue
		}
		var cells []string
		for line := max(start, top); line < min(end, top+bodyH); line++ {
			if cells == nil {
				cells = m.data.Cells(it.Index)
			}
			text := m.rowLine(it, line-start, cells, headers, widths, aligns, cw)
			out[line-top] = m.rowStyle(it).Render(padLine(text, cw))
		}
	}
	for i, l := range out {
		if l == "" {
			out[i] = strings.Repeat(" ", cw)
		}
	}
	return strings.Join(out, "\n")
}

// rowLine renders line n of a row: the cells first, then one detail line per
// column when the row is expanded.
func (m Model) rowLine(it virtual.Item, n int, cells []string, headers []table.Header, widths []int, aligns []table.Align, cw int) string {
	if n == 0 {
		return common.ClipLine(common.JoinCells(cells, widths, aligns), cw)
	}
	d := n - m.rowHeight
	if !m.expanded[it.Key] || d < 0 || d >= len(headers) || d >= len(cells) {
		return ""
	}
	label := style.Faint.Render(headers[d].Title + ":")
	return common.ClipLine("  "+label+" "+cells[d], cw)
}

func (m Model) rowStyle(it virtual.Item) lipgloss.Style {
	switch {
	case it.Index == m.cursor:
		return style.CursorRow
	case it.Index%2 == 1:
		return style.CellStripe
	default:
		return style.Cell
	}
}

func (m Model) scrollbar(bodyH int) string {
	sb := common.Scrollbar{
		Track:    bodyH,
		Viewport: float64(bodyH),
		Total:    m.v.TotalSize(),
		Offset:   m.v.ScrollOffset(),
	}
	return sb.View()
}

// padLine right-pads s with spaces to width cells.
func padLine(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
