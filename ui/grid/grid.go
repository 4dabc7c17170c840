// Package grid provides a virtualized, sortable table widget. Scroll state
// lives in a virtual.Virtualizer whose units are terminal lines.
//
// Key properties:
//   - Only rows in the virtualizer's range are rendered on each View() call,
//     and of those only the lines that fall inside the viewport are emitted.
//   - Row identity comes from the table's row ids, so the cursor and any
//     expanded rows stay attached to their record when the sort changes.
//   - Expanded rows are reported to the virtualizer as measured sizes; every
//     other row uses the configured row height as its estimate.
package grid

import (
	"log/slog"
	"math"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-grid/table"
	"github.com/miosa/osa-grid/ui/common"
	"github.com/miosa/osa-grid/virtual"
)

const (
	// headerLines is the header row plus its separator.
	headerLines = 2
	// wheelLines is how far one mouse wheel notch scrolls.
	wheelLines = 3
	// DefaultOverscan is used when no overscan is configured.
	DefaultOverscan = 10
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option is a functional option for New.
type Option func(*Model)

// WithWidth sets the initial width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithHeight sets the initial height, header included.
func WithHeight(h int) Option {
	return func(m *Model) { m.height = h }
}

// WithRowHeight sets the number of lines each collapsed row occupies.
func WithRowHeight(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.rowHeight = n
		}
	}
}

// WithOverscan sets how many rows beyond the viewport are materialised.
func WithOverscan(n int) Option {
	return func(m *Model) {
		if n >= 0 {
			m.overscan = n
		}
	}
}

// WithKeyMap replaces the default keybindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithLogger routes virtualizer diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is a virtualized table view over a table.Model.
// The zero value is not usable; construct with New.
type Model struct {
	data table.Model
	v    *virtual.Virtualizer

	width     int
	height    int
	rowHeight int
	overscan  int

	// cursor is the selected position; cursorKey pins it to a record.
	cursor    int
	cursorKey string

	// focus is the header column the sort keys act on.
	focus int

	// expanded row ids; their measured size is rowHeight + one line per column.
	expanded map[string]bool

	keys   KeyMap
	logger *slog.Logger
}

// New constructs a Model with the supplied options. Call SetData before use.
func New(opts ...Option) Model {
	m := Model{
		rowHeight: 1,
		overscan:  DefaultOverscan,
		expanded:  make(map[string]bool),
		keys:      DefaultKeyMap(),
	}
	for _, o := range opts {
		o(&m)
	}
	m.v = virtual.New(m.virtualOptions())
	m.v.SetViewportExtent(float64(m.bodyHeight()))
	return m
}

func (m *Model) virtualOptions() virtual.Options {
	opts := virtual.Options{
		Estimate: virtual.Fixed(float64(m.rowHeight)),
		Overscan: m.overscan,
		Logger:   m.logger,
	}
	if m.data != nil {
		opts.Count = m.data.Len()
		opts.GetItemKey = m.data.KeyFunc()
	}
	return opts
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetData replaces the table. The cursor stays on the same record when it is
// still present; expanded rows that disappeared are forgotten.
func (m *Model) SetData(data table.Model) {
	m.data = data
	m.v.SetOptions(m.virtualOptions())
	m.v.SetViewportExtent(float64(m.bodyHeight()))

	for id := range m.expanded {
		if _, ok := data.IndexOf(id); !ok {
			delete(m.expanded, id)
		}
	}
	m.remeasure()

	if headers := data.Headers(); m.focus >= len(headers) {
		m.focus = max(0, len(headers)-1)
	}
	if i, ok := data.IndexOf(m.cursorKey); ok {
		m.setCursor(i)
		return
	}
	m.setCursor(m.cursor)
}

// SetSize updates the widget dimensions. height includes the header.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.v.SetViewportExtent(float64(m.bodyHeight()))
	m.follow()
}

// ---------------------------------------------------------------------------
// Cursor
// ---------------------------------------------------------------------------

// MoveCursor moves the cursor by delta rows and scrolls it into view.
func (m *Model) MoveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

// GotoIndex places the cursor at index and scrolls it into view.
func (m *Model) GotoIndex(index int) {
	m.setCursor(index)
}

// GotoKey places the cursor on the row with id. It reports false when no row
// has that id.
func (m *Model) GotoKey(id string) bool {
	if m.data == nil {
		return false
	}
	i, ok := m.data.IndexOf(id)
	if ok {
		m.setCursor(i)
	}
	return ok
}

func (m *Model) setCursor(i int) {
	n := m.Len()
	if n == 0 {
		m.cursor, m.cursorKey = 0, ""
		return
	}
	m.cursor = max(0, min(i, n-1))
	m.cursorKey = m.data.RowID(m.cursor)
	m.follow()
}

// follow scrolls the minimum distance that brings the cursor row into view.
func (m *Model) follow() {
	if m.Len() == 0 {
		return
	}
	m.v.ScrollToIndex(m.cursor, virtual.AlignAuto)
}

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// ScrollBy moves the viewport by lines without moving the cursor.
func (m *Model) ScrollBy(lines int) {
	m.v.ScrollBy(float64(lines))
}

// pageRows is the number of rows one viewport holds at the current scroll
// position, at least 1.
func (m *Model) pageRows() int {
	r := m.visibleRange()
	return max(1, r.Len())
}

// ---------------------------------------------------------------------------
// Sorting
// ---------------------------------------------------------------------------

// FocusColumn moves the sort focus by delta columns, clamped to the headers.
func (m *Model) FocusColumn(delta int) {
	if m.data == nil {
		return
	}
	n := len(m.data.Headers())
	m.focus = max(0, min(m.focus+delta, n-1))
}

// ToggleSort advances the sort on the column with id. The cursor keeps its
// record and the viewport scrolls to wherever that record landed.
func (m *Model) ToggleSort(id string, multi bool) bool {
	if m.data == nil || !m.data.ToggleSort(id, multi) {
		return false
	}
	m.reordered()
	return true
}

// reordered tells the virtualizer that positions now hold different records.
func (m *Model) reordered() {
	m.v.Reset()
	if i, ok := m.data.IndexOf(m.cursorKey); ok {
		m.cursor = i
	}
	m.follow()
}

// ---------------------------------------------------------------------------
// Expansion
// ---------------------------------------------------------------------------

// ToggleExpand expands or collapses the cursor row.
func (m *Model) ToggleExpand() {
	if m.Len() == 0 {
		return
	}
	id := m.cursorKey
	if m.expanded[id] {
		delete(m.expanded, id)
	} else {
		m.expanded[id] = true
	}
	m.v.Measure(m.cursor, float64(m.rowSize(id)))
	m.follow()
}

// CollapseAll drops every expanded row.
func (m *Model) CollapseAll() {
	clear(m.expanded)
	m.v.ClearMeasurements()
	m.follow()
}

// remeasure reports every expanded row's size after the data changed.
func (m *Model) remeasure() {
	m.v.ClearMeasurements()
	for id := range m.expanded {
		if i, ok := m.data.IndexOf(id); ok {
			m.v.Measure(i, float64(m.rowSize(id)))
		}
	}
}

func (m *Model) rowSize(id string) int {
	if m.expanded[id] && m.data != nil {
		return m.rowHeight + len(m.data.Headers())
	}
	return m.rowHeight
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles key presses and mouse events. y coordinates of mouse
// events must be relative to the widget's top line.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		m.handleKey(msg)
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.ScrollBy(-wheelLines)
		case tea.MouseWheelDown:
			m.ScrollBy(wheelLines)
		}
	case tea.MouseClickMsg:
		m.handleClick(msg.X, msg.Y, msg.Mod&tea.ModShift != 0)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.MoveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.MoveCursor(-m.pageRows())
	case key.Matches(msg, m.keys.PageDown):
		m.MoveCursor(m.pageRows())
	case key.Matches(msg, m.keys.HalfPageUp):
		m.MoveCursor(-max(1, m.pageRows()/2))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.MoveCursor(max(1, m.pageRows()/2))
	case key.Matches(msg, m.keys.Top):
		m.GotoIndex(0)
	case key.Matches(msg, m.keys.Bottom):
		m.GotoIndex(m.Len() - 1)
	case key.Matches(msg, m.keys.PrevColumn):
		m.FocusColumn(-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.FocusColumn(1)
	case key.Matches(msg, m.keys.Sort):
		m.toggleFocused(false)
	case key.Matches(msg, m.keys.SortMulti):
		m.toggleFocused(true)
	case key.Matches(msg, m.keys.Expand):
		m.ToggleExpand()
	case key.Matches(msg, m.keys.CollapseAll):
		m.CollapseAll()
	}
}

func (m *Model) toggleFocused(multi bool) {
	if h, ok := m.FocusedHeader(); ok {
		m.ToggleSort(h.ID, multi)
	}
}

// handleClick sorts on a header click and moves the cursor on a body click.
func (m *Model) handleClick(x, y int, multi bool) {
	if m.data == nil || y < 0 || y >= m.height {
		return
	}
	if y == 0 {
		if col := m.columnAt(x); col >= 0 {
			m.focus = col
			m.toggleFocused(multi)
		}
		return
	}
	if y < headerLines {
		return
	}
	line := m.v.ScrollOffset() + float64(y-headerLines)
	if line >= m.v.TotalSize() {
		return
	}
	if i := m.v.IndexAtOffset(line); i >= 0 {
		m.setCursor(i)
	}
}

// columnAt maps an x coordinate to a header index, or -1 when x falls on a
// gap or past the last column.
func (m *Model) columnAt(x int) int {
	widths := common.ColumnWidths(m.data.Headers(), m.contentWidth())
	pos := 0
	for i, w := range widths {
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + common.ColumnGap
	}
	return -1
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Len returns the number of rows.
func (m Model) Len() int {
	if m.data == nil {
		return 0
	}
	return m.data.Len()
}

// Cursor returns the selected position.
func (m Model) Cursor() int { return m.cursor }

// CursorKey returns the id of the selected record, "" when empty.
func (m Model) CursorKey() string { return m.cursorKey }

// Expanded reports whether the row with id is expanded.
func (m Model) Expanded(id string) bool { return m.expanded[id] }

// FocusedHeader returns the header the sort keys act on.
func (m Model) FocusedHeader() (table.Header, bool) {
	if m.data == nil {
		return table.Header{}, false
	}
	hs := m.data.Headers()
	if m.focus < 0 || m.focus >= len(hs) {
		return table.Header{}, false
	}
	return hs[m.focus], true
}

// Sorting returns the active sorting state.
func (m Model) Sorting() table.SortingState {
	if m.data == nil {
		return nil
	}
	return m.data.Sorting()
}

// Range returns the materialised rows, overscan included.
func (m Model) Range() virtual.Range { return m.v.Range() }

// Padding returns the space standing in for rows outside the range.
func (m Model) Padding() virtual.Padding { return m.v.Padding() }

// TotalSize returns the full content height in lines.
func (m Model) TotalSize() float64 { return m.v.TotalSize() }

// ScrollOffset returns the first visible content line.
func (m Model) ScrollOffset() float64 { return m.v.ScrollOffset() }

// visibleRange is the range without overscan: the rows at least partly on
// screen.
func (m Model) visibleRange() virtual.Range {
	if m.Len() == 0 || m.bodyHeight() == 0 {
		return virtual.EmptyRange
	}
	top := m.v.ScrollOffset()
	first := m.v.IndexAtOffset(top)
	bottom := math.Min(top+float64(m.bodyHeight()), m.v.TotalSize()) - 1e-9
	last := m.v.IndexAtOffset(max(top, bottom))
	return virtual.Range{Start: first, End: last}
}

// VisibleRange returns the rows at least partly on screen.
func (m Model) VisibleRange() virtual.Range { return m.visibleRange() }

func (m Model) bodyHeight() int {
	return max(0, m.height-headerLines)
}

// contentWidth is the width left for cells once the scrollbar is placed.
func (m Model) contentWidth() int {
	if m.v != nil && m.v.TotalSize() > float64(m.bodyHeight()) {
		return max(0, m.width-1)
	}
	return m.width
}
