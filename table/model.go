package table

import "github.com/miosa/osa-grid/virtual"

// Header is the render-ready view of one column.
type Header struct {
	ID      string
	Title   string
	Width   int
	Align   Align
	CanSort bool
	Sort    Direction
	// Priority is the position in a multi-column sort, -1 when unsorted.
	Priority int
}

// Model is the record-type-free view of a Table that renderers and the
// sidecar consume.
type Model interface {
	Headers() []Header
	Len() int
	RowID(index int) string
	Cells(index int) []string
	IndexOf(id string) (int, bool)
	ToggleSort(id string, multi bool) bool
	Sorting() SortingState
	SetSorting(s SortingState)
	KeyFunc() virtual.KeyFunc
}

var _ Model = (*Table[struct{}])(nil)

// Headers returns one Header per column with its current sort state.
func (t *Table[T]) Headers() []Header {
	out := make([]Header, len(t.columns))
	for i, c := range t.columns {
		dir, prio := t.SortDirection(c.ID)
		title := c.Header
		if title == "" {
			title = c.ID
		}
		out[i] = Header{
			ID:       c.ID,
			Title:    title,
			Width:    c.Width,
			Align:    c.Align,
			CanSort:  c.Compare != nil,
			Sort:     dir,
			Priority: prio,
		}
	}
	return out
}
