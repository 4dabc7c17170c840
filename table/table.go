// Package table turns raw records and column definitions into an ordered
// sequence of rows with stable ids and a sortable state. It is the data
// layer the virtualizer windows over: the virtualizer only ever sees a row
// count and a key per position.
package table

import (
	"slices"
	"strconv"

	"github.com/miosa/osa-grid/virtual"
)

// Align is the horizontal alignment of a column's cells.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes how one field of T is shown and sorted.
type Column[T any] struct {
	ID     string
	Header string
	// Width is the preferred cell width in terminal columns; 0 means auto.
	Width int
	Align Align
	Cell  func(T) string
	// Compare orders two records by this column. Nil disables sorting.
	Compare func(a, b T) int
	// DescFirst makes the first toggle sort descending (numeric columns).
	DescFirst bool
}

// Row is one record at its current position.
type Row[T any] struct {
	// ID is stable across reorderings of the same record.
	ID string
	// Index is the row's current position; it changes under sorting.
	Index    int
	Original T
}

// Option configures a Table.
type Option[T any] func(*Table[T])

// WithRowID sets how a record's stable id is derived. The default is the
// record's position in the input slice.
func WithRowID[T any](fn func(record T, index int) string) Option[T] {
	return func(t *Table[T]) { t.rowID = fn }
}

// WithSorting sets the initial sorting state.
func WithSorting[T any](s SortingState) Option[T] {
	return func(t *Table[T]) { t.sorting = slices.Clone(s) }
}

// Table holds records, columns and sorting state and maintains the sorted
// row model.
type Table[T any] struct {
	columns []Column[T]
	core    []Row[T]
	rows    []Row[T]
	sorting SortingState
	rowID   func(T, int) string
	byID    map[string]int
}

// New builds a table over records.
func New[T any](records []T, columns []Column[T], opts ...Option[T]) *Table[T] {
	t := &Table[T]{
		columns: columns,
		rowID:   func(_ T, i int) string { return strconv.Itoa(i) },
	}
	for _, o := range opts {
		o(t)
	}
	t.core = make([]Row[T], len(records))
	for i, r := range records {
		t.core[i] = Row[T]{ID: t.rowID(r, i), Index: i, Original: r}
	}
	t.sorting = t.validSorting(t.sorting)
	t.rebuild()
	return t
}

// Rows returns the sorted row model. The slice must not be modified.
func (t *Table[T]) Rows() []Row[T] {
	return t.rows
}

// CoreRows returns rows in input order.
func (t *Table[T]) CoreRows() []Row[T] {
	return t.core
}

// Columns returns the column definitions.
func (t *Table[T]) Columns() []Column[T] {
	return t.columns
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// RowID returns the id of the row at index, or "" when out of range.
func (t *Table[T]) RowID(index int) string {
	if index < 0 || index >= len(t.rows) {
		return ""
	}
	return t.rows[index].ID
}

// IndexOf returns the current position of the row with id.
func (t *Table[T]) IndexOf(id string) (int, bool) {
	i, ok := t.byID[id]
	return i, ok
}

// Cells renders the row at index, one string per column.
func (t *Table[T]) Cells(index int) []string {
	if index < 0 || index >= len(t.rows) {
		return nil
	}
	rec := t.rows[index].Original
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		if c.Cell != nil {
			out[i] = c.Cell(rec)
		}
	}
	return out
}

// KeyFunc binds virtual positions to row ids. It reads the live row model,
// so it stays correct across sorts without being rebuilt. Positions outside
// the model fall back to the index.
func (t *Table[T]) KeyFunc() virtual.KeyFunc {
	return func(index int) string {
		if index < 0 || index >= len(t.rows) {
			return virtual.IndexKey(index)
		}
		return t.rows[index].ID
	}
}

// rebuild recomputes the sorted row model from the core rows.
func (t *Table[T]) rebuild() {
	rows := slices.Clone(t.core)
	if len(t.sorting) > 0 {
		cmps := make([]func(a, b T) int, 0, len(t.sorting))
		for _, s := range t.sorting {
			c, _ := t.column(s.ID)
			fn := c.Compare
			if s.Desc {
				cmps = append(cmps, func(a, b T) int { return fn(b, a) })
			} else {
				cmps = append(cmps, fn)
			}
		}
		slices.SortStableFunc(rows, func(a, b Row[T]) int {
			for _, fn := range cmps {
				if c := fn(a.Original, b.Original); c != 0 {
					return c
				}
			}
			return 0
		})
	}

	t.byID = make(map[string]int, len(rows))
	for i := range rows {
		rows[i].Index = i
		t.byID[rows[i].ID] = i
	}
	t.rows = rows
}

func (t *Table[T]) column(id string) (Column[T], bool) {
	for _, c := range t.columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}
