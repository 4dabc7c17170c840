package table

import (
	"cmp"
	"slices"
	"strings"
)

// ColumnSort is one entry of the sorting state.
type ColumnSort struct {
	ID   string
	Desc bool
}

// SortingState lists the active sorts in priority order.
type SortingState []ColumnSort

// Direction is a column's place in the sort cycle.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return ""
	}
}

// Indicator is the glyph the header shows next to a sorted column.
func (d Direction) Indicator() string {
	switch d {
	case Ascending:
		return "▲"
	case Descending:
		return "▼"
	default:
		return ""
	}
}

// Sorting returns a copy of the active sorting state.
func (t *Table[T]) Sorting() SortingState {
	return slices.Clone(t.sorting)
}

// SetSorting replaces the sorting state. Entries naming unknown or
// unsortable columns are dropped.
func (t *Table[T]) SetSorting(s SortingState) {
	t.sorting = t.validSorting(s)
	t.rebuild()
}

// SortDirection returns where column id currently sits in the sort cycle,
// and its priority (0-based) when sorted.
func (t *Table[T]) SortDirection(id string) (Direction, int) {
	for i, s := range t.sorting {
		if s.ID == id {
			if s.Desc {
				return Descending, i
			}
			return Ascending, i
		}
	}
	return Unsorted, -1
}

// ToggleSort advances column id through unsorted → first direction →
// second direction → unsorted. Without multi, sorts on other columns are
// dropped. It reports false when the column cannot be sorted.
func (t *Table[T]) ToggleSort(id string, multi bool) bool {
	c, ok := t.column(id)
	if !ok || c.Compare == nil {
		return false
	}

	dir, pos := t.SortDirection(id)
	first, second := Ascending, Descending
	if c.DescFirst {
		first, second = Descending, Ascending
	}

	var next Direction
	switch dir {
	case Unsorted:
		next = first
	case first:
		next = second
	default:
		next = Unsorted
	}

	var s SortingState
	if multi {
		s = slices.Clone(t.sorting)
		if pos >= 0 {
			s = slices.Delete(s, pos, pos+1)
		}
		if next != Unsorted {
			entry := ColumnSort{ID: id, Desc: next == Descending}
			if pos >= 0 {
				s = slices.Insert(s, pos, entry)
			} else {
				s = append(s, entry)
			}
		}
	} else if next != Unsorted {
		s = SortingState{{ID: id, Desc: next == Descending}}
	}

	t.sorting = s
	t.rebuild()
	return true
}

func (t *Table[T]) validSorting(s SortingState) SortingState {
	out := make(SortingState, 0, len(s))
	seen := make(map[string]bool, len(s))
	for _, cs := range s {
		c, ok := t.column(cs.ID)
		if !ok || c.Compare == nil || seen[cs.ID] {
			continue
		}
		seen[cs.ID] = true
		out = append(out, cs)
	}
	return out
}

// CompareBy builds a Column.Compare from an ordered field.
func CompareBy[T any, K cmp.Ordered](field func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// CompareFold orders a string field case-insensitively.
func CompareFold[T any](field func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}
