package table

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	id   string
	name string
	age  int
}

func people() []person {
	return []person{
		{"p1", "carol", 41},
		{"p2", "Alice", 30},
		{"p3", "bob", 41},
		{"p4", "dave", 19},
	}
}

func columns() []Column[person] {
	return []Column[person]{
		{
			ID:      "name",
			Header:  "Name",
			Cell:    func(p person) string { return p.name },
			Compare: CompareFold(func(p person) string { return p.name }),
		},
		{
			ID:        "age",
			Header:    "Age",
			Align:     AlignRight,
			Cell:      func(p person) string { return strconv.Itoa(p.age) },
			Compare:   CompareBy(func(p person) int { return p.age }),
			DescFirst: true,
		},
		{
			ID:   "note",
			Cell: func(p person) string { return "-" },
		},
	}
}

func newPeople(opts ...Option[person]) *Table[person] {
	opts = append([]Option[person]{WithRowID(func(p person, _ int) string { return p.id })}, opts...)
	return New(people(), columns(), opts...)
}

func ids(t *Table[person]) []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.RowID(i)
	}
	return out
}

func TestNew_CoreOrderAndDefaultIDs(t *testing.T) {
	t.Parallel()

	tb := New(people(), columns())
	require.Equal(t, 4, tb.Len())
	for i, r := range tb.Rows() {
		assert.Equal(t, strconv.Itoa(i), r.ID)
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, []string{"carol", "41", "-"}, tb.Cells(0))
	assert.Nil(t, tb.Cells(4))
	assert.Equal(t, "", tb.RowID(-1))
}

func TestToggleSort_Cycle(t *testing.T) {
	t.Parallel()

	tb := newPeople()

	require.True(t, tb.ToggleSort("name", false))
	assert.Equal(t, []string{"p2", "p3", "p1", "p4"}, ids(tb))
	assert.Equal(t, SortingState{{ID: "name"}}, tb.Sorting())

	require.True(t, tb.ToggleSort("name", false))
	assert.Equal(t, []string{"p4", "p1", "p3", "p2"}, ids(tb))

	require.True(t, tb.ToggleSort("name", false))
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(tb), "third toggle restores input order")
	assert.Empty(t, tb.Sorting())
}

func TestToggleSort_DescFirstAndStable(t *testing.T) {
	t.Parallel()

	tb := newPeople()
	require.True(t, tb.ToggleSort("age", false))

	// carol and bob tie on 41 and keep their input order.
	assert.Equal(t, []string{"p1", "p3", "p2", "p4"}, ids(tb))
	dir, prio := tb.SortDirection("age")
	assert.Equal(t, Descending, dir)
	assert.Equal(t, 0, prio)
}

func TestToggleSort_Multi(t *testing.T) {
	t.Parallel()

	tb := newPeople()
	tb.ToggleSort("age", false)
	tb.ToggleSort("name", true)

	assert.Equal(t, SortingState{{ID: "age", Desc: true}, {ID: "name"}}, tb.Sorting())
	assert.Equal(t, []string{"p3", "p1", "p2", "p4"}, ids(tb))

	// Toggling an existing entry keeps its priority.
	tb.ToggleSort("age", true)
	assert.Equal(t, SortingState{{ID: "age"}, {ID: "name"}}, tb.Sorting())

	// Single toggle replaces the whole state.
	tb.ToggleSort("name", false)
	assert.Equal(t, SortingState{{ID: "name", Desc: true}}, tb.Sorting())
}

func TestToggleSort_RejectsUnsortable(t *testing.T) {
	t.Parallel()

	tb := newPeople()
	assert.False(t, tb.ToggleSort("note", false))
	assert.False(t, tb.ToggleSort("missing", false))
	assert.Empty(t, tb.Sorting())
}

func TestWithSorting_DropsInvalidEntries(t *testing.T) {
	t.Parallel()

	tb := newPeople(WithSorting[person](SortingState{
		{ID: "note"}, {ID: "age"}, {ID: "age", Desc: true}, {ID: "bogus"},
	}))
	assert.Equal(t, SortingState{{ID: "age"}}, tb.Sorting())
	assert.Equal(t, "p4", tb.RowID(0))
}

func TestIndexOfAndKeyFuncFollowSort(t *testing.T) {
	t.Parallel()

	tb := newPeople()
	key := tb.KeyFunc()
	assert.Equal(t, "p1", key(0))

	tb.ToggleSort("name", false)
	assert.Equal(t, "p2", key(0), "key func reads the live row model")

	i, ok := tb.IndexOf("p1")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, 2, tb.Rows()[i].Index)

	_, ok = tb.IndexOf("nope")
	assert.False(t, ok)
	assert.Equal(t, "9", key(9), "out of range falls back to the index")
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	tb := newPeople()
	tb.ToggleSort("age", false)
	hs := tb.Headers()

	require.Len(t, hs, 3)
	assert.Equal(t, Header{ID: "name", Title: "Name", CanSort: true, Sort: Unsorted, Priority: -1}, hs[0])
	assert.Equal(t, Descending, hs[1].Sort)
	assert.Equal(t, AlignRight, hs[1].Align)
	assert.Equal(t, "note", hs[2].Title, "title falls back to the id")
	assert.False(t, hs[2].CanSort)
}

func TestDirection_Indicator(t *testing.T) {
	t.Parallel()

	for _, d := range []Direction{Unsorted, Ascending, Descending} {
		assert.Equal(t, d == Unsorted, d.Indicator() == "", fmt.Sprint(d))
	}
}
