package source

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"github.com/miosa/osa-grid/table"
)

// DefaultPeople is the record count used when none is configured.
const DefaultPeople = 50_000

// Person is one generated record.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Age       int
	Visits    int
	Progress  int
	Status    string
}

var (
	firstNames = []string{
		"Ada", "Bela", "Cyrus", "Dana", "Elio", "Farah", "Gus", "Hana", "Ivo", "June",
		"Kofi", "Lena", "Milo", "Nia", "Oren", "Pia", "Quin", "Rosa", "Soren", "Tova",
		"Uma", "Vik", "Wren", "Xeni", "Yuri", "Zola",
	}
	lastNames = []string{
		"Abbott", "Baker", "Castillo", "Dube", "Eriksen", "Fujita", "Garza", "Haddad",
		"Ibarra", "Jansen", "Kowalski", "Lindqvist", "Mbeki", "Novak", "Okafor", "Park",
		"Quispe", "Rossi", "Sato", "Tanaka", "Ueda", "Varga", "Weiss", "Yilmaz", "Zhou",
	}
	statuses = []string{"relationship", "complicated", "single"}
)

// People generates n records. The same seed always yields the same records,
// ids included.
func People(n int, seed int64) []Person {
	if n < 0 {
		n = 0
	}
	r := rand.New(rand.NewSource(seed))
	out := make([]Person, n)
	for i := range out {
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			// A math/rand reader never fails; keep ids unique regardless.
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(i)))
		}
		out[i] = Person{
			ID:        id.String(),
			FirstName: firstNames[r.Intn(len(firstNames))],
			LastName:  lastNames[r.Intn(len(lastNames))],
			Age:       r.Intn(40),
			Visits:    r.Intn(1000),
			Progress:  r.Intn(101),
			Status:    statuses[r.Intn(len(statuses))],
		}
	}
	return out
}

// PeopleColumns are the columns of the people table.
func PeopleColumns() []table.Column[Person] {
	return []table.Column[Person]{
		{
			ID: "id", Header: "ID", Width: 8,
			Cell: func(p Person) string { return p.ID[:8] },
		},
		{
			ID: "firstName", Header: "First Name", Width: 12,
			Cell:    func(p Person) string { return p.FirstName },
			Compare: table.CompareFold(func(p Person) string { return p.FirstName }),
		},
		{
			ID: "lastName", Header: "Last Name", Width: 12,
			Cell:    func(p Person) string { return p.LastName },
			Compare: table.CompareFold(func(p Person) string { return p.LastName }),
		},
		{
			ID: "age", Header: "Age", Width: 5, Align: table.AlignRight,
			Cell:      func(p Person) string { return strconv.Itoa(p.Age) },
			Compare:   table.CompareBy(func(p Person) int { return p.Age }),
			DescFirst: true,
		},
		{
			ID: "visits", Header: "Visits", Width: 7, Align: table.AlignRight,
			Cell:      func(p Person) string { return strconv.Itoa(p.Visits) },
			Compare:   table.CompareBy(func(p Person) int { return p.Visits }),
			DescFirst: true,
		},
		{
			ID: "status", Header: "Status", Width: 13,
			Cell:    func(p Person) string { return p.Status },
			Compare: table.CompareFold(func(p Person) string { return p.Status }),
		},
		{
			ID: "progress", Header: "Profile Progress", Width: 16, Align: table.AlignRight,
			Cell:      func(p Person) string { return fmt.Sprintf("%d%%", p.Progress) },
			Compare:   table.CompareBy(func(p Person) int { return p.Progress }),
			DescFirst: true,
		},
	}
}

// PeopleTable wraps people in a table keyed by their uuid.
func PeopleTable(people []Person, sorting table.SortingState) *table.Table[Person] {
	return table.New(people, PeopleColumns(),
		table.WithRowID(func(p Person, _ int) string { return p.ID }),
		table.WithSorting[Person](sorting),
	)
}
