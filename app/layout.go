package app

const (
	// minGridHeight keeps the header plus one row on screen.
	minGridHeight = 3
	minGridWidth  = 20
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	TitleHeight  int
	StatusHeight int
	GridWidth    int
	GridHeight   int // header and separator included
}

// ComputeLayout splits the terminal into title, grid and status bar. The
// grid gets every line the chrome does not use.
func ComputeLayout(termW, termH int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		TitleHeight:  1,
		StatusHeight: 1,
	}
	l.GridWidth = max(termW, minGridWidth)
	l.GridHeight = max(termH-l.TitleHeight-l.StatusHeight, minGridHeight)
	return l
}

// GridTop is the first terminal line of the grid.
func (l Layout) GridTop() int {
	return l.TitleHeight
}
