package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-grid/msg"
	"github.com/miosa/osa-grid/style"
	"github.com/miosa/osa-grid/table"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type item struct{ n int }

func numbers(n int) table.Model {
	rs := make([]item, n)
	for i := range rs {
		rs[i] = item{n: i}
	}
	cols := []table.Column[item]{
		{
			ID: "n", Header: "N", Width: 8,
			Cell:    func(it item) string { return "n" + strconv.Itoa(it.n) },
			Compare: table.CompareBy(func(it item) int { return it.n }),
		},
	}
	return table.New(rs, cols)
}

func loaderOf(data table.Model, err error) Loader {
	return func(context.Context) (table.Model, error) { return data, err }
}

func update(t *testing.T, m Model, in tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	out, cmd := m.Update(in)
	next, ok := out.(Model)
	if !ok {
		t.Fatalf("Update returned %T", out)
	}
	return next, cmd
}

func loaded(t *testing.T, n int) Model {
	t.Helper()
	m := New(Options{SourceName: "numbers", Loader: loaderOf(numbers(n), nil)})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 14})
	m, _ = update(t, m, msg.SourceLoaded{Name: "numbers", Data: numbers(n)})
	return m
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

// ---------------------------------------------------------------------------
// State / loading
// ---------------------------------------------------------------------------

func TestState_String(t *testing.T) {
	for s, want := range map[State]string{
		StateLoading: "loading", StateBrowsing: "browsing", StateHelp: "help", StateError: "error", State(99): "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestNew_StartsLoading(t *testing.T) {
	m := New(Options{SourceName: "numbers"})
	if m.State() != StateLoading {
		t.Fatalf("state = %v, want loading", m.State())
	}
	if !strings.Contains(m.renderView(), "loading numbers") {
		t.Error("loading message missing")
	}
}

func TestLoad_RunsLoader(t *testing.T) {
	m := New(Options{SourceName: "numbers", Loader: loaderOf(numbers(3), nil)})
	got, ok := m.load()().(msg.SourceLoaded)
	if !ok {
		t.Fatal("load did not produce SourceLoaded")
	}
	if got.Err != nil || got.Data.Len() != 3 || got.Name != "numbers" {
		t.Errorf("SourceLoaded = %+v", got)
	}
}

func TestLoad_NoLoader(t *testing.T) {
	m := New(Options{})
	got := m.load()().(msg.SourceLoaded)
	if got.Err == nil {
		t.Error("expected error without a loader")
	}
}

func TestSourceLoaded_Browsing(t *testing.T) {
	m := loaded(t, 1000)
	if m.State() != StateBrowsing {
		t.Fatalf("state = %v, want browsing", m.State())
	}
	if m.Grid().Len() != 1000 {
		t.Errorf("grid rows = %d", m.Grid().Len())
	}
	out := m.renderView()
	if !strings.Contains(out, "n0") {
		t.Error("first row missing from view")
	}
	if !strings.Contains(out, "1000 rows") {
		t.Error("row count missing from title")
	}
	// 12 grid lines, 10 body rows, overscan 10.
	if !strings.Contains(out, "0–19/1000") {
		t.Errorf("status range missing:\n%s", out)
	}
}

func TestSourceLoaded_Error(t *testing.T) {
	m := New(Options{SourceName: "numbers"})
	m, _ = update(t, m, msg.SourceLoaded{Err: errors.New("disk on fire")})
	if m.State() != StateError {
		t.Fatalf("state = %v, want error", m.State())
	}
	if !strings.Contains(m.renderView(), "disk on fire") {
		t.Error("error text missing")
	}
}

func TestReload_ReturnsLoadCmd(t *testing.T) {
	m := loaded(t, 10)
	m, cmd := update(t, m, press('r'))
	if m.State() != StateLoading {
		t.Fatalf("state = %v, want loading", m.State())
	}
	if cmd == nil {
		t.Fatal("reload returned no command")
	}
	if _, ok := cmd().(msg.SourceLoaded); !ok {
		t.Error("reload command did not load")
	}
}

// ---------------------------------------------------------------------------
// Keys
// ---------------------------------------------------------------------------

func TestQuit(t *testing.T) {
	m := loaded(t, 10)
	_, cmd := update(t, m, press('q'))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not quit")
	}
}

func TestHelp_OpensAndCloses(t *testing.T) {
	m := loaded(t, 10)
	m, _ = update(t, m, press('?'))
	if m.State() != StateHelp {
		t.Fatalf("state = %v, want help", m.State())
	}
	if m.helpText == "" {
		t.Error("help text not rendered")
	}
	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.State() != StateBrowsing {
		t.Errorf("state = %v after esc, want browsing", m.State())
	}
}

func TestKeys_ForwardedToGrid(t *testing.T) {
	m := loaded(t, 100)
	m, _ = update(t, m, press('j'))
	m, _ = update(t, m, press('j'))
	if m.Grid().Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Grid().Cursor())
	}
}

func TestKeys_IgnoredWhileLoading(t *testing.T) {
	m := New(Options{SourceName: "numbers"})
	m, _ = update(t, m, press('j'))
	if m.Grid().Cursor() != 0 {
		t.Error("grid moved while loading")
	}
}

func TestTheme_Cycles(t *testing.T) {
	defer style.SetTheme("dark")
	style.SetTheme("dark")

	m := loaded(t, 10)
	_, cmd := update(t, m, press('t'))
	if style.CurrentThemeName != "light" {
		t.Errorf("theme = %q, want light", style.CurrentThemeName)
	}
	if got, ok := cmd().(msg.ThemeChanged); !ok || got.Name != "light" {
		t.Errorf("theme command = %+v", got)
	}
	if nextTheme("tokyo-night") != "dark" {
		t.Error("theme cycle does not wrap")
	}
}

// ---------------------------------------------------------------------------
// Mouse / layout
// ---------------------------------------------------------------------------

func TestMouseClick_TranslatedToGrid(t *testing.T) {
	m := loaded(t, 100)
	// Line 0 is the title, line 1 the grid header.
	m, _ = update(t, m, tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft})
	if s := m.Grid().Sorting(); len(s) != 1 || s[0].ID != "n" {
		t.Errorf("Sorting after header click = %+v", s)
	}
	// Body row 4 sits at terminal line 1 + 2 + 4.
	m, _ = update(t, m, tea.MouseClickMsg{X: 1, Y: 7, Button: tea.MouseLeft})
	if m.Grid().Cursor() != 4 {
		t.Errorf("cursor = %d, want 4", m.Grid().Cursor())
	}
}

func TestMouseWheel_Scrolls(t *testing.T) {
	m := loaded(t, 100)
	m, _ = update(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if m.Grid().ScrollOffset() != 3 {
		t.Errorf("ScrollOffset = %v, want 3", m.Grid().ScrollOffset())
	}
}

func TestView_FillsTerminal(t *testing.T) {
	m := loaded(t, 100)
	if got := strings.Count(m.renderView(), "\n") + 1; got != 14 {
		t.Errorf("frame has %d lines, want 14", got)
	}
	m, _ = update(t, m, msg.SourceLoaded{Err: errors.New("x")})
	if got := strings.Count(m.renderView(), "\n") + 1; got != 14 {
		t.Errorf("error frame has %d lines, want 14", got)
	}
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(100, 30)
	if l.GridHeight != 28 || l.GridWidth != 100 || l.GridTop() != 1 {
		t.Errorf("layout = %+v", l)
	}
	small := ComputeLayout(5, 2)
	if small.GridHeight != minGridHeight || small.GridWidth != minGridWidth {
		t.Errorf("small layout = %+v", small)
	}
}

func TestSortLabel(t *testing.T) {
	got := sortLabel(table.SortingState{{ID: "age", Desc: true}, {ID: "name"}})
	if got != "age▼,name▲" {
		t.Errorf("sortLabel = %q", got)
	}
}
