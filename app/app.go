package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-grid/msg"
	"github.com/miosa/osa-grid/style"
	"github.com/miosa/osa-grid/table"
	"github.com/miosa/osa-grid/ui/common"
	"github.com/miosa/osa-grid/ui/grid"
	"github.com/miosa/osa-grid/ui/help"
)

// Loader produces the table the grid browses. It runs off the update loop.
type Loader func(ctx context.Context) (table.Model, error)

// Options configures New.
type Options struct {
	// SourceName is shown in the title bar.
	SourceName string
	Loader     Loader
	RowHeight  int
	Overscan   int
	Logger     *slog.Logger
}

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model. It owns the grid and the chrome around
// it, and loads the source asynchronously.
type Model struct {
	grid  grid.Model
	state State

	layout Layout
	width  int
	height int

	keys     KeyMap
	gridKeys grid.KeyMap

	sourceName string
	loader     Loader
	logger     *slog.Logger

	err      error
	loadedIn time.Duration
	helpText string
}

// New constructs the root Model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gk := grid.DefaultKeyMap()
	m := Model{
		state:      StateLoading,
		keys:       DefaultKeyMap(),
		gridKeys:   gk,
		sourceName: opts.SourceName,
		loader:     opts.Loader,
		logger:     logger,
		width:      80,
		height:     24,
	}
	m.layout = ComputeLayout(m.width, m.height)
	gridOpts := []grid.Option{
		grid.WithWidth(m.layout.GridWidth),
		grid.WithHeight(m.layout.GridHeight),
		grid.WithKeyMap(gk),
		grid.WithLogger(logger),
		grid.WithRowHeight(opts.RowHeight),
	}
	if opts.Overscan > 0 {
		gridOpts = append(gridOpts, grid.WithOverscan(opts.Overscan))
	}
	m.grid = grid.New(gridOpts...)
	return m
}

// State returns the current application state.
func (m Model) State() State { return m.state }

// Grid returns the grid sub-model.
func (m Model) Grid() grid.Model { return m.grid }

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), func() tea.Msg { return tea.RequestWindowSize() })
}

// load runs the loader and reports the result as a msg.SourceLoaded.
func (m Model) load() tea.Cmd {
	loader, name := m.loader, m.sourceName
	return func() tea.Msg {
		if loader == nil {
			return msg.SourceLoaded{Name: name, Err: fmt.Errorf("no loader configured")}
		}
		start := time.Now()
		data, err := loader(context.Background())
		return msg.SourceLoaded{Name: name, Data: data, Elapsed: time.Since(start), Err: err}
	}
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout = ComputeLayout(v.Width, v.Height)
		m.grid.SetSize(m.layout.GridWidth, m.layout.GridHeight)
		if m.state == StateHelp {
			m.helpText = help.Render(helpSections(m.keys, m.gridKeys), m.width)
		}
		return m, nil

	case msg.SourceLoaded:
		if v.Err != nil {
			m.err = v.Err
			m.state = StateError
			m.logger.Error("source load failed", "source", v.Name, "error", v.Err)
			return m, nil
		}
		m.err = nil
		m.loadedIn = v.Elapsed
		m.grid.SetData(v.Data)
		m.state = StateBrowsing
		m.logger.Info("source loaded", "source", v.Name, "rows", v.Data.Len(), "elapsed", v.Elapsed)
		return m, nil

	case msg.ThemeChanged:
		m.logger.Debug("theme changed", "theme", v.Name)
		if m.state == StateHelp {
			m.helpText = help.Render(helpSections(m.keys, m.gridKeys), m.width)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(v)

	case tea.MouseClickMsg:
		if m.state != StateBrowsing {
			return m, nil
		}
		v.Y -= m.layout.GridTop()
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(v)
		return m, cmd

	case tea.MouseWheelMsg:
		if m.state != StateBrowsing {
			return m, nil
		}
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(v)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit

	case m.state == StateHelp:
		if key.Matches(k, m.keys.Escape) || key.Matches(k, m.keys.Help) {
			m.state = StateBrowsing
		}
		return m, nil

	case key.Matches(k, m.keys.Help):
		if m.state != StateBrowsing {
			return m, nil
		}
		m.helpText = help.Render(helpSections(m.keys, m.gridKeys), m.width)
		m.state = StateHelp
		return m, nil

	case key.Matches(k, m.keys.Reload):
		if m.state == StateLoading {
			return m, nil
		}
		m.state = StateLoading
		m.logger.Info("reloading source", "source", m.sourceName)
		return m, m.load()

	case key.Matches(k, m.keys.Theme):
		name := nextTheme(style.CurrentThemeName)
		style.SetTheme(name)
		return m, func() tea.Msg { return msg.ThemeChanged{Name: name} }
	}

	if m.state != StateBrowsing {
		return m, nil
	}
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(k)
	return m, cmd
}

func nextTheme(current string) string {
	i := slices.Index(style.ThemeNames, current)
	return style.ThemeNames[(i+1)%len(style.ThemeNames)]
}

// -- View ---------------------------------------------------------------------

// View renders the full-screen frame. AltScreen and MouseMode are set on
// every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	sections := []string{m.renderTitle()}

	switch m.state {
	case StateLoading:
		sections = append(sections, m.fill(style.Faint.Render(" loading "+m.sourceName+"…")))
	case StateError:
		body := style.ErrorText.Render(" "+errString(m.err)) + "\n" +
			style.Hint.Render(" r to retry, q to quit")
		sections = append(sections, m.fill(body))
	case StateHelp:
		sections = append(sections, m.fill(m.helpText))
	default:
		sections = append(sections, m.grid.View())
	}

	sections = append(sections, m.renderStatus())
	return strings.Join(sections, "\n")
}

// fill clips or pads body to the grid's height so the status bar stays on
// the last line.
func (m Model) fill(body string) string {
	lines := strings.Split(body, "\n")
	h := m.layout.GridHeight
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTitle() string {
	title := style.Title.Render("osa-grid")
	src := style.TitleSource.Render(" · " + m.sourceName)
	var rows string
	if m.state == StateBrowsing || m.state == StateHelp {
		rows = style.Faint.Render(fmt.Sprintf(" · %d rows", m.grid.Len()))
		if k := m.grid.CursorKey(); k != "" {
			rows += style.Faint.Render(" · " + k)
		}
	}
	return common.ClipLine(title+src+rows, m.width)
}

// renderStatus shows what the virtualizer materialised: the range, the
// paddings standing in for everything else, the total size and the sort.
func (m Model) renderStatus() string {
	if m.state != StateBrowsing {
		hint := style.Hint.Render("? help · q quit")
		return style.StatusBar.Render(common.ClipLine(hint, max(0, m.width-1)))
	}

	r := m.grid.Range()
	p := m.grid.Padding()
	parts := []string{
		field("rows", fmt.Sprintf("%d–%d/%d", r.Start, r.End, m.grid.Len())),
		field("pad", fmt.Sprintf("%.0f/%.0f", p.Top, p.Bottom)),
		field("total", fmt.Sprintf("%.0f", m.grid.TotalSize())),
	}
	if r.Empty() {
		parts[0] = field("rows", "0")
	}
	if s := sortLabel(m.grid.Sorting()); s != "" {
		parts = append(parts, field("sort", s))
	}
	if m.loadedIn > 0 {
		parts = append(parts, style.Faint.Render(m.loadedIn.Round(time.Millisecond).String()))
	}
	line := strings.Join(parts, style.Faint.Render(" · "))
	return style.StatusBar.Render(common.ClipLine(line, max(0, m.width-1)))
}

func field(label, value string) string {
	return style.StatusLabel.Render(label+" ") + style.StatusValue.Render(value)
}

func sortLabel(s table.SortingState) string {
	parts := make([]string, len(s))
	for i, cs := range s {
		dir := table.Ascending
		if cs.Desc {
			dir = table.Descending
		}
		parts[i] = cs.ID + dir.Indicator()
	}
	return strings.Join(parts, ",")
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
