package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/miosa/osa-grid/app"
	"github.com/miosa/osa-grid/config"
	"github.com/miosa/osa-grid/logging"
	"github.com/miosa/osa-grid/source"
	"github.com/miosa/osa-grid/style"
	"github.com/miosa/osa-grid/table"
	"github.com/miosa/osa-grid/version"
)

var rootCmd = &cobra.Command{
	Use:   "osa-grid",
	Short: "Browse large tables in the terminal through a virtualized grid",
	Long: `osa-grid renders only the rows that intersect the viewport, so tables of
any length scroll at the same cost. Sources: people (generated), processes
(live) and commits (git log).`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// flags shared by every command; zero values mean "use the config file".
var flags struct {
	profileDir  string
	source      string
	count       int
	seed        int64
	overscan    int
	rowHeight   int
	repoPath    string
	commitLimit int
	sort        []string
	theme       string
	logLevel    string
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.profileDir, "profile-dir", "", "settings and log directory (default ~/.osa-grid)")
	pf.StringVarP(&flags.source, "source", "s", "", "data source: people, processes or commits")
	pf.IntVarP(&flags.count, "count", "n", 0, "rows to generate for the people source")
	pf.Int64Var(&flags.seed, "seed", 0, "generator seed for the people source")
	pf.IntVar(&flags.overscan, "overscan", 0, "extra rows materialised on each side of the viewport")
	pf.IntVar(&flags.rowHeight, "row-height", 0, "terminal lines per row")
	pf.StringVar(&flags.repoPath, "repo", "", "repository for the commits source (default: working directory)")
	pf.IntVar(&flags.commitLimit, "commit-limit", 0, "maximum commits to read")
	pf.StringSliceVar(&flags.sort, "sort", nil, `initial sort, e.g. "age:desc,lastName"`)
	pf.StringVar(&flags.theme, "theme", "", "theme: auto, dark, light, catppuccin or tokyo-night")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "osa-grid: %v\n", err)
		os.Exit(1)
	}
}

// settings loads the config file and applies any flags the user set.
func settings(cmd *cobra.Command) (config.Config, string, error) {
	dir := flags.profileDir
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return config.Config{}, "", err
		}
		dir = d
	}

	cfg, err := config.Load(dir)
	if err != nil {
		// A broken file is reported but does not stop the run.
		fmt.Fprintf(cmd.ErrOrStderr(), "osa-grid: %v (using defaults)\n", err)
	}

	fs := cmd.Flags()
	if fs.Changed("source") {
		cfg.Source = flags.source
	}
	if fs.Changed("count") {
		cfg.Count = flags.count
	}
	if fs.Changed("seed") {
		cfg.Seed = flags.seed
	}
	if fs.Changed("overscan") {
		cfg.Overscan = flags.overscan
	}
	if fs.Changed("row-height") {
		cfg.RowHeight = flags.rowHeight
	}
	if fs.Changed("repo") {
		cfg.RepoPath = flags.repoPath
	}
	if fs.Changed("commit-limit") {
		cfg.CommitLimit = flags.commitLimit
	}
	if fs.Changed("sort") {
		cfg.Sort = flags.sort
	}
	if fs.Changed("theme") {
		cfg.Theme = flags.theme
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	return cfg.Normalize(), dir, nil
}

// sourceSpec translates settings into a source.Spec.
func sourceSpec(cfg config.Config) (source.Spec, error) {
	repo := cfg.RepoPath
	if cfg.Source == source.NameCommits && repo == "" {
		wd, err := os.Getwd()
		if err != nil {
			return source.Spec{}, fmt.Errorf("getting working directory: %w", err)
		}
		repo = wd
	}
	return source.Spec{
		Name:        cfg.Source,
		Count:       cfg.Count,
		Seed:        cfg.Seed,
		RepoPath:    repo,
		CommitLimit: cfg.CommitLimit,
		Sorting:     cfg.Sorting(),
	}, nil
}

// applyTheme selects the configured theme, detecting the background for
// "auto".
func applyTheme(name string) error {
	if name == "auto" {
		name = "light"
		if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
			name = "dark"
		}
	}
	if !style.SetTheme(name) {
		return fmt.Errorf("unknown theme %q (want auto or one of %v)", name, style.ThemeNames)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use `osa-grid snapshot` or `osa-grid serve`")
	}

	cfg, dir, err := settings(cmd)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.Setup(dir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			fmt.Fprintf(os.Stderr, "closing log file: %v\n", cerr)
		}
	}()

	if err := applyTheme(cfg.Theme); err != nil {
		return err
	}

	spec, err := sourceSpec(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting osa-grid", "version", version.String(), "source", spec.Name, "theme", style.CurrentThemeName)

	m := app.New(app.Options{
		SourceName: spec.Name,
		Loader: func(ctx context.Context) (table.Model, error) {
			return source.Load(ctx, spec)
		},
		RowHeight: cfg.RowHeight,
		Overscan:  cfg.Overscan,
		Logger:    logger,
	})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
