// Package msg defines the tea.Msg types dispatched within the grid app.
package msg

import (
	"time"

	"github.com/miosa/osa-grid/table"
)

// SourceLoaded carries the result of an asynchronous source load.
type SourceLoaded struct {
	Name    string
	Data    table.Model
	Elapsed time.Duration
	Err     error
}

// ThemeChanged reports that the active theme switched.
type ThemeChanged struct {
	Name string
}
