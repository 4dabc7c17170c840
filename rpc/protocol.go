// Package rpc serves a virtualizer over line-delimited JSON on a pair of
// streams, so a host written in any language can drive the windowing engine
// and, optionally, one of the built-in sources.
package rpc

import (
	"encoding/json"

	"github.com/miosa/osa-grid/table"
	"github.com/miosa/osa-grid/virtual"
)

// Error codes.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	// CodeNoSource is returned by methods that need a loaded source.
	CodeNoSource = -32000
	// CodeSourceFailed is returned when loading a source fails.
	CodeSourceFailed = -32001
)

// Request is a JSON-RPC request read from the input stream.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC response written to the output stream.
type Response struct {
	ID     string    `json:"id"`
	Result any       `json:"result,omitempty"`
	Error  *RPCError `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string { return e.Message }

// -- Params -------------------------------------------------------------------

// ConfigureParams replaces the virtualizer's options. Keys, when given, fix
// the count and bind each position to a key. Sizes, when given, are per-row
// estimates; rows past the end use Estimate.
type ConfigureParams struct {
	Count    *int          `json:"count,omitempty"`
	Estimate *float64      `json:"estimate,omitempty"`
	Sizes    []float64     `json:"sizes,omitempty"`
	Overscan int           `json:"overscan"`
	Keys     []string      `json:"keys,omitempty"`
	Viewport float64       `json:"viewport"`
	Scroll   float64       `json:"scroll"`
	Source   *SourceParams `json:"source,omitempty"`
}

// SourceParams loads a built-in source and binds count and keys to it.
type SourceParams struct {
	Name        string      `json:"name"`
	Count       int         `json:"count"`
	Seed        int64       `json:"seed"`
	RepoPath    string      `json:"repo_path,omitempty"`
	CommitLimit int         `json:"commit_limit,omitempty"`
	Sort        []SortParam `json:"sort,omitempty"`
}

// SortParam is one entry of a sorting state.
type SortParam struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc,omitempty"`
}

// ScrollParams sets the offset, or moves it by Delta when Delta is present.
type ScrollParams struct {
	Offset float64  `json:"offset"`
	Delta  *float64 `json:"delta,omitempty"`
}

// ResizeParams sets the viewport extent.
type ResizeParams struct {
	Viewport float64 `json:"viewport"`
}

// SetCountParams sets the row count.
type SetCountParams struct {
	Count int `json:"count"`
}

// ReorderParams reorders rows, either by an explicit key list or by a new
// sorting state on the loaded source.
type ReorderParams struct {
	Keys []string    `json:"keys,omitempty"`
	Sort []SortParam `json:"sort,omitempty"`
}

// ToggleSortParams advances one column through its sort cycle.
type ToggleSortParams struct {
	ID    string `json:"id"`
	Multi bool   `json:"multi,omitempty"`
}

// MeasureParams reports the measured size of the row at Index. A Size of
// nil drops every measurement.
type MeasureParams struct {
	Index int      `json:"index"`
	Size  *float64 `json:"size,omitempty"`
}

// ScrollToIndexParams scrolls Index into view.
type ScrollToIndexParams struct {
	Index int    `json:"index"`
	Align string `json:"align,omitempty"`
}

// RowsParams selects rows of the loaded source. Missing bounds default to
// the current range.
type RowsParams struct {
	Start *int `json:"start,omitempty"`
	End   *int `json:"end,omitempty"`
}

// -- Results ------------------------------------------------------------------

// RangeResult is an inclusive index range; End < Start when empty.
type RangeResult struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// PaddingResult is the space before and after the materialised rows.
type PaddingResult struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DiagnosticResult reports an input the engine clamped.
type DiagnosticResult struct {
	Kind  string  `json:"kind"`
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// StateResult is returned by every event method.
type StateResult struct {
	Count       int                `json:"count"`
	Scroll      float64            `json:"scroll"`
	Viewport    float64            `json:"viewport"`
	Total       float64            `json:"total"`
	Range       RangeResult        `json:"range"`
	Padding     PaddingResult      `json:"padding"`
	Changed     bool               `json:"changed"`
	Diagnostics []DiagnosticResult `json:"diagnostics,omitempty"`
}

// ItemResult is one materialised row.
type ItemResult struct {
	Index int     `json:"index"`
	Key   string  `json:"key"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Size  float64 `json:"size"`
}

// ItemsResult is returned by virtual_items.
type ItemsResult struct {
	Items   []ItemResult  `json:"items"`
	Padding PaddingResult `json:"padding"`
}

// TotalResult is returned by total_size.
type TotalResult struct {
	Total float64 `json:"total"`
}

// HeaderResult describes one column of the loaded source.
type HeaderResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	CanSort  bool   `json:"can_sort"`
	Sort     string `json:"sort,omitempty"`
	Priority int    `json:"priority"`
}

// RowResult is one rendered row of the loaded source.
type RowResult struct {
	Index int      `json:"index"`
	Key   string   `json:"key"`
	Cells []string `json:"cells"`
}

// RowsResult is returned by rows.
type RowsResult struct {
	Headers []HeaderResult `json:"headers"`
	Rows    []RowResult    `json:"rows"`
}

func toSorting(ps []SortParam) table.SortingState {
	s := make(table.SortingState, len(ps))
	for i, p := range ps {
		s[i] = table.ColumnSort{ID: p.ID, Desc: p.Desc}
	}
	return s
}

func toRange(r virtual.Range) RangeResult {
	return RangeResult{Start: r.Start, End: r.End}
}

func toPadding(p virtual.Padding) PaddingResult {
	return PaddingResult{Top: p.Top, Bottom: p.Bottom}
}
