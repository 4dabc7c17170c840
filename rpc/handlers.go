package rpc

import (
	"context"
	"encoding/json"
	"math"
	"slices"

	"github.com/miosa/osa-grid/source"
	"github.com/miosa/osa-grid/virtual"
)

func (s *Server) handleConfigure(ctx context.Context, params json.RawMessage) (any, *RPCError) {
	var p ConfigureParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.Estimate != nil && (math.IsNaN(*p.Estimate) || math.IsInf(*p.Estimate, 0)) {
		return nil, invalid("estimate must be finite")
	}

	opts := virtual.Options{Overscan: p.Overscan}

	switch {
	case p.Source != nil:
		spec := source.Spec{
			Name:        p.Source.Name,
			Count:       p.Source.Count,
			Seed:        p.Source.Seed,
			RepoPath:    p.Source.RepoPath,
			CommitLimit: p.Source.CommitLimit,
			Sorting:     toSorting(p.Source.Sort),
		}
		data, err := s.load(ctx, spec)
		if err != nil {
			return nil, &RPCError{Code: CodeSourceFailed, Message: err.Error()}
		}
		s.data, s.keys = data, nil
		opts.Count = data.Len()
		opts.GetItemKey = data.KeyFunc()
	case p.Keys != nil:
		s.data = nil
		s.keys = slices.Clone(p.Keys)
		opts.Count = len(s.keys)
		opts.GetItemKey = s.keyFunc()
	default:
		s.data, s.keys = nil, nil
		if p.Count != nil {
			opts.Count = *p.Count
		}
		// Index keys until a reorder supplies a key list.
		opts.GetItemKey = s.keyFunc()
	}

	estimate := virtual.DefaultEstimate
	if p.Estimate != nil {
		estimate = *p.Estimate
	}
	if len(p.Sizes) > 0 {
		sizes := append([]float64(nil), p.Sizes...)
		opts.Estimate = func(i int) float64 {
			if i < len(sizes) {
				return sizes[i]
			}
			return estimate
		}
	} else {
		opts.Estimate = virtual.Fixed(estimate)
	}

	s.v.SetOptions(s.options(opts))
	s.v.SetViewportExtent(p.Viewport)
	s.v.SetScrollOffset(p.Scroll)
	s.logger.Info("configured", "count", s.v.Count(), "overscan", p.Overscan, "source", p.Source != nil)
	// A reconfigure always counts as a change for the caller.
	s.changed = true
	return s.state(), nil
}

func (s *Server) handleScroll(params json.RawMessage) (any, *RPCError) {
	var p ScrollParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.Delta != nil {
		s.v.ScrollBy(*p.Delta)
	} else {
		s.v.SetScrollOffset(p.Offset)
	}
	return s.state(), nil
}

func (s *Server) handleResize(params json.RawMessage) (any, *RPCError) {
	var p ResizeParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	s.v.SetViewportExtent(p.Viewport)
	return s.state(), nil
}

func (s *Server) handleSetCount(params json.RawMessage) (any, *RPCError) {
	var p SetCountParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if s.data != nil {
		return nil, invalid("count is fixed by the loaded source")
	}
	if s.keys != nil {
		// Positions past the key list fall back to index keys.
		s.keys = s.keys[:min(len(s.keys), max(0, p.Count))]
	}
	s.v.SetCount(p.Count)
	return s.state(), nil
}

func (s *Server) handleReorder(params json.RawMessage) (any, *RPCError) {
	var p ReorderParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	switch {
	case p.Sort != nil:
		if s.data == nil {
			return nil, &RPCError{Code: CodeNoSource, Message: "reorder by sort needs a loaded source"}
		}
		s.data.SetSorting(toSorting(p.Sort))
	case p.Keys != nil:
		if s.data != nil {
			return nil, invalid("keys cannot reorder a loaded source; use sort")
		}
		s.keys = slices.Clone(p.Keys)
		s.v.SetCount(len(s.keys))
	default:
		return nil, invalid("reorder needs keys or sort")
	}
	s.v.Reset()
	return s.state(), nil
}

func (s *Server) handleToggleSort(params json.RawMessage) (any, *RPCError) {
	var p ToggleSortParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if s.data == nil {
		return nil, &RPCError{Code: CodeNoSource, Message: "toggle_sort needs a loaded source"}
	}
	if !s.data.ToggleSort(p.ID, p.Multi) {
		return nil, invalid("column %q cannot be sorted", p.ID)
	}
	s.v.Reset()
	return s.state(), nil
}

func (s *Server) handleMeasure(params json.RawMessage) (any, *RPCError) {
	var p MeasureParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.Size == nil {
		s.v.ClearMeasurements()
		return s.state(), nil
	}
	if p.Index < 0 || p.Index >= s.v.Count() {
		return nil, invalid("index %d out of range [0,%d)", p.Index, s.v.Count())
	}
	s.v.Measure(p.Index, *p.Size)
	return s.state(), nil
}

func (s *Server) handleScrollToIndex(params json.RawMessage) (any, *RPCError) {
	var p ScrollToIndexParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	s.v.ScrollToIndex(p.Index, virtual.ParseAlign(p.Align))
	return s.state(), nil
}

func (s *Server) handleRows(params json.RawMessage) (any, *RPCError) {
	var p RowsParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if s.data == nil {
		return nil, &RPCError{Code: CodeNoSource, Message: "rows needs a loaded source"}
	}

	r := s.v.Range()
	start, end := r.Start, r.End
	if p.Start != nil {
		start = *p.Start
	}
	if p.End != nil {
		end = *p.End
	}
	start = max(0, start)
	end = min(end, s.data.Len()-1)

	res := RowsResult{Rows: []RowResult{}}
	for _, h := range s.data.Headers() {
		res.Headers = append(res.Headers, HeaderResult{
			ID: h.ID, Title: h.Title, CanSort: h.CanSort, Sort: h.Sort.String(), Priority: h.Priority,
		})
	}
	for i := start; i <= end; i++ {
		res.Rows = append(res.Rows, RowResult{Index: i, Key: s.data.RowID(i), Cells: s.data.Cells(i)})
	}
	return res, nil
}
