package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/miosa/osa-grid/source"
	"github.com/miosa/osa-grid/table"
	"github.com/miosa/osa-grid/virtual"
)

// maxLine bounds a single request; configure with explicit keys or sizes
// for large tables can be big.
const maxLine = 10 * 1024 * 1024

// Loader loads a source for configure. source.Load is the default.
type Loader func(ctx context.Context, spec source.Spec) (table.Model, error)

// Server answers requests for one virtualizer. It is not safe for concurrent
// use; Serve handles requests one at a time.
type Server struct {
	out    *bufio.Writer
	logger *slog.Logger
	load   Loader

	v    *virtual.Virtualizer
	keys []string
	data table.Model

	// Per-request event state, reset before each request.
	changed bool
	diags   []DiagnosticResult
}

// NewServer creates a Server writing responses to out. A nil logger
// discards logs.
func NewServer(out io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		out:    bufio.NewWriter(out),
		logger: logger,
		load:   source.Load,
	}
	s.v = virtual.New(s.options(virtual.Options{}))
	return s
}

// SetLoader replaces the source loader.
func (s *Server) SetLoader(l Loader) {
	s.load = l
}

// options wires the server's listeners into opts.
func (s *Server) options(opts virtual.Options) virtual.Options {
	opts.OnChange = func(*virtual.Virtualizer) { s.changed = true }
	opts.OnDiagnostic = func(d virtual.Diagnostic) {
		s.diags = append(s.diags, DiagnosticResult{Kind: d.Kind.String(), Index: d.Index, Value: d.Value})
	}
	opts.Logger = s.logger
	return opts
}

// Serve reads one request per line from in until it is exhausted or ctx is
// cancelled. Malformed lines are answered with a parse error and skipped.
func (s *Server) Serve(ctx context.Context, in io.Reader) error {
	s.logger.Info("grid sidecar ready")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0), maxLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			if err := s.writeResponse(errorResponse("", CodeParseError, fmt.Sprintf("parse error: %v", err))); err != nil {
				return err
			}
			continue
		}

		if err := s.writeResponse(s.Handle(ctx, req)); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	s.logger.Info("input closed, exiting")
	return nil
}

func (s *Server) writeResponse(resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		data, _ = json.Marshal(errorResponse(resp.ID, CodeInvalidParams, "unencodable result"))
	}
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return s.out.Flush()
}

func errorResponse(id string, code int, message string) Response {
	return Response{
		ID:    id,
		Error: &RPCError{Code: code, Message: message},
	}
}

// Handle dispatches one request.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	s.changed = false
	s.diags = nil

	var (
		result any
		rerr   *RPCError
	)
	switch req.Method {
	case "ping":
		result = "pong"
	case "configure":
		result, rerr = s.handleConfigure(ctx, req.Params)
	case "scroll":
		result, rerr = s.handleScroll(req.Params)
	case "resize":
		result, rerr = s.handleResize(req.Params)
	case "set_count":
		result, rerr = s.handleSetCount(req.Params)
	case "reorder":
		result, rerr = s.handleReorder(req.Params)
	case "toggle_sort":
		result, rerr = s.handleToggleSort(req.Params)
	case "measure":
		result, rerr = s.handleMeasure(req.Params)
	case "scroll_to_index":
		result, rerr = s.handleScrollToIndex(req.Params)
	case "virtual_items":
		result = s.items()
	case "total_size":
		result = TotalResult{Total: s.v.TotalSize()}
	case "state":
		result = s.state()
	case "rows":
		result, rerr = s.handleRows(req.Params)
	default:
		rerr = &RPCError{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", req.Method)}
	}

	if rerr != nil {
		s.logger.Debug("request failed", "method", req.Method, "code", rerr.Code, "error", rerr.Message)
		return Response{ID: req.ID, Error: rerr}
	}
	return Response{ID: req.ID, Result: result}
}

// decode unmarshals params into dst. Absent params leave dst at its zero
// value.
func decode(params json.RawMessage, dst any) *RPCError {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)}
	}
	return nil
}

func invalid(format string, args ...any) *RPCError {
	return &RPCError{Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// -- State --------------------------------------------------------------------

func (s *Server) state() StateResult {
	return StateResult{
		Count:       s.v.Count(),
		Scroll:      s.v.ScrollOffset(),
		Viewport:    s.v.ViewportExtent(),
		Total:       s.v.TotalSize(),
		Range:       toRange(s.v.Range()),
		Padding:     toPadding(s.v.Padding()),
		Changed:     s.changed,
		Diagnostics: s.diags,
	}
}

func (s *Server) items() ItemsResult {
	vis := s.v.VirtualItems()
	out := make([]ItemResult, len(vis))
	for i, it := range vis {
		out[i] = ItemResult{Index: it.Index, Key: it.Key, Start: it.Start, End: it.End, Size: it.Size}
	}
	return ItemsResult{Items: out, Padding: toPadding(virtual.Paddings(vis, s.v.TotalSize()))}
}

// keyFunc binds positions to the explicit key list, falling back to the
// index past its end.
func (s *Server) keyFunc() virtual.KeyFunc {
	return func(i int) string {
		if i >= 0 && i < len(s.keys) {
			return s.keys[i]
		}
		return virtual.IndexKey(i)
	}
}
