package virtual

import "fmt"

// DiagnosticKind classifies a recoverable input-contract violation.
type DiagnosticKind int

const (
	// NonPositiveExtent means the estimator (or a measurement) returned a
	// size <= 0 or NaN; MinExtent was used instead.
	NonPositiveExtent DiagnosticKind = iota
)

func (k DiagnosticKind) String() string {
	switch k {
	case NonPositiveExtent:
		return "non_positive_extent"
	default:
		return "unknown"
	}
}

// Diagnostic describes one clamped input. Diagnostics are never fatal.
type Diagnostic struct {
	Kind  DiagnosticKind
	Index int
	Value float64
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: index %d reported size %v", d.Kind, d.Index, d.Value)
}
