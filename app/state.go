package app

// State represents the current application state.
type State int

const (
	StateLoading  State = iota // Source load in flight
	StateBrowsing              // Grid has focus
	StateHelp                  // Key reference overlay
	StateError                 // Last load failed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateBrowsing:
		return "browsing"
	case StateHelp:
		return "help"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
