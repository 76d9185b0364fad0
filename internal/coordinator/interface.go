package coordinator

import "context"

// Coordinator is the dedup gate every trigger reports candidate paths to.
type Coordinator interface {
	// Submit processes path unless its current content was already processed.
	// Calls for the same path are serialised; different paths run independently.
	Submit(ctx context.Context, path string) error
	// State reports where path is in its processing lifecycle.
	State(path string) State
}

// State is the lifecycle position of one watched path.
type State int

const (
	Unseen State = iota
	Pending
	Processing
	Done
)

func (s State) String() string {
	switch s {
	case Unseen:
		return "unseen"
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}
