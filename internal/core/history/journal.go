package history

import "context"

// State is the persisted form of a History.
type State struct {
	Applied []Operation `json:"applied"`
	Pending []Operation `json:"pending"`
}

// Journal defines persistence for history state across process restarts.
type Journal interface {
	// Load returns the saved state. A journal that was never written returns an empty State.
	Load(ctx context.Context) (State, error)
	// Save replaces the saved state.
	Save(ctx context.Context, s State) error
	// Clear removes all saved state.
	Clear(ctx context.Context) error
}
