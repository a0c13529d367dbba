package history

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artfolio/internal/core/artwork"
)

// Options configures a History.
type Options struct {
	// MaxEntries caps the applied stack, dropping the oldest entries. 0 means unbounded.
	MaxEntries int
	// Strict propagates artwork.ErrNotFound from apply/revert instead of
	// treating the operation as a no-op.
	Strict bool
}

// History owns the applied and pending stacks of operations. It is not safe
// for concurrent use.
type History struct {
	applied []Operation
	pending []Operation

	maxEntries int
	strict     bool
	log        zerolog.Logger
}

// New creates an empty history.
func New(opts Options, log zerolog.Logger) *History {
	return &History{
		maxEntries: opts.MaxEntries,
		strict:     opts.Strict,
		log:        log,
	}
}

// Apply runs op and pushes it onto the applied stack. The pending stack is
// cleared; this is the only transition that clears it. On failure the stacks
// are left untouched.
func (h *History) Apply(ctx context.Context, op Operation) error {
	if err := h.run(ctx, op, op.Apply); err != nil {
		return err
	}

	h.applied = append(h.applied, op)
	h.pending = nil

	if h.maxEntries > 0 && len(h.applied) > h.maxEntries {
		excess := len(h.applied) - h.maxEntries
		h.applied = h.applied[excess:]
	}

	h.log.Debug().Str("op", op.ID).Str("kind", string(op.Kind)).Str("target", op.Target).Msg("applied")
	return nil
}

// Undo reverts the most recently applied operation and moves it to the
// pending stack. It is a no-op when there is nothing to undo. If the revert
// fails the operation stays on the applied stack.
func (h *History) Undo(ctx context.Context) error {
	if len(h.applied) == 0 {
		return nil
	}

	op := h.applied[len(h.applied)-1]
	if err := h.run(ctx, op, op.Revert); err != nil {
		return err
	}

	h.applied = h.applied[:len(h.applied)-1]
	h.pending = append(h.pending, op)

	h.log.Debug().Str("op", op.ID).Str("kind", string(op.Kind)).Msg("undone")
	return nil
}

// Redo re-applies the most recently undone operation and moves it back to
// the applied stack. It is a no-op when there is nothing to redo.
func (h *History) Redo(ctx context.Context) error {
	if len(h.pending) == 0 {
		return nil
	}

	op := h.pending[len(h.pending)-1]
	if err := h.run(ctx, op, op.Apply); err != nil {
		return err
	}

	h.pending = h.pending[:len(h.pending)-1]
	h.applied = append(h.applied, op)

	h.log.Debug().Str("op", op.ID).Str("kind", string(op.Kind)).Msg("redone")
	return nil
}

func (h *History) run(ctx context.Context, op Operation, fn func(context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}

	if !h.strict && errors.Is(err, artwork.ErrNotFound) {
		h.log.Debug().Err(err).Str("op", op.ID).Msg("target missing, treating as no-op")
		return nil
	}
	return err
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.applied) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.pending) > 0
}

// UndoCount returns the number of operations that can be undone.
func (h *History) UndoCount() int {
	return len(h.applied)
}

// RedoCount returns the number of operations that can be redone.
func (h *History) RedoCount() int {
	return len(h.pending)
}

// Applied returns a copy of the applied stack, bottom first.
func (h *History) Applied() []Operation {
	return append([]Operation(nil), h.applied...)
}

// Pending returns a copy of the pending stack, bottom first.
func (h *History) Pending() []Operation {
	return append([]Operation(nil), h.pending...)
}

// Clear drops both stacks without touching the store.
func (h *History) Clear() {
	h.applied = nil
	h.pending = nil
}

// State returns a copy of both stacks for persistence.
func (h *History) State() State {
	return State{Applied: h.Applied(), Pending: h.Pending()}
}

// Restore replaces both stacks with s, binding every operation to store.
func (h *History) Restore(s State, store artwork.Store) {
	h.applied = bindAll(s.Applied, store)
	h.pending = bindAll(s.Pending, store)
}

func bindAll(ops []Operation, store artwork.Store) []Operation {
	if len(ops) == 0 {
		return nil
	}
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = op.Bind(store)
	}
	return out
}
