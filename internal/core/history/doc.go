// Package history provides the undo/redo engine for catalog mutations.
//
// Every change to a store is described by an Operation: an insert, delete or
// replace that carries the snapshot needed to reverse itself. Operations are
// handed to a History, which runs them and keeps two stacks:
//
//	h := history.New(history.Options{}, logger)
//
//	op, err := history.NewDelete(ctx, store, "Starry Night")
//	h.Apply(ctx, op) // runs op, clears the redo stack
//
//	h.Undo(ctx) // reverts the newest applied operation
//	h.Redo(ctx) // re-applies the newest undone operation
//
// Applying a new operation always empties the redo stack, so an undone branch
// can never be replayed on top of a different state.
//
// # Persistence
//
// Operations serialize to JSON without their store handle. A Journal saves
// the State of both stacks; History.Restore rebinds the loaded operations to
// the live store, so a journal must only ever be restored against the store
// it was saved from.
package history
