package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hay-kot/artfolio/internal/core/artwork"
	"github.com/hay-kot/artfolio/pkg/randid"
)

// ErrUnbound is returned when an operation is applied without a store.
var ErrUnbound = errors.New("operation is not bound to a store")

// Kind identifies the mutation an Operation performs.
type Kind string

const (
	KindInsert  Kind = "insert"
	KindDelete  Kind = "delete"
	KindReplace Kind = "replace"
)

// Operation is one reversible mutation against a store. The snapshot needed to
// reverse it is captured when the operation is built, never when it runs.
//
//	insert:  apply = Add(Record)                  revert = Remove(Record.Title)
//	delete:  apply = Remove(Record.Title)         revert = Insert(Index, Record)
//	replace: apply = Update(Previous.Title→Record) revert = Update(Record.Title→Previous)
//
// For delete, Record is the snapshot and Index its position. Remove takes out
// every record with the title, so later copies are kept in Duplicates and
// revert puts them all back. Stores that are not an artwork.Inserter get the
// records appended instead. For replace, Previous is the snapshot and Record
// the replacement. A zero snapshot means nothing matched Target at
// construction; such operations never touch the store.
type Operation struct {
	ID       string          `json:"id"`
	Kind     Kind            `json:"kind"`
	Target   string          `json:"target"`
	Record   artwork.Artwork `json:"record"`
	Previous artwork.Artwork `json:"previous,omitzero"`
	Index    int             `json:"index,omitempty"`

	// Duplicates holds the later records sharing the deleted title.
	Duplicates []Placed  `json:"duplicates,omitempty"`
	At         time.Time `json:"at"`

	store artwork.Store
}

// Placed is a record and the position it held in the collection.
type Placed struct {
	Index  int             `json:"index"`
	Record artwork.Artwork `json:"record"`
}

// NewInsert builds an operation that adds a to store.
func NewInsert(store artwork.Store, a artwork.Artwork) Operation {
	return Operation{
		ID:     randid.Generate(8),
		Kind:   KindInsert,
		Target: a.Title,
		Record: a,
		At:     time.Now(),
		store:  store,
	}
}

// NewDelete builds an operation that removes every artwork titled title,
// snapshotting each of them from store.
func NewDelete(ctx context.Context, store artwork.Store, title string) (Operation, error) {
	records, err := store.List(ctx)
	if err != nil {
		return Operation{}, fmt.Errorf("snapshot %q: %w", title, err)
	}

	op := Operation{
		ID:     randid.Generate(8),
		Kind:   KindDelete,
		Target: title,
		At:     time.Now(),
		store:  store,
	}

	for i, a := range records {
		if a.Title != title {
			continue
		}
		if op.Record.IsZero() {
			op.Record, op.Index = a, i
			continue
		}
		op.Duplicates = append(op.Duplicates, Placed{Index: i, Record: a})
	}

	return op, nil
}

// NewReplace builds an operation that replaces the artwork titled title with
// updated, snapshotting the current record from store.
func NewReplace(ctx context.Context, store artwork.Store, title string, updated artwork.Artwork) (Operation, error) {
	snapshot, _, err := snapshot(ctx, store, title)
	if err != nil {
		return Operation{}, err
	}

	return Operation{
		ID:       randid.Generate(8),
		Kind:     KindReplace,
		Target:   title,
		Record:   updated,
		Previous: snapshot,
		At:       time.Now(),
		store:    store,
	}, nil
}

func snapshot(ctx context.Context, store artwork.Store, title string) (artwork.Artwork, int, error) {
	a, i, err := artwork.Locate(ctx, store, title)
	if err != nil {
		if errors.Is(err, artwork.ErrNotFound) {
			return artwork.Artwork{}, 0, nil
		}
		return artwork.Artwork{}, 0, fmt.Errorf("snapshot %q: %w", title, err)
	}
	return a, i, nil
}

// Bind returns a copy of op bound to store. Used to reattach operations
// restored from a journal.
func (op Operation) Bind(store artwork.Store) Operation {
	op.store = store
	return op
}

// Empty reports whether the operation holds an empty snapshot because no
// record matched its target when it was built.
func (op Operation) Empty() bool {
	switch op.Kind {
	case KindDelete:
		return op.Record.IsZero()
	case KindReplace:
		return op.Previous.IsZero()
	default:
		return false
	}
}

// Apply performs the forward mutation.
func (op Operation) Apply(ctx context.Context) error {
	if err := op.check(); err != nil {
		return err
	}

	switch op.Kind {
	case KindInsert:
		return op.store.Add(ctx, op.Record)
	case KindDelete:
		return op.store.Remove(ctx, op.Record.Title)
	case KindReplace:
		return op.replace(ctx, op.Previous.Title, op.Record)
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// Revert performs the inverse mutation.
func (op Operation) Revert(ctx context.Context) error {
	if err := op.check(); err != nil {
		return err
	}

	switch op.Kind {
	case KindInsert:
		return op.store.Remove(ctx, op.Record.Title)
	case KindDelete:
		return op.restore(ctx)
	case KindReplace:
		return op.replace(ctx, op.Record.Title, op.Previous)
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// restore puts back every deleted record. Positions are ascending, so
// inserting in order rebuilds the original layout.
func (op Operation) restore(ctx context.Context) error {
	placed := append([]Placed{{Index: op.Index, Record: op.Record}}, op.Duplicates...)

	ins, positional := op.store.(artwork.Inserter)
	for _, p := range placed {
		var err error
		if positional {
			err = ins.Insert(ctx, p.Index, p.Record)
		} else {
			err = op.store.Add(ctx, p.Record)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (op Operation) check() error {
	if op.store == nil {
		return ErrUnbound
	}
	if op.Empty() {
		return fmt.Errorf("%s %q: %w", op.Kind, op.Target, artwork.ErrNotFound)
	}
	return nil
}

func (op Operation) replace(ctx context.Context, title string, a artwork.Artwork) error {
	if title == a.Title {
		return op.store.Update(ctx, a)
	}

	rt, ok := op.store.(artwork.Retitler)
	if !ok {
		return fmt.Errorf("rename %q to %q: store does not support renames", title, a.Title)
	}
	return rt.UpdateTitle(ctx, title, a)
}

// Description returns a human-readable description.
func (op Operation) Description() string {
	switch op.Kind {
	case KindInsert:
		return fmt.Sprintf("Add %q", op.Target)
	case KindDelete:
		return fmt.Sprintf("Remove %q", op.Target)
	case KindReplace:
		if op.Record.Title != op.Target {
			return fmt.Sprintf("Update %q (renamed to %q)", op.Target, op.Record.Title)
		}
		return fmt.Sprintf("Update %q", op.Target)
	default:
		return string(op.Kind)
	}
}
