package storage

import (
	"context"

	"github.com/chris/wager-escrow/pkg/models"
)

// WagerReader defines the interface for reading committed wager state.
type WagerReader interface {
	// GetWager retrieves a wager by id. Returns ErrNotFound if absent.
	GetWager(ctx context.Context, id uint64) (*models.Wager, error)

	// WagerCount returns the id counter, i.e. the number of wagers ever created.
	WagerCount(ctx context.Context) (uint64, error)

	// ListIndex returns the members of an index in unspecified order.
	ListIndex(ctx context.Context, index models.Index) ([]uint64, error)

	// ListParticipations returns the participation log of an identity in append order.
	ListParticipations(ctx context.Context, identity string) ([]uint64, error)

	// ListWagers returns every wager ever created.
	ListWagers(ctx context.Context) ([]models.Wager, error)
}

// EventReader defines the interface for reading the event log.
type EventReader interface {
	// ListEvents returns events in emission order.
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

// Tx is a unit of work against the whole ledger state. Writes are staged and
// only become visible when the enclosing Update commits.
type Tx interface {
	WagerCount() uint64
	SetWagerCount(n uint64)

	// GetWager reads through staged writes. Returns ErrNotFound if absent.
	GetWager(ctx context.Context, id uint64) (*models.Wager, error)
	PutWager(w *models.Wager)

	AddToIndex(index models.Index, id uint64)
	RemoveFromIndex(index models.Index, id uint64)
	AppendParticipation(identity string, id uint64)

	// Collect moves amount from the identity's wallet into custody.
	// Returns ErrWalletNotFound or ErrInsufficientFunds.
	Collect(ctx context.Context, from string, amount int64, wagerID uint64) error

	// Release moves amount out of custody to the identity, creating its wallet if needed.
	Release(ctx context.Context, to string, kind models.EntryKind, amount int64, wagerID uint64) error

	// Emit appends an event. Seq is assigned on commit.
	Emit(event models.Event)
}

// Updater runs units of work serialized against all other updates.
type Updater interface {
	// Update runs fn and commits its staged writes if fn returns nil.
	// It returns the committed events with their sequence numbers.
	Update(ctx context.Context, fn func(tx Tx) error) ([]models.Event, error)
}

// LedgerStore is everything the wager ledger needs from storage.
type LedgerStore interface {
	WagerReader
	EventReader
	Updater
	CustodyReader
	SnapshotReader
}

// Snapshot is the ledger-wide state as of a single point between commits.
type Snapshot struct {
	WagerCount uint64
	Custody    int64
	Wagers     []models.Wager
	Open       []uint64
	Matched    []uint64
}

// SnapshotReader reads a Snapshot no commit is interleaved with. It returns
// ErrConflict when the ledger kept changing while it was being read.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// CustodyReader reports the total value held in custody.
type CustodyReader interface {
	Custody(ctx context.Context) (int64, error)
}
