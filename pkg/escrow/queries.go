package escrow

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

// WagerCount returns the number of wagers ever created.
func (l *Ledger) WagerCount(ctx context.Context) (uint64, error) {
	n, err := l.store.WagerCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read wager count: %w", err)
	}
	return n, nil
}

// WagerTerms returns the opaque terms reference of a wager.
func (l *Ledger) WagerTerms(ctx context.Context, id uint64) (string, error) {
	w, err := l.Wager(ctx, id)
	if err != nil {
		return "", err
	}
	return w.Terms, nil
}

// Wager returns the full state of a wager, including terminal ones.
func (l *Ledger) Wager(ctx context.Context, id uint64) (*Wager, error) {
	r, err := l.store.GetWager(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("wager %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager %d: %w", id, err)
	}
	return FromRecord(r)
}

// OpenWagers returns the wagers waiting for a challenger, in no particular order.
func (l *Ledger) OpenWagers(ctx context.Context) ([]*Wager, error) {
	return l.indexed(ctx, models.IndexOpen)
}

// MatchedWagers returns the wagers waiting for resolution, in no particular order.
func (l *Ledger) MatchedWagers(ctx context.Context) ([]*Wager, error) {
	return l.indexed(ctx, models.IndexMatched)
}

// Participations returns the ids of wagers the identity created or accepted,
// in the order it joined them.
func (l *Ledger) Participations(ctx context.Context, identity string) ([]uint64, error) {
	ids, err := l.store.ListParticipations(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations of %s: %w", identity, err)
	}
	return ids, nil
}

// Events returns committed events in emission order.
func (l *Ledger) Events(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	events, err := l.store.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (l *Ledger) indexed(ctx context.Context, index models.Index) ([]*Wager, error) {
	ids, err := l.store.ListIndex(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s index: %w", index, err)
	}
	out := make([]*Wager, 0, len(ids))
	for _, id := range ids {
		w, err := l.Wager(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
