package escrow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

// CreateWager opens a new wager staked with the call's payment and returns
// its id. Ids start at 1 and are never reused.
func (l *Ledger) CreateWager(ctx context.Context, call Call, terms string) (id uint64, err error) {
	start := time.Now()
	defer func() { l.observe(ctx, OpCreate, id, call, call.Payment, err, start) }()

	if call.Payment <= 0 || call.Payment > MaxStake {
		return 0, fmt.Errorf("create wager: stake %d: %w", call.Payment, ErrInvalidStake)
	}

	var next uint64
	events, err := l.store.Update(ctx, func(tx storage.Tx) error {
		next = tx.WagerCount() + 1
		now := l.now()

		if err := tx.Collect(ctx, call.Caller, call.Payment, next); err != nil {
			return fmt.Errorf("create wager: collect stake: %w", err)
		}

		w := &Wager{
			ID:           next,
			Creator:      call.Caller,
			Terms:        terms,
			CreatorStake: call.Payment,
			CreatedAt:    now,
			UpdatedAt:    now,
			State:        Open{},
		}
		tx.SetWagerCount(next)
		tx.PutWager(w.Record())
		tx.AppendParticipation(call.Caller, next)
		tx.AddToIndex(models.IndexOpen, next)
		tx.Emit(models.Event{
			Name:      models.WagerCreated,
			WagerID:   next,
			Actor:     call.Caller,
			Creator:   call.Caller,
			Terms:     &terms,
			Stake:     call.Payment,
			Timestamp: now,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.notify(ctx, events)
	return next, nil
}

// AcceptWager matches an open wager. The payment must equal the creator's stake.
func (l *Ledger) AcceptWager(ctx context.Context, call Call, id uint64) (err error) {
	start := time.Now()
	defer func() { l.observe(ctx, OpAccept, id, call, call.Payment, err, start) }()

	events, err := l.store.Update(ctx, func(tx storage.Tx) error {
		w, err := load(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("accept wager %d: %w", id, err)
		}
		if _, open := w.State.(Open); !open {
			return fmt.Errorf("accept wager %d: status %s: %w", id, w.Status(), ErrNotOpen)
		}
		if call.Caller == w.Creator {
			return fmt.Errorf("accept wager %d: %w", id, ErrSelfMatch)
		}
		if _, ok := w.Challenger(); ok {
			return fmt.Errorf("accept wager %d: %w", id, ErrAlreadyMatched)
		}
		if call.Payment != w.CreatorStake {
			return fmt.Errorf("accept wager %d: paid %d, want %d: %w", id, call.Payment, w.CreatorStake, ErrStakeMismatch)
		}

		if err := tx.Collect(ctx, call.Caller, call.Payment, id); err != nil {
			return fmt.Errorf("accept wager %d: collect stake: %w", id, err)
		}

		now := l.now()
		w.State = Matched{Challenger: call.Caller, ChallengerStake: call.Payment}
		w.UpdatedAt = now
		tx.PutWager(w.Record())
		tx.AppendParticipation(call.Caller, id)
		tx.RemoveFromIndex(models.IndexOpen, id)
		tx.AddToIndex(models.IndexMatched, id)
		tx.Emit(models.Event{
			Name:       models.WagerAccepted,
			WagerID:    id,
			Actor:      call.Caller,
			Challenger: call.Caller,
			Stake:      call.Payment,
			Timestamp:  now,
		})
		return nil
	})
	if err != nil {
		return err
	}

	l.notify(ctx, events)
	return nil
}

// CancelWager refunds the creator of an open wager. Matched wagers can only
// be resolved.
func (l *Ledger) CancelWager(ctx context.Context, call Call, id uint64) (err error) {
	start := time.Now()
	var refunded int64
	defer func() { l.observe(ctx, OpCancel, id, call, refunded, err, start) }()

	events, err := l.store.Update(ctx, func(tx storage.Tx) error {
		w, err := load(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("cancel wager %d: %w", id, err)
		}
		if _, open := w.State.(Open); !open {
			return fmt.Errorf("cancel wager %d: status %s: %w", id, w.Status(), ErrNotOpen)
		}
		if call.Caller != w.Creator {
			return fmt.Errorf("cancel wager %d: only the creator can cancel: %w", id, ErrUnauthorized)
		}

		if err := tx.Release(ctx, w.Creator, models.EntryRefund, w.CreatorStake, id); err != nil {
			return fmt.Errorf("cancel wager %d: refund: %w", id, err)
		}

		now := l.now()
		w.State = Cancelled{}
		w.UpdatedAt = now
		tx.PutWager(w.Record())
		tx.RemoveFromIndex(models.IndexOpen, id)
		tx.Emit(models.Event{
			Name:      models.WagerCancelled,
			WagerID:   id,
			Actor:     w.Creator,
			Creator:   w.Creator,
			Timestamp: now,
		})
		refunded = w.CreatorStake
		return nil
	})
	if err != nil {
		refunded = 0
		return err
	}

	l.notify(ctx, events)
	return nil
}

// ResolveWager pays the whole pool of a matched wager to the creator when
// outcome is true and to the challenger otherwise. Only the arbiter may call it.
func (l *Ledger) ResolveWager(ctx context.Context, call Call, id uint64, outcome bool) (err error) {
	start := time.Now()
	var paid int64
	defer func() { l.observe(ctx, OpResolve, id, call, paid, err, start) }()

	if call.Caller != l.arbiter {
		return fmt.Errorf("resolve wager %d: only the arbiter can resolve: %w", id, ErrUnauthorized)
	}

	events, err := l.store.Update(ctx, func(tx storage.Tx) error {
		w, err := load(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("resolve wager %d: %w", id, err)
		}
		m, ok := w.State.(Matched)
		if !ok || m.Challenger == "" {
			return fmt.Errorf("resolve wager %d: status %s: %w", id, w.Status(), ErrNotMatched)
		}

		pool := w.CreatorStake + m.ChallengerStake
		winner := m.Challenger
		if outcome {
			winner = w.Creator
		}
		if err := tx.Release(ctx, winner, models.EntryPayout, pool, id); err != nil {
			return fmt.Errorf("resolve wager %d: payout: %w", id, err)
		}

		now := l.now()
		w.State = Resolved{
			Challenger:      m.Challenger,
			ChallengerStake: m.ChallengerStake,
			Winner:          winner,
			Outcome:         outcome,
		}
		w.UpdatedAt = now
		tx.PutWager(w.Record())
		tx.RemoveFromIndex(models.IndexMatched, id)
		tx.Emit(models.Event{
			Name:      models.WagerResolved,
			WagerID:   id,
			Actor:     winner,
			Winner:    winner,
			Pool:      pool,
			Outcome:   &outcome,
			Timestamp: now,
		})
		paid = pool
		return nil
	})
	if err != nil {
		paid = 0
		return err
	}

	l.notify(ctx, events)
	return nil
}

func load(ctx context.Context, tx storage.Tx, id uint64) (*Wager, error) {
	r, err := tx.GetWager(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return FromRecord(r)
}
