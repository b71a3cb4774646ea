package escrow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/chris/wager-escrow/pkg/storage/memory"
	"github.com/chris/wager-escrow/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// commitAfterSnapshot runs a commit right after each snapshot is taken.
type commitAfterSnapshot struct {
	*memory.Store
	commit func()
}

func (s *commitAfterSnapshot) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	snap, err := s.Store.Snapshot(ctx)
	s.commit()
	return snap, err
}

func TestAudit(t *testing.T) {
	ctx := context.Background()

	t.Run("Clean", func(t *testing.T) {
		l, _ := newLedger(t)
		_, err := l.CreateWager(ctx, Call{Caller: "A", Payment: 100}, "x")
		require.NoError(t, err)
		_, err = l.CreateWager(ctx, Call{Caller: "A", Payment: 30}, "y")
		require.NoError(t, err)
		require.NoError(t, l.AcceptWager(ctx, Call{Caller: "B", Payment: 100}, 1))

		r, err := l.Audit(ctx, 0)
		require.NoError(t, err)
		assert.True(t, r.OK())
		assert.Equal(t, uint64(2), r.WagerCount)
		assert.Equal(t, 1, r.Open)
		assert.Equal(t, 1, r.Matched)
		assert.Equal(t, int64(230), r.Custody)
		assert.Equal(t, int64(230), r.ExpectedCustody)
		assert.Empty(t, r.Stale)
	})

	t.Run("Stale matched wagers", func(t *testing.T) {
		now := epoch
		l, _ := newLedger(t, WithClock(func() time.Time { return now }))
		_, err := l.CreateWager(ctx, Call{Caller: "A", Payment: 100}, "x")
		require.NoError(t, err)
		require.NoError(t, l.AcceptWager(ctx, Call{Caller: "B", Payment: 100}, 1))

		now = epoch.Add(2 * time.Hour)
		r, err := l.Audit(ctx, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1}, r.Stale)

		r, err = l.Audit(ctx, 3*time.Hour)
		require.NoError(t, err)
		assert.Empty(t, r.Stale)
	})

	t.Run("Broken index", func(t *testing.T) {
		l, store := newLedger(t)
		_, err := l.CreateWager(ctx, Call{Caller: "A", Payment: 100}, "x")
		require.NoError(t, err)

		_, err = store.Update(ctx, func(tx storage.Tx) error {
			tx.RemoveFromIndex(models.IndexOpen, 1)
			tx.AddToIndex(models.IndexMatched, 1)
			tx.AddToIndex(models.IndexOpen, 42)
			return nil
		})
		require.NoError(t, err)

		r, err := l.Audit(ctx, 0)
		require.NoError(t, err)
		assert.False(t, r.OK())
		assert.Len(t, r.Violations, 3)
	})

	t.Run("Gap in ids", func(t *testing.T) {
		l, store := newLedger(t)
		_, err := store.Update(ctx, func(tx storage.Tx) error {
			tx.SetWagerCount(1)
			return nil
		})
		require.NoError(t, err)

		r, err := l.Audit(ctx, 0)
		require.NoError(t, err)
		require.Len(t, r.Violations, 1)
		assert.Equal(t, uint64(1), r.Violations[0].WagerID)
	})

	t.Run("Commit right after the snapshot", func(t *testing.T) {
		base, store := newLedger(t)
		_, err := base.CreateWager(ctx, Call{Caller: "A", Payment: 100}, "x")
		require.NoError(t, err)

		wrapped := &commitAfterSnapshot{Store: store, commit: func() {
			_, err := base.CreateWager(ctx, Call{Caller: "B", Payment: 50}, "y")
			require.NoError(t, err)
		}}
		l := New(wrapped, arbiter, WithClock(func() time.Time { return epoch }))

		r, err := l.Audit(ctx, 0)
		require.NoError(t, err)
		assert.True(t, r.OK(), "%+v", r.Violations)
		assert.Equal(t, uint64(1), r.WagerCount)
		assert.Equal(t, int64(100), r.Custody)

		r, err = l.Audit(ctx, 0)
		require.NoError(t, err)
		assert.True(t, r.OK(), "%+v", r.Violations)
		assert.Equal(t, uint64(2), r.WagerCount)
		assert.Equal(t, int64(150), r.Custody)
	})

	t.Run("Concurrent commits", func(t *testing.T) {
		l, _ := newLedger(t)

		var wg sync.WaitGroup
		for _, user := range []string{"A", "B"} {
			wg.Add(1)
			go func(user string) {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					_, err := l.CreateWager(ctx, Call{Caller: user, Payment: 10}, "t")
					assert.NoError(t, err)
				}
			}(user)
		}

		for i := 0; i < 50; i++ {
			r, err := l.Audit(ctx, 0)
			require.NoError(t, err)
			require.True(t, r.OK(), "audit %d: %+v", i, r.Violations)
		}
		wg.Wait()

		r, err := l.Audit(ctx, 0)
		require.NoError(t, err)
		assert.True(t, r.OK())
		assert.Equal(t, uint64(100), r.WagerCount)
		assert.Equal(t, int64(1000), r.Custody)
	})

	t.Run("Ledger kept changing", func(t *testing.T) {
		store := mocks.NewStorage(t)
		store.On("Snapshot", mock.Anything).Return(nil, fmt.Errorf("ledger changed during 3 snapshot attempts: %w", storage.ErrConflict))

		_, err := New(store, arbiter).Audit(ctx, 0)
		assert.ErrorIs(t, err, storage.ErrConflict)
	})
}
