package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

const snapshotAttempts = 3

// Snapshot reads the meta item, every wager and both indices, then reads the
// meta item again. Every commit bumps the meta version, so an unchanged
// version means no commit landed in between. Otherwise the read is retried,
// and storage.ErrConflict is returned once the attempts run out.
func (s *Store) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	for attempt := 1; attempt <= snapshotAttempts; attempt++ {
		before, err := s.loadMeta(ctx)
		if err != nil {
			return nil, err
		}
		wagers, err := s.ListWagers(ctx)
		if err != nil {
			return nil, err
		}
		open, err := s.ListIndex(ctx, models.IndexOpen)
		if err != nil {
			return nil, err
		}
		matched, err := s.ListIndex(ctx, models.IndexMatched)
		if err != nil {
			return nil, err
		}
		after, err := s.loadMeta(ctx)
		if err != nil {
			return nil, err
		}

		if after.Version == before.Version {
			return &storage.Snapshot{
				WagerCount: before.WagerCount,
				Custody:    before.Custody,
				Wagers:     wagers,
				Open:       open,
				Matched:    matched,
			}, nil
		}
		slog.DebugContext(ctx, "ledger changed during snapshot", "attempt", attempt, "from", before.Version, "to", after.Version)
	}
	return nil, fmt.Errorf("ledger changed during %d snapshot attempts: %w", snapshotAttempts, storage.ErrConflict)
}
