package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

// Store keeps the whole ledger in process. Updates hold the write lock for
// the entire unit of work, so they are linearized.
type Store struct {
	mu sync.RWMutex

	count          uint64
	eventSeq       uint64
	wagers         map[uint64]models.Wager
	indices        map[models.Index]*IDSet
	participations map[string][]uint64
	wallets        map[string]models.Wallet
	custody        int64
	entries        []models.LedgerEntry
	events         []models.Event
	connections    map[string]struct{}

	now func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		wagers: make(map[uint64]models.Wager),
		indices: map[models.Index]*IDSet{
			models.IndexOpen:    NewIDSet(),
			models.IndexMatched: NewIDSet(),
		},
		participations: make(map[string][]uint64),
		wallets:        make(map[string]models.Wallet),
		connections:    make(map[string]struct{}),
		now:            time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// Update runs fn against a staging buffer and applies it only if fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(tx storage.Tx) error) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx := newTx(s)
	if err := fn(tx); err != nil {
		return nil, err
	}
	return tx.commit(), nil
}

func (s *Store) GetWager(ctx context.Context, id uint64) (*models.Wager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wagers[id]
	if !ok {
		return nil, fmt.Errorf("wager %d: %w", id, storage.ErrNotFound)
	}
	return cloneWager(&w), nil
}

func (s *Store) WagerCount(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count, nil
}

func (s *Store) ListIndex(ctx context.Context, index models.Index) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.indices[index]
	if !ok {
		return nil, fmt.Errorf("unknown index %q", index)
	}
	return set.IDs(), nil
}

func (s *Store) ListParticipations(ctx context.Context, identity string) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.participations[identity]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *Store) ListWagers(ctx context.Context) ([]models.Wager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Wager, 0, len(s.wagers))
	for _, w := range s.wagers {
		out = append(out, *cloneWager(&w))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Snapshot copies the counter, custody, every wager and both indices under
// one read lock.
func (s *Store) Snapshot(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &storage.Snapshot{
		WagerCount: s.count,
		Custody:    s.custody,
		Wagers:     make([]models.Wager, 0, len(s.wagers)),
		Open:       s.indices[models.IndexOpen].IDs(),
		Matched:    s.indices[models.IndexMatched].IDs(),
	}
	for _, w := range s.wagers {
		snap.Wagers = append(snap.Wagers, *cloneWager(&w))
	}
	sort.Slice(snap.Wagers, func(i, j int) bool { return snap.Wagers[i].ID < snap.Wagers[j].ID })
	return snap, nil
}

func (s *Store) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Event
	for _, e := range s.events {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[len(out)-filter.Limit:]
	}
	return out, nil
}

func (s *Store) Custody(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.custody, nil
}

func (s *Store) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && int(limit) < n {
		n = int(limit)
	}
	out := make([]models.LedgerEntry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func cloneWager(w *models.Wager) *models.Wager {
	c := *w
	if w.Challenger != nil {
		v := *w.Challenger
		c.Challenger = &v
	}
	if w.Winner != nil {
		v := *w.Winner
		c.Winner = &v
	}
	if w.Outcome != nil {
		v := *w.Outcome
		c.Outcome = &v
	}
	return &c
}
