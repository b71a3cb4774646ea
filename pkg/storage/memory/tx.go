package memory

import (
	"context"
	"fmt"

	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/google/uuid"
)

type indexOp struct {
	index  models.Index
	id     uint64
	remove bool
}

type participation struct {
	identity string
	id       uint64
}

// tx stages writes against a locked Store. Nothing touches the Store until commit.
type tx struct {
	s *Store

	count          uint64
	wagers         map[uint64]*models.Wager
	order          []uint64
	indexOps       []indexOp
	participations []participation
	walletDeltas   map[string]int64
	custodyDelta   int64
	entries        []models.LedgerEntry
	events         []models.Event
}

func newTx(s *Store) *tx {
	return &tx{
		s:            s,
		count:        s.count,
		wagers:       make(map[uint64]*models.Wager),
		walletDeltas: make(map[string]int64),
	}
}

var _ storage.Tx = (*tx)(nil)

func (t *tx) WagerCount() uint64 { return t.count }

func (t *tx) SetWagerCount(n uint64) { t.count = n }

func (t *tx) GetWager(ctx context.Context, id uint64) (*models.Wager, error) {
	if w, ok := t.wagers[id]; ok {
		return cloneWager(w), nil
	}
	w, ok := t.s.wagers[id]
	if !ok {
		return nil, fmt.Errorf("wager %d: %w", id, storage.ErrNotFound)
	}
	return cloneWager(&w), nil
}

func (t *tx) PutWager(w *models.Wager) {
	if _, ok := t.wagers[w.ID]; !ok {
		t.order = append(t.order, w.ID)
	}
	t.wagers[w.ID] = cloneWager(w)
}

func (t *tx) AddToIndex(index models.Index, id uint64) {
	t.indexOps = append(t.indexOps, indexOp{index: index, id: id})
}

func (t *tx) RemoveFromIndex(index models.Index, id uint64) {
	t.indexOps = append(t.indexOps, indexOp{index: index, id: id, remove: true})
}

func (t *tx) AppendParticipation(identity string, id uint64) {
	t.participations = append(t.participations, participation{identity: identity, id: id})
}

func (t *tx) Collect(ctx context.Context, from string, amount int64, wagerID uint64) error {
	w, ok := t.s.wallets[from]
	if !ok {
		return fmt.Errorf("wallet %s: %w", from, storage.ErrWalletNotFound)
	}
	if w.Balance+t.walletDeltas[from] < amount {
		return fmt.Errorf("wallet %s: %w", from, storage.ErrInsufficientFunds)
	}
	t.walletDeltas[from] -= amount
	t.custodyDelta += amount
	t.record(models.EntryStake, from, models.EscrowAccount, amount, wagerID)
	return nil
}

func (t *tx) Release(ctx context.Context, to string, kind models.EntryKind, amount int64, wagerID uint64) error {
	if t.s.custody+t.custodyDelta < amount {
		return fmt.Errorf("custody holds %d, cannot release %d: %w", t.s.custody+t.custodyDelta, amount, storage.ErrCorrupt)
	}
	t.walletDeltas[to] += amount
	t.custodyDelta -= amount
	t.record(kind, models.EscrowAccount, to, amount, wagerID)
	return nil
}

func (t *tx) Emit(event models.Event) {
	t.events = append(t.events, event)
}

func (t *tx) record(kind models.EntryKind, from, to string, amount int64, wagerID uint64) {
	now := t.s.now()
	desc := fmt.Sprintf("%s for wager %d", kind, wagerID)
	t.entries = append(t.entries,
		models.LedgerEntry{
			EntryID:     uuid.New().String(),
			WagerID:     wagerID,
			Kind:        kind,
			AccountID:   from,
			Debit:       amount,
			Description: desc,
			Timestamp:   now,
		},
		models.LedgerEntry{
			EntryID:     uuid.New().String(),
			WagerID:     wagerID,
			Kind:        kind,
			AccountID:   to,
			Credit:      amount,
			Description: desc,
			Timestamp:   now,
		},
	)
}

// commit applies staged writes. The caller holds the store's write lock.
func (t *tx) commit() []models.Event {
	s := t.s
	s.count = t.count
	for _, id := range t.order {
		s.wagers[id] = *t.wagers[id]
	}
	for _, op := range t.indexOps {
		if op.remove {
			s.indices[op.index].Remove(op.id)
		} else {
			s.indices[op.index].Add(op.id)
		}
	}
	for _, p := range t.participations {
		s.participations[p.identity] = append(s.participations[p.identity], p.id)
	}
	now := s.now()
	for user, delta := range t.walletDeltas {
		w, ok := s.wallets[user]
		if !ok {
			w = models.Wallet{UserId: user, CreatedAt: now}
		}
		w.Balance += delta
		w.Version++
		s.wallets[user] = w
	}
	s.custody += t.custodyDelta
	s.entries = append(s.entries, t.entries...)

	committed := make([]models.Event, len(t.events))
	for i, e := range t.events {
		s.eventSeq++
		e.Seq = s.eventSeq
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		s.events = append(s.events, e)
		committed[i] = e
	}
	return committed
}
