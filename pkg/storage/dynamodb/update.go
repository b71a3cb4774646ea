package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/google/uuid"
)

// Update runs fn against a staging buffer and commits everything it staged
// in one TransactWriteItems call. A concurrent commit makes the meta version
// check fail, which is reported as storage.ErrConflict.
func (s *Store) Update(ctx context.Context, fn func(tx storage.Tx) error) ([]models.Event, error) {
	base, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}

	t := newTx(s, base)
	if err := fn(t); err != nil {
		return nil, err
	}
	if t.empty() {
		return nil, nil
	}

	input, debits, events, err := t.build()
	if err != nil {
		return nil, err
	}

	slog.Log(ctx, slog.LevelDebug, "committing ledger update", "items", len(input.TransactItems), "version", base.Version)

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return nil, commitError(err, debits)
	}
	return events, nil
}

func (s *Store) loadMeta(ctx context.Context) (meta, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.WagersTableName),
		Key:            wagerKey(metaID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return meta{}, fmt.Errorf("failed to get ledger meta: %w", err)
	}
	var m meta
	if out.Item == nil {
		return m, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return meta{}, fmt.Errorf("failed to unmarshal ledger meta: %w", err)
	}
	return m, nil
}

func commitError(err error, debits map[int]string) error {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for i, reason := range tce.CancellationReasons {
			switch aws.ToString(reason.Code) {
			case "ConditionalCheckFailed":
				if user, ok := debits[i]; ok {
					return fmt.Errorf("wallet %s: %w", user, storage.ErrInsufficientFunds)
				}
				return fmt.Errorf("ledger changed during update: %w", storage.ErrConflict)
			case "TransactionConflict":
				return fmt.Errorf("ledger changed during update: %w", storage.ErrConflict)
			}
		}
	}
	var conflict *types.TransactionConflictException
	if errors.As(err, &conflict) {
		return fmt.Errorf("ledger changed during update: %w", storage.ErrConflict)
	}
	return fmt.Errorf("failed to execute ledger update: %w", err)
}

func wagerKey(id uint64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatUint(id, 10)},
	}
}

type indexKey struct {
	index models.Index
	id    uint64
}

type tx struct {
	s    *Store
	base meta

	count uint64

	wagers     map[uint64]*models.Wager
	wagerOrder []uint64

	index      map[indexKey]bool
	indexOrder []indexKey

	participations []indexItem

	wallets      map[string]*models.Wallet
	walletDeltas map[string]int64
	walletOrder  []string
	custodyDelta int64

	entries []models.LedgerEntry
	events  []models.Event
}

func newTx(s *Store, base meta) *tx {
	return &tx{
		s:            s,
		base:         base,
		count:        base.WagerCount,
		wagers:       make(map[uint64]*models.Wager),
		index:        make(map[indexKey]bool),
		wallets:      make(map[string]*models.Wallet),
		walletDeltas: make(map[string]int64),
	}
}

var _ storage.Tx = (*tx)(nil)

func (t *tx) WagerCount() uint64 { return t.count }

func (t *tx) SetWagerCount(n uint64) { t.count = n }

func (t *tx) GetWager(ctx context.Context, id uint64) (*models.Wager, error) {
	if w, ok := t.wagers[id]; ok {
		c := *w
		return &c, nil
	}
	return t.s.getWager(ctx, id, true)
}

func (t *tx) PutWager(w *models.Wager) {
	if _, ok := t.wagers[w.ID]; !ok {
		t.wagerOrder = append(t.wagerOrder, w.ID)
	}
	c := *w
	t.wagers[w.ID] = &c
}

func (t *tx) AddToIndex(index models.Index, id uint64) {
	t.stageIndex(indexKey{index, id}, true)
}

func (t *tx) RemoveFromIndex(index models.Index, id uint64) {
	t.stageIndex(indexKey{index, id}, false)
}

func (t *tx) stageIndex(k indexKey, add bool) {
	if _, ok := t.index[k]; !ok {
		t.indexOrder = append(t.indexOrder, k)
	}
	t.index[k] = add
}

func (t *tx) AppendParticipation(identity string, id uint64) {
	t.participations = append(t.participations, indexItem{PK: participationPrefix + identity, WagerID: id})
}

func (t *tx) Collect(ctx context.Context, from string, amount int64, wagerID uint64) error {
	w, ok := t.wallets[from]
	if !ok {
		var err error
		w, err = t.s.GetWallet(ctx, from)
		if err != nil {
			return err
		}
		t.wallets[from] = w
	}
	if w.Balance+t.walletDeltas[from] < amount {
		return fmt.Errorf("wallet %s: %w", from, storage.ErrInsufficientFunds)
	}
	t.stageWallet(from, -amount)
	t.custodyDelta += amount
	t.record(models.EntryStake, from, models.EscrowAccount, amount, wagerID)
	return nil
}

func (t *tx) Release(ctx context.Context, to string, kind models.EntryKind, amount int64, wagerID uint64) error {
	if held := t.base.Custody + t.custodyDelta; held < amount {
		return fmt.Errorf("custody holds %d, cannot release %d: %w", held, amount, storage.ErrCorrupt)
	}
	t.stageWallet(to, amount)
	t.custodyDelta -= amount
	t.record(kind, models.EscrowAccount, to, amount, wagerID)
	return nil
}

func (t *tx) stageWallet(user string, delta int64) {
	if _, ok := t.walletDeltas[user]; !ok {
		t.walletOrder = append(t.walletOrder, user)
	}
	t.walletDeltas[user] += delta
}

func (t *tx) Emit(event models.Event) {
	t.events = append(t.events, event)
}

func (t *tx) record(kind models.EntryKind, from, to string, amount int64, wagerID uint64) {
	now := time.Now()
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
			GSI1PK:      ledgerGSI1PK,
		},
		models.LedgerEntry{
			EntryID:     uuid.New().String(),
			WagerID:     wagerID,
			Kind:        kind,
			AccountID:   to,
			Credit:      amount,
			Description: desc,
			Timestamp:   now,
			GSI1PK:      ledgerGSI1PK,
		},
	)
}

func (t *tx) empty() bool {
	return t.count == t.base.WagerCount &&
		len(t.wagers) == 0 &&
		len(t.index) == 0 &&
		len(t.participations) == 0 &&
		len(t.walletDeltas) == 0 &&
		len(t.entries) == 0 &&
		len(t.events) == 0
}

// build turns the staged writes into a transaction. debits maps the position
// of each conditional wallet debit to its user so a failed condition can be
// reported as insufficient funds.
func (t *tx) build() (*dynamodb.TransactWriteItemsInput, map[int]string, []models.Event, error) {
	next := t.base
	next.ID = metaID
	next.WagerCount = t.count
	next.Custody += t.custodyDelta
	next.Version++

	items := make([]types.TransactWriteItem, 1, 1+len(t.wagers)+len(t.index)+len(t.participations)+len(t.walletDeltas)+len(t.entries)+len(t.events))
	debits := make(map[int]string)

	for _, id := range t.wagerOrder {
		av, err := attributevalue.MarshalMap(t.wagers[id])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal wager %d: %w", id, err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{TableName: aws.String(t.s.WagersTableName), Item: av},
		})
	}

	for _, k := range t.indexOrder {
		item := indexItem{PK: string(k.index), SK: k.id, WagerID: k.id}
		if t.index[k] {
			av, err := attributevalue.MarshalMap(item)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to marshal index item: %w", err)
			}
			items = append(items, types.TransactWriteItem{
				Put: &types.Put{TableName: aws.String(t.s.IndexTableName), Item: av},
			})
			continue
		}
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(t.s.IndexTableName),
				Key: map[string]types.AttributeValue{
					"pk": &types.AttributeValueMemberS{Value: string(k.index)},
					"sk": &types.AttributeValueMemberN{Value: strconv.FormatUint(k.id, 10)},
				},
			},
		})
	}

	for _, p := range t.participations {
		next.AppendSeq++
		p.SK = next.AppendSeq
		av, err := attributevalue.MarshalMap(p)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal participation: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{TableName: aws.String(t.s.IndexTableName), Item: av},
		})
	}

	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	for _, user := range t.walletOrder {
		delta := t.walletDeltas[user]
		key := map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: user}}
		switch {
		case delta < 0:
			debits[len(items)] = user
			items = append(items, types.TransactWriteItem{
				Update: &types.Update{
					TableName:           aws.String(t.s.WalletsTableName),
					Key:                 key,
					UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
					ConditionExpression: aws.String("attribute_exists(user_id) AND balance >= :amount"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": &types.AttributeValueMemberN{Value: strconv.FormatInt(-delta, 10)},
						":inc":    &types.AttributeValueMemberN{Value: "1"},
					},
				},
			})
		case delta > 0:
			items = append(items, types.TransactWriteItem{
				Update: &types.Update{
					TableName:        aws.String(t.s.WalletsTableName),
					Key:              key,
					UpdateExpression: aws.String("SET #name = if_not_exists(#name, :user), created_at = if_not_exists(created_at, :now) ADD balance :amount, version :inc"),
					ExpressionAttributeNames: map[string]string{
						"#name": "name",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": &types.AttributeValueMemberN{Value: strconv.FormatInt(delta, 10)},
						":inc":    &types.AttributeValueMemberN{Value: "1"},
						":user":   &types.AttributeValueMemberS{Value: user},
						":now":    nowAV,
					},
				},
			})
		}
	}

	for i := range t.entries {
		av, err := attributevalue.MarshalMap(&t.entries[i])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal ledger entry: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(t.s.LedgerTableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		})
	}

	committed := make([]models.Event, len(t.events))
	for i, e := range t.events {
		next.EventSeq++
		e.Seq = next.EventSeq
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.GSI1PK = eventsGSI1PK
		av, err := attributevalue.MarshalMap(&e)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal event: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(t.s.EventsTableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(seq)"),
			},
		})
		committed[i] = e
	}

	metaAV, err := attributevalue.MarshalMap(next)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal ledger meta: %w", err)
	}
	metaPut := &types.Put{
		TableName: aws.String(t.s.WagersTableName),
		Item:      metaAV,
	}
	if t.base.Version == 0 {
		metaPut.ConditionExpression = aws.String("attribute_not_exists(id)")
	} else {
		metaPut.ConditionExpression = aws.String("version = :version")
		metaPut.ExpressionAttributeValues = map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(t.base.Version, 10)},
		}
	}
	items[0] = types.TransactWriteItem{Put: metaPut}

	return &dynamodb.TransactWriteItemsInput{TransactItems: items}, debits, committed, nil
}
