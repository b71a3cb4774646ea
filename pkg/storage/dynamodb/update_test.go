package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/chris/wager-escrow/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func getFrom(table string) interface{} {
	return mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return aws.ToString(in.TableName) == table
	})
}

func expectMeta(t *testing.T, client *mocks.DynamoDBAPI, m *meta) {
	out := &dynamodb.GetItemOutput{}
	if m != nil {
		av, err := attributevalue.MarshalMap(m)
		require.NoError(t, err)
		out.Item = av
	}
	client.On("GetItem", mock.Anything, getFrom("wagers")).Return(out, nil).Once()
}

func expectWallet(t *testing.T, client *mocks.DynamoDBAPI, w models.Wallet) {
	av, err := attributevalue.MarshalMap(w)
	require.NoError(t, err)
	client.On("GetItem", mock.Anything, getFrom("wallets")).Return(&dynamodb.GetItemOutput{Item: av}, nil).Once()
}

func cancelled(n int, failed int, code string) error {
	reasons := make([]types.CancellationReason, n)
	for i := range reasons {
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
	}
	reasons[failed] = types.CancellationReason{Code: aws.String(code)}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}

// createWager stages what creating wager 1 for user-a stages.
func createWager(ctx context.Context, tx storage.Tx) error {
	if err := tx.Collect(ctx, "user-a", 100, 1); err != nil {
		return err
	}
	tx.SetWagerCount(1)
	tx.PutWager(&models.Wager{ID: 1, Creator: "user-a", Status: models.OPEN, CreatorStake: 100})
	tx.AppendParticipation("user-a", 1)
	tx.AddToIndex(models.IndexOpen, 1)
	tx.Emit(models.Event{Name: models.WagerCreated, WagerID: 1, Actor: "user-a", Stake: 100})
	return nil
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)
		expectWallet(t, mockClient, models.Wallet{UserId: "user-a", Balance: 1000})

		var input *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		store := New(mockClient, testTables)
		events, err := store.Update(ctx, func(tx storage.Tx) error { return createWager(ctx, tx) })

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, uint64(1), events[0].Seq)
		assert.NotEmpty(t, events[0].ID)

		// meta, wager, index, participation, wallet, two ledger entries, event
		require.Len(t, input.TransactItems, 8)
		metaPut := input.TransactItems[0].Put
		require.NotNil(t, metaPut)
		assert.Equal(t, "attribute_not_exists(id)", aws.ToString(metaPut.ConditionExpression))

		var next meta
		require.NoError(t, attributevalue.UnmarshalMap(metaPut.Item, &next))
		assert.Equal(t, meta{WagerCount: 1, EventSeq: 1, AppendSeq: 1, Custody: 100, Version: 1}, next)

		debit := input.TransactItems[4].Update
		require.NotNil(t, debit)
		assert.Equal(t, "wallets", aws.ToString(debit.TableName))
		assert.Contains(t, aws.ToString(debit.ConditionExpression), "balance >= :amount")
		mockClient.AssertExpectations(t)
	})

	t.Run("Versioned meta", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, &meta{WagerCount: 4, EventSeq: 9, Custody: 300, Version: 7})

		var input *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { input = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		store := New(mockClient, testTables)
		events, err := store.Update(ctx, func(tx storage.Tx) error {
			if err := tx.Release(ctx, "user-b", models.EntryPayout, 200, 4); err != nil {
				return err
			}
			tx.Emit(models.Event{Name: models.WagerResolved, WagerID: 4, Actor: "user-b", Pool: 200})
			return nil
		})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, uint64(10), events[0].Seq)

		metaPut := input.TransactItems[0].Put
		assert.Equal(t, "version = :version", aws.ToString(metaPut.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberN{Value: "7"}, metaPut.ExpressionAttributeValues[":version"])

		var next meta
		require.NoError(t, attributevalue.UnmarshalMap(metaPut.Item, &next))
		assert.Equal(t, int64(100), next.Custody)
		assert.Equal(t, int64(8), next.Version)

		credit := input.TransactItems[1].Update
		require.NotNil(t, credit)
		assert.Nil(t, credit.ConditionExpression)
		assert.Contains(t, aws.ToString(credit.UpdateExpression), "ADD balance :amount")
		mockClient.AssertExpectations(t)
	})

	t.Run("Nothing staged", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, &meta{WagerCount: 2, Version: 3})

		store := New(mockClient, testTables)
		events, err := store.Update(ctx, func(tx storage.Tx) error {
			assert.Equal(t, uint64(2), tx.WagerCount())
			return nil
		})

		assert.NoError(t, err)
		assert.Empty(t, events)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
		mockClient.AssertExpectations(t)
	})

	t.Run("Unit of work fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)

		boom := errors.New("boom")
		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error {
			tx.SetWagerCount(1)
			return boom
		})

		assert.ErrorIs(t, err, boom)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
		mockClient.AssertExpectations(t)
	})

	t.Run("Staged balance is insufficient", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)
		expectWallet(t, mockClient, models.Wallet{UserId: "user-a", Balance: 50})

		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error { return createWager(ctx, tx) })

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertExpectations(t)
	})

	t.Run("Wallet missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)
		mockClient.On("GetItem", mock.Anything, getFrom("wallets")).Return(&dynamodb.GetItemOutput{}, nil).Once()

		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error { return createWager(ctx, tx) })

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Release beyond custody", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, &meta{Custody: 10, Version: 1})

		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error {
			return tx.Release(ctx, "user-a", models.EntryRefund, 11, 1)
		})

		assert.ErrorIs(t, err, storage.ErrCorrupt)
		mockClient.AssertExpectations(t)
	})

	t.Run("Debit condition fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)
		expectWallet(t, mockClient, models.Wallet{UserId: "user-a", Balance: 1000})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled(8, 4, "ConditionalCheckFailed")).Once()

		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error { return createWager(ctx, tx) })

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		assert.Contains(t, err.Error(), "user-a")
		mockClient.AssertExpectations(t)
	})

	t.Run("Concurrent update", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)
		expectWallet(t, mockClient, models.Wallet{UserId: "user-a", Balance: 1000})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled(8, 0, "ConditionalCheckFailed")).Once()

		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error { return createWager(ctx, tx) })

		assert.ErrorIs(t, err, storage.ErrConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)
		expectWallet(t, mockClient, models.Wallet{UserId: "user-a", Balance: 1000})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled(8, 2, "TransactionConflict")).Once()

		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error { return createWager(ctx, tx) })

		assert.ErrorIs(t, err, storage.ErrConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectMeta(t, mockClient, nil)
		expectWallet(t, mockClient, models.Wallet{UserId: "user-a", Balance: 1000})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		store := New(mockClient, testTables)
		_, err := store.Update(ctx, func(tx storage.Tx) error { return createWager(ctx, tx) })

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute ledger update")
		mockClient.AssertExpectations(t)
	})
}

func TestTxReadsStagedWagers(t *testing.T) {
	ctx := context.Background()
	mockClient := new(mocks.DynamoDBAPI)
	expectMeta(t, mockClient, nil)
	mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

	store := New(mockClient, testTables)
	_, err := store.Update(ctx, func(tx storage.Tx) error {
		tx.PutWager(&models.Wager{ID: 3, Creator: "user-a", Status: models.OPEN, CreatorStake: 5})
		w, err := tx.GetWager(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "user-a", w.Creator)

		// The copy returned must not alias the staged record.
		w.Creator = "mallory"
		again, err := tx.GetWager(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "user-a", again.Creator)
		return nil
	})

	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}
