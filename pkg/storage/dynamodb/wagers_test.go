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

func TestGetWager(t *testing.T) {
	challenger := "user-b"
	wager := &models.Wager{ID: 7, Creator: "user-a", Terms: "rain", Status: models.MATCHED, CreatorStake: 10, Challenger: &challenger, ChallengerStake: 10}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		av, err := attributevalue.MarshalMap(wager)
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return in.Key["id"].(*types.AttributeValueMemberN).Value == "7"
		})).Return(&dynamodb.GetItemOutput{Item: av}, nil)

		store := New(mockClient, testTables)
		got, err := store.GetWager(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, wager, got)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		store := New(mockClient, testTables)
		_, err := store.GetWager(context.Background(), 7)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Meta id is never a wager", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)

		store := New(mockClient, testTables)
		_, err := store.GetWager(context.Background(), 0)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		store := New(mockClient, testTables)
		_, err := store.GetWager(context.Background(), 7)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get wager from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestMetaReads(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	expectMeta(t, mockClient, &meta{WagerCount: 12, Custody: 340, Version: 30})
	expectMeta(t, mockClient, &meta{WagerCount: 12, Custody: 340, Version: 30})

	store := New(mockClient, testTables)
	count, err := store.WagerCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), count)

	custody, err := store.Custody(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(340), custody)
	mockClient.AssertExpectations(t)
}

func TestMetaReadsEmptyTable(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	expectMeta(t, mockClient, nil)

	store := New(mockClient, testTables)
	count, err := store.WagerCount(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, count)
	mockClient.AssertExpectations(t)
}

func indexItems(t *testing.T, pk string, ids ...uint64) []map[string]types.AttributeValue {
	var items []map[string]types.AttributeValue
	for i, id := range ids {
		av, err := attributevalue.MarshalMap(indexItem{PK: pk, SK: uint64(i + 1), WagerID: id})
		require.NoError(t, err)
		items = append(items, av)
	}
	return items
}

func TestListIndex(t *testing.T) {
	t.Run("Success across pages", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lastKey := map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: "open"}}
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey == nil && aws.ToBool(in.ConsistentRead)
		})).Return(&dynamodb.QueryOutput{Items: indexItems(t, "open", 3, 1), LastEvaluatedKey: lastKey}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.QueryOutput{Items: indexItems(t, "open", 9)}, nil).Once()

		store := New(mockClient, testTables)
		ids, err := store.ListIndex(context.Background(), models.IndexOpen)

		assert.NoError(t, err)
		assert.Equal(t, []uint64{3, 1, 9}, ids)
		mockClient.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		store := New(mockClient, testTables)
		ids, err := store.ListIndex(context.Background(), models.IndexMatched)

		assert.NoError(t, err)
		assert.Empty(t, ids)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		store := New(mockClient, testTables)
		_, err := store.ListIndex(context.Background(), models.IndexOpen)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query open index")
		mockClient.AssertExpectations(t)
	})
}

func TestListParticipations(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		pk := in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS)
		return pk.Value == "user#user-a"
	})).Return(&dynamodb.QueryOutput{Items: indexItems(t, "user#user-a", 1, 2, 2)}, nil)

	store := New(mockClient, testTables)
	ids, err := store.ListParticipations(context.Background(), "user-a")

	assert.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 2}, ids)
	mockClient.AssertExpectations(t)
}

func TestListWagers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		wagers := []models.Wager{{ID: 1, Creator: "user-a", Status: models.OPEN, CreatorStake: 5}, {ID: 2, Creator: "user-b", Status: models.CANCELLED, CreatorStake: 7}}
		var items []map[string]types.AttributeValue
		for _, w := range wagers {
			av, err := attributevalue.MarshalMap(w)
			require.NoError(t, err)
			items = append(items, av)
		}
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
			return aws.ToString(in.FilterExpression) == "id <> :meta"
		})).Return(&dynamodb.ScanOutput{Items: items}, nil)

		store := New(mockClient, testTables)
		got, err := store.ListWagers(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, wagers, got)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		store := New(mockClient, testTables)
		_, err := store.ListWagers(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan wagers table")
		mockClient.AssertExpectations(t)
	})
}
