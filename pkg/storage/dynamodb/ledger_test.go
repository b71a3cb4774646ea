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
	"github.com/chris/wager-escrow/pkg/storage/dynamodb/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListLedgerEntries(t *testing.T) {
	entries := []models.LedgerEntry{
		{EntryID: uuid.New().String(), WagerID: 1, Kind: models.EntryStake, AccountID: models.EscrowAccount, Credit: 100},
		{EntryID: uuid.New().String(), WagerID: 1, Kind: models.EntryStake, AccountID: "user-a", Debit: 100},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		var entriesAV []map[string]types.AttributeValue
		for _, e := range entries {
			av, err := attributevalue.MarshalMap(e)
			assert.NoError(t, err)
			entriesAV = append(entriesAV, av)
		}
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return aws.ToString(in.IndexName) == ledgerGSI && !aws.ToBool(in.ScanIndexForward) && aws.ToInt32(in.Limit) == 2
		})).Return(&dynamodb.QueryOutput{Items: entriesAV}, nil)

		store := &Store{Client: mockClient, LedgerTableName: "ledger"}
		result, err := store.ListLedgerEntries(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("No limit reads every page", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		first, _ := attributevalue.MarshalMap(entries[0])
		second, _ := attributevalue.MarshalMap(entries[1])
		lastKey := map[string]types.AttributeValue{"entry_id": &types.AttributeValueMemberS{Value: entries[0].EntryID}}
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.Limit == nil && in.ExclusiveStartKey == nil
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{first}, LastEvaluatedKey: lastKey}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{second}}, nil).Once()

		store := &Store{Client: mockClient, LedgerTableName: "ledger"}
		result, err := store.ListLedgerEntries(context.Background(), 0)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		store := &Store{Client: mockClient, LedgerTableName: "ledger"}
		_, err := store.ListLedgerEntries(context.Background(), 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query for ledger entries")
		mockClient.AssertExpectations(t)
	})
}
