package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
	"github.com/chris/wager-escrow/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testTables = Tables{
	Wagers:      "wagers",
	Index:       "wager-index",
	Wallets:     "wallets",
	Ledger:      "ledger",
	Events:      "events",
	Connections: "connections",
}

func TestCreateWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			return *in.TableName == "wallets" && *in.ConditionExpression == "attribute_not_exists(user_id)"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		store := New(mockClient, testTables)
		wallet := &models.Wallet{UserId: "test-user", Balance: 1000}
		createdWallet, err := store.CreateWallet(context.Background(), wallet)

		assert.NoError(t, err)
		assert.Equal(t, wallet, createdWallet)
		assert.False(t, createdWallet.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := New(mockClient, testTables)
		_, err := store.CreateWallet(context.Background(), &models.Wallet{UserId: "test-user"})

		assert.ErrorIs(t, err, storage.ErrWalletExists)
		assert.Contains(t, err.Error(), "wallet for user ID test-user")
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, testTables)
		_, err := store.CreateWallet(context.Background(), &models.Wallet{UserId: "test-user"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create wallet in DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestDeleteWallet(t *testing.T) {
	userID := "test-user"

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(&dynamodb.DeleteItemOutput{}, nil)

		store := New(mockClient, testTables)
		err := store.DeleteWallet(context.Background(), userID)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := New(mockClient, testTables)
		err := store.DeleteWallet(context.Background(), userID)

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, testTables)
		err := store.DeleteWallet(context.Background(), userID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete wallet from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestGetWallet(t *testing.T) {
	userID := "test-user"
	wallet := &models.Wallet{UserId: userID, Name: "Test", Balance: 100, Version: 2}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		walletAV, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: walletAV}, nil)

		store := New(mockClient, testTables)
		retrievedWallet, err := store.GetWallet(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, wallet, retrievedWallet)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		store := New(mockClient, testTables)
		_, err := store.GetWallet(context.Background(), userID)

		assert.ErrorIs(t, err, storage.ErrWalletNotFound)
		assert.Contains(t, err.Error(), "wallet for user ID test-user")
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, testTables)
		_, err := store.GetWallet(context.Background(), userID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get wallet from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}

func TestListWallets(t *testing.T) {
	t.Run("Success across pages", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		first, _ := attributevalue.MarshalMap(models.Wallet{UserId: "user-b"})
		second, _ := attributevalue.MarshalMap(models.Wallet{UserId: "user-a"})
		lastKey := map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: "user-b"}}

		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
			return in.ExclusiveStartKey == nil
		})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{first}, LastEvaluatedKey: lastKey}, nil).Once()
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{second}}, nil).Once()

		store := New(mockClient, testTables)
		wallets, err := store.ListWallets(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []models.Wallet{{UserId: "user-a"}, {UserId: "user-b"}}, wallets)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Scan", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, testTables)
		_, err := store.ListWallets(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan wallets table")
		mockClient.AssertExpectations(t)
	})
}
