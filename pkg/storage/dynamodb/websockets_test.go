package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wager-escrow/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestConnections(t *testing.T) {
	ctx := context.Background()

	t.Run("Add", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			var c connection
			if err := attributevalue.UnmarshalMap(in.Item, &c); err != nil {
				return false
			}
			return aws.ToString(in.TableName) == "connections" && c.ConnectionID == "abc" && c.PK == connectionsPK && c.TTL > 0
		})).Return(&dynamodb.PutItemOutput{}, nil)

		store := New(mockClient, testTables)
		assert.NoError(t, store.AddConnection(ctx, "abc"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Remove", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		store := New(mockClient, testTables)
		err := store.RemoveConnection(ctx, "abc")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete connection abc")
		mockClient.AssertExpectations(t)
	})

	t.Run("Get all", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		var items []map[string]types.AttributeValue
		for _, id := range []string{"abc", "def"} {
			av, _ := attributevalue.MarshalMap(connection{ConnectionID: id})
			items = append(items, av)
		}
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: items}, nil)

		store := New(mockClient, testTables)
		ids, err := store.GetAllConnections(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"abc", "def"}, ids)
		mockClient.AssertExpectations(t)
	})
}
