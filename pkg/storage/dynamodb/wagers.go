package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

// GetWager retrieves a wager from DynamoDB by its id.
func (s *Store) GetWager(ctx context.Context, id uint64) (*models.Wager, error) {
	return s.getWager(ctx, id, false)
}

func (s *Store) getWager(ctx context.Context, id uint64, consistent bool) (*models.Wager, error) {
	if id == metaID {
		return nil, fmt.Errorf("wager %d: %w", id, storage.ErrNotFound)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.WagersTableName),
		Key:            wagerKey(id),
		ConsistentRead: aws.Bool(consistent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wager from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("wager %d: %w", id, storage.ErrNotFound)
	}

	var w models.Wager
	if err := attributevalue.UnmarshalMap(result.Item, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wager: %w", err)
	}
	return &w, nil
}

// WagerCount reads the id counter from the meta item.
func (s *Store) WagerCount(ctx context.Context) (uint64, error) {
	m, err := s.loadMeta(ctx)
	if err != nil {
		return 0, err
	}
	return m.WagerCount, nil
}

// Custody reads the custody total from the meta item.
func (s *Store) Custody(ctx context.Context) (int64, error) {
	m, err := s.loadMeta(ctx)
	if err != nil {
		return 0, err
	}
	return m.Custody, nil
}

// ListIndex returns the members of the open or matched index.
func (s *Store) ListIndex(ctx context.Context, index models.Index) ([]uint64, error) {
	items, err := s.queryIndex(ctx, string(index))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s index: %w", index, err)
	}
	return items, nil
}

// ListParticipations returns an identity's participation log in append order.
func (s *Store) ListParticipations(ctx context.Context, identity string) ([]uint64, error) {
	items, err := s.queryIndex(ctx, participationPrefix+identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}
	return items, nil
}

func (s *Store) queryIndex(ctx context.Context, pk string) ([]uint64, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.IndexTableName),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
		ConsistentRead: aws.Bool(true),
	}

	ids := []uint64{}
	for {
		page, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		var items []indexItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal index items: %w", err)
		}
		for _, item := range items {
			ids = append(ids, item.WagerID)
		}
		if len(page.LastEvaluatedKey) == 0 {
			return ids, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

// ListWagers scans every wager record, skipping the meta item.
func (s *Store) ListWagers(ctx context.Context) ([]models.Wager, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.WagersTableName),
		FilterExpression: aws.String("id <> :meta"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":meta": &types.AttributeValueMemberN{Value: "0"},
		},
		ConsistentRead: aws.Bool(true),
	}

	var wagers []models.Wager
	for {
		page, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wagers table: %w", err)
		}
		var batch []models.Wager
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal wagers: %w", err)
		}
		wagers = append(wagers, batch...)
		if len(page.LastEvaluatedKey) == 0 {
			return wagers, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}
