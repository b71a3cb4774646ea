package dynamodb

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/wager-escrow/pkg/models"
)

const eventsWagerGSI = "wager_id-seq-index"

// ListEvents returns events matching the filter in emission order. With a
// Limit the most recent events are returned, still oldest first.
func (s *Store) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	input := eventsQuery(s.EventsTableName, filter)

	// A filter expression is applied after Limit, so only unfiltered queries
	// can be read newest first and cut short.
	newestFirst := filter.Limit > 0 && input.FilterExpression == nil
	if newestFirst {
		input.ScanIndexForward = aws.Bool(false)
		input.Limit = aws.Int32(int32(filter.Limit))
	}

	var events []models.Event
	for {
		page, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query for events: %w", err)
		}
		var batch []models.Event
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal events: %w", err)
		}
		events = append(events, batch...)
		if newestFirst && len(events) >= filter.Limit {
			break
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}

	if newestFirst {
		if len(events) > filter.Limit {
			events = events[:filter.Limit]
		}
		slices.Reverse(events)
		return events, nil
	}
	if filter.Limit > 0 && len(events) > filter.Limit {
		events = events[len(events)-filter.Limit:]
	}
	return events, nil
}

func eventsQuery(table string, filter models.EventFilter) *dynamodb.QueryInput {
	switch {
	case filter.WagerID != nil:
		input := &dynamodb.QueryInput{
			TableName:              aws.String(table),
			IndexName:              aws.String(eventsWagerGSI),
			KeyConditionExpression: aws.String("wager_id = :wager_id"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":wager_id": &types.AttributeValueMemberN{Value: strconv.FormatUint(*filter.WagerID, 10)},
			},
		}
		if filter.Actor != "" {
			input.FilterExpression = aws.String("actor = :actor")
			input.ExpressionAttributeValues[":actor"] = &types.AttributeValueMemberS{Value: filter.Actor}
		}
		return input
	case filter.Actor != "":
		return &dynamodb.QueryInput{
			TableName:              aws.String(table),
			IndexName:              aws.String(eventsActorGSI),
			KeyConditionExpression: aws.String("actor = :actor"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":actor": &types.AttributeValueMemberS{Value: filter.Actor},
			},
		}
	default:
		return &dynamodb.QueryInput{
			TableName:              aws.String(table),
			IndexName:              aws.String(eventsGSI),
			KeyConditionExpression: aws.String("gsi1pk = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: eventsGSI1PK},
			},
		}
	}
}
