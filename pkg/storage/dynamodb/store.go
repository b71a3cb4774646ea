package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/wager-escrow/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables names the DynamoDB tables backing the store.
type Tables struct {
	Wagers      string
	Index       string
	Wallets     string
	Ledger      string
	Events      string
	Connections string
}

// Store implements the Storage interface using AWS DynamoDB.
//
// The wagers table holds a meta item under id 0 carrying the id counter,
// the event sequence, the custody total and a version. Every Update commits
// in a single TransactWriteItems conditioned on that version, so updates
// are linearized even across processes.
type Store struct {
	Client                        DynamoDBAPI
	WagersTableName               string
	IndexTableName                string
	WalletsTableName              string
	LedgerTableName               string
	EventsTableName               string
	WebsocketConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:                        client,
		WagersTableName:               tables.Wagers,
		IndexTableName:                tables.Index,
		WalletsTableName:              tables.Wallets,
		LedgerTableName:               tables.Ledger,
		EventsTableName:               tables.Events,
		WebsocketConnectionsTableName: tables.Connections,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	metaID = 0

	ledgerGSI      = "gsi1pk-timestamp-index"
	ledgerGSI1PK   = "LEDGER_ENTRIES"
	eventsGSI      = "gsi1pk-seq-index"
	eventsGSI1PK   = "EVENTS"
	eventsActorGSI = "actor-seq-index"

	participationPrefix = "user#"
)

// meta is the ledger-wide item stored under id 0 in the wagers table.
type meta struct {
	ID         uint64 `dynamodbav:"id"`
	WagerCount uint64 `dynamodbav:"wager_count"`
	EventSeq   uint64 `dynamodbav:"event_seq"`
	AppendSeq  uint64 `dynamodbav:"append_seq"`
	Custody    int64  `dynamodbav:"custody"`
	Version    int64  `dynamodbav:"version"`
}

// indexItem is a member of the open or matched index, or an entry of a
// participation log. For indices SK is the wager id; for logs it is the
// append sequence.
type indexItem struct {
	PK      string `dynamodbav:"pk"`
	SK      uint64 `dynamodbav:"sk"`
	WagerID uint64 `dynamodbav:"wager_id"`
}
