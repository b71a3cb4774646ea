package main

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/wager-escrow/pkg/config"
	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/scheduler"
	"github.com/chris/wager-escrow/pkg/storage"
	dydbstore "github.com/chris/wager-escrow/pkg/storage/dynamodb"
	"github.com/chris/wager-escrow/pkg/websockets"
	"github.com/redis/go-redis/v9"
)

// Resolver resolves wagers on behalf of a queued request.
type Resolver interface {
	ResolveWager(ctx context.Context, call escrow.Call, id uint64, outcome bool) error
}

// Handler consumes the resolution queue.
type Handler struct {
	Ledger Resolver
}

// HandleRequest resolves each queued wager. Requests that can never succeed
// (malformed, unknown or corrupt wager, already resolved, not from the arbiter) are
// logged and acknowledged; conflicts and storage failures are reported back
// as batch item failures so SQS redelivers them.
func (h *Handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		req, err := scheduler.DecodeResolutionRequest(message.Body)
		if err != nil {
			log.Printf("ERROR: dropping message %s: %v", message.MessageId, err)
			continue
		}

		err = h.Ledger.ResolveWager(ctx, escrow.Call{Caller: req.RequestedBy}, req.WagerID, req.Outcome)
		kind := escrow.KindOf(err)
		switch {
		case kind == escrow.KindNone:
			log.Printf("Successfully resolved wager %d", req.WagerID)
		case errors.Is(err, storage.ErrCorrupt):
			// Redelivery reads the same record; it needs an operator.
			log.Printf("ERROR: wager %d is corrupt, dropping message %s: %v", req.WagerID, message.MessageId, err)
		case kind == escrow.KindConflict || kind == escrow.KindInternal:
			log.Printf("ERROR: failed to resolve wager %d, will retry: %v", req.WagerID, err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		default:
			log.Printf("Not resolving wager %d (%s): %v", req.WagerID, kind, err)
		}
	}

	return resp, nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Store.Backend = config.BackendDynamoDB
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
		Wagers:      cfg.DynamoDB.WagersTable,
		Index:       cfg.DynamoDB.IndexTable,
		Wallets:     cfg.DynamoDB.WalletsTable,
		Ledger:      cfg.DynamoDB.LedgerTable,
		Events:      cfg.DynamoDB.EventsTable,
		Connections: cfg.DynamoDB.ConnectionsTable,
	})

	opts := []escrow.Option{escrow.WithObserver(escrow.LogObserver{})}
	switch cfg.Websocket.Mode {
	case config.WebsocketRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		opts = append(opts, escrow.WithCommitHook(websockets.EventHook(websockets.NewRedisRelay(rdb, cfg.Redis.Channel))))
	case config.WebsocketAPIGateway:
		pub, err := websockets.NewPublisher(ctx, store, store, cfg.Websocket.APIEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
		opts = append(opts, escrow.WithCommitHook(websockets.EventHook(pub)))
	}

	h := &Handler{Ledger: escrow.New(store, cfg.Escrow.Arbiter, opts...)}
	lambda.Start(h.HandleRequest)
}
